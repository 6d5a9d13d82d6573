package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/catering-boq/pricing"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftDetails is the event information captured next to the menu selections.
type DraftDetails struct {
	Name                string            `json:"name"`
	EventType           string            `json:"event_type"`
	CustomerMobile      string            `json:"customer_mobile"`
	GuestCount          int               `json:"guest_count"`
	EventDate           string            `json:"event_date"`
	CateringServiceType string            `json:"catering_service_type"`
	StartTime           pricing.TimeOfDay `json:"start_time"`
	EndTime             pricing.TimeOfDay `json:"end_time"`
}

// DraftPatch changes only the fields that are set.
type DraftPatch struct {
	Name                *string            `json:"name"`
	EventType           *string            `json:"event_type"`
	CustomerMobile      *string            `json:"customer_mobile"`
	GuestCount          *int               `json:"guest_count" binding:"omitempty,gte=0"`
	EventDate           *string            `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	CateringServiceType *string            `json:"catering_service_type"`
	StartTime           *pricing.TimeOfDay `json:"start_time"`
	EndTime             *pricing.TimeOfDay `json:"end_time"`
}

func (p DraftPatch) apply(d *DraftDetails) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.EventType != nil {
		d.EventType = *p.EventType
	}
	if p.CustomerMobile != nil {
		d.CustomerMobile = *p.CustomerMobile
	}
	if p.GuestCount != nil {
		d.GuestCount = *p.GuestCount
	}
	if p.EventDate != nil {
		d.EventDate = *p.EventDate
	}
	if p.CateringServiceType != nil {
		d.CateringServiceType = *p.CateringServiceType
	}
	if p.StartTime != nil {
		d.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		d.EndTime = *p.EndTime
	}
}

// Draft is an event being put together. Its pricing session keeps the catalog snapshot
// taken when the draft was opened.
type Draft struct {
	id        string
	owner     string
	details   DraftDetails
	session   *pricing.Session
	createdAt time.Time
	updatedAt time.Time
	mu        sync.Mutex
}

// DraftView is a consistent copy of a draft and its current quote.
type DraftView struct {
	ID        string        `json:"id"`
	Owner     string        `json:"owner"`
	Details   DraftDetails  `json:"details"`
	Quote     pricing.Quote `json:"quote"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// DraftStore keeps drafts in memory. A draft is only visible to the user who opened it
// and expires ttl after its last change.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
	ttl    time.Duration
	rate   decimal.Decimal
	now    func() time.Time
}

func NewDraftStore(ttl time.Duration, ratePerHour decimal.Decimal) *DraftStore {
	return &DraftStore{
		drafts: make(map[string]*Draft),
		ttl:    ttl,
		rate:   ratePerHour,
		now:    time.Now,
	}
}

func (s *DraftStore) Create(owner string, c pricing.Catalog, details DraftDetails) DraftView {
	now := s.now()
	d := &Draft{
		id:        uuid.NewString(),
		owner:     owner,
		details:   details,
		session:   pricing.NewSession(c),
		createdAt: now,
		updatedAt: now,
	}

	s.mu.Lock()
	s.drafts[d.id] = d
	s.mu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	return s.view(d)
}

func (s *DraftStore) lookup(owner, id string) (*Draft, error) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok || d.owner != owner {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return d, nil
}

// withDraft runs fn with the draft locked. Expired drafts are reported as missing even
// before the purge job removes them.
func (s *DraftStore) withDraft(owner, id string, mutate bool, fn func(d *Draft) error) (DraftView, error) {
	d, err := s.lookup(owner, id)
	if err != nil {
		return DraftView{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if s.expired(d, s.now()) {
		return DraftView{}, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	if err := fn(d); err != nil {
		return DraftView{}, err
	}
	if mutate {
		d.updatedAt = s.now()
	}
	return s.view(d), nil
}

func (s *DraftStore) Get(owner, id string) (DraftView, error) {
	return s.withDraft(owner, id, false, func(*Draft) error { return nil })
}

func (s *DraftStore) UpdateDetails(owner, id string, patch DraftPatch) (DraftView, error) {
	return s.withDraft(owner, id, true, func(d *Draft) error {
		patch.apply(&d.details)
		return nil
	})
}

func (s *DraftStore) AddMenu(owner, id, menuName string) (DraftView, error) {
	return s.withDraft(owner, id, true, func(d *Draft) error {
		_, err := d.session.AddMenuSelection(menuName)
		return err
	})
}

func (s *DraftStore) UpdateQuantity(owner, id string, index, quantity int) (DraftView, error) {
	return s.withDraft(owner, id, true, func(d *Draft) error {
		_, err := d.session.UpdateQuantity(index, quantity)
		return err
	})
}

func (s *DraftStore) RemoveSelection(owner, id string, index int) (DraftView, error) {
	return s.withDraft(owner, id, true, func(d *Draft) error {
		return d.session.RemoveSelection(index)
	})
}

func (s *DraftStore) Delete(owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok || d.owner != owner {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	delete(s.drafts, id)
	return nil
}

// Take removes the draft and returns its final view. Only one caller can take a given
// draft; the others get ErrDraftNotFound. The returned restore func puts the draft back
// unchanged, for when the caller could not finish with it.
func (s *DraftStore) Take(owner, id string) (DraftView, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok || d.owner != owner {
		return DraftView{}, nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if s.expired(d, s.now()) {
		return DraftView{}, nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	delete(s.drafts, id)

	restore := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, taken := s.drafts[d.id]; !taken {
			s.drafts[d.id] = d
		}
	}
	return s.view(d), restore, nil
}

// Purge removes expired drafts and returns how many were dropped.
func (s *DraftStore) Purge() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, d := range s.drafts {
		d.mu.Lock()
		expired := s.expired(d, now)
		d.mu.Unlock()
		if expired {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}

func (s *DraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

func (s *DraftStore) expired(d *Draft, now time.Time) bool {
	return s.ttl > 0 && !now.Before(d.updatedAt.Add(s.ttl))
}

// view must be called with d.mu held.
func (s *DraftStore) view(d *Draft) DraftView {
	return DraftView{
		ID:      d.id,
		Owner:   d.owner,
		Details: d.details,
		Quote: d.session.Quote(pricing.Options{
			CateringServiceType: d.details.CateringServiceType,
			StartTime:           d.details.StartTime,
			EndTime:             d.details.EndTime,
			RatePerHour:         s.rate,
		}),
		CreatedAt: d.createdAt,
		UpdatedAt: d.updatedAt,
		ExpiresAt: d.updatedAt.Add(s.ttl),
	}
}
