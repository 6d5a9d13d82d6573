package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/catering-boq/catalog"
	"github.com/yeremiapane/catering-boq/hub"
	"github.com/yeremiapane/catering-boq/inventory"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/repository"
	"github.com/yeremiapane/catering-boq/utils"
)

// StockReport is the outcome of one stock check.
type StockReport struct {
	CheckedAt time.Time           `json:"checked_at"`
	LowStock  []models.Ingredient `json:"low_stock"`
	Alerted   []string            `json:"alerted"`
}

// StockMonitor raises an alert the first time an ingredient is seen at or below its
// minimum. The ingredient is alerted again only after it has been restocked and dropped
// low once more.
type StockMonitor struct {
	store    *repository.Store
	hub      hub.Broadcaster
	notifier Notifier

	mu      sync.Mutex
	alerted map[string]bool
}

func NewStockMonitor(store *repository.Store, b hub.Broadcaster, n Notifier) *StockMonitor {
	if b == nil {
		b = hub.Nop{}
	}
	if n == nil {
		n = LogNotifier{}
	}
	return &StockMonitor{
		store:    store,
		hub:      b,
		notifier: n,
		alerted:  make(map[string]bool),
	}
}

func (m *StockMonitor) Check(ctx context.Context) (StockReport, error) {
	snap, err := catalog.Load(ctx, m.store.Ingredients, m.store.Menus, m.store.CateringTypes)
	if err != nil {
		return StockReport{}, fmt.Errorf("stock check: %w", err)
	}
	low := inventory.LowStockIngredients(snap)
	report := StockReport{CheckedAt: time.Now(), LowStock: low, Alerted: []string{}}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := make(map[string]bool, len(low))
	var fresh []models.Ingredient
	for _, ing := range low {
		current[ing.Name] = true
		if !m.alerted[ing.Name] {
			fresh = append(fresh, ing)
		}
	}
	for name := range m.alerted {
		if !current[name] {
			delete(m.alerted, name)
		}
	}
	if len(fresh) == 0 {
		return report, nil
	}

	names := make([]string, 0, len(fresh))
	for _, ing := range fresh {
		names = append(names, fmt.Sprintf("%s (%s%s left, min %s%s)",
			ing.Name, ing.Stock.String(), ing.Unit, ing.MinStock.String(), ing.Unit))
	}
	message := "Low stock: " + strings.Join(names, ", ")

	n := &models.Notification{
		NotificationID: uuid.NewString(),
		Kind:           models.NotificationLowStock,
		Title:          fmt.Sprintf("%d ingredient(s) need restocking", len(fresh)),
		Message:        message,
	}
	if err := m.store.Notifications.Create(ctx, n); err != nil {
		return report, fmt.Errorf("stock check: save notification: %w", err)
	}

	for _, ing := range fresh {
		m.alerted[ing.Name] = true
		report.Alerted = append(report.Alerted, ing.Name)
	}
	m.hub.Broadcast(hub.Message{Event: hub.EventLowStock, Data: n})

	if err := m.notifier.Notify(ctx, message); err != nil {
		utils.ErrorLogger.WithError(err).Warn("low stock alert could not be delivered")
	}
	utils.InfoLogger.WithField("ingredients", report.Alerted).Info("low stock alert raised")
	return report, nil
}
