package pricing_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/catering-boq/catalog"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestBreakdownFor_KnownMenu(t *testing.T) {
	lines := pricing.BreakdownFor(catalog.Default(), "Jollof Rice")
	require.Len(t, lines, 8)

	wantNames := []string{"Rice", "Tomatoes", "Onions", "Pepper", "Chicken Stock", "Seasoning", "Oil", "Spices"}
	for i, name := range wantNames {
		assert.Equal(t, name, lines[i].Name)
	}
	assert.Equal(t, "200g", lines[0].Quantity)
	assert.Equal(t, "300ml", lines[4].Quantity)
	assertDecimal(t, "300", lines[0].UnitPrice)
	assertDecimal(t, "60", lines[0].LineTotal)
	assertDecimal(t, "4.5", lines[3].LineTotal)
	assertDecimal(t, "173.5", pricing.BreakdownTotal(lines))

	again := pricing.BreakdownFor(catalog.Default(), "Jollof Rice")
	assert.Equal(t, pricing.BreakdownTotal(lines).String(), pricing.BreakdownTotal(again).String())
}

func TestBreakdownFor_UnknownMenu(t *testing.T) {
	lines := pricing.BreakdownFor(catalog.Default(), "Sushi Platter")
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestBreakdownFor_SkipsUnknownIngredient(t *testing.T) {
	snap := catalog.NewSnapshot(
		[]models.Ingredient{
			{Name: "Rice", Unit: "g", UnitPrice: dec("300")},
			{Name: "Oil", Unit: "ml", UnitPrice: dec("150")},
		},
		[]models.Menu{{
			Name:  "Plain Rice",
			Price: dec("900"),
			Recipe: []models.RecipeIngredient{
				{Name: "Rice", Quantity: dec("200")},
				{Name: "Truffle", Quantity: dec("5")},
				{Name: "Oil", Quantity: dec("30")},
			},
		}},
		nil,
	)

	lines := pricing.BreakdownFor(snap, "Plain Rice")
	require.Len(t, lines, 2)
	assert.Equal(t, "Rice", lines[0].Name)
	assertDecimal(t, "60", lines[0].LineTotal)
	assert.Equal(t, "Oil", lines[1].Name)
	assertDecimal(t, "4.5", lines[1].LineTotal)
}

func TestLineTotal_Rounding(t *testing.T) {
	tests := []struct {
		price, qty, want string
	}{
		{"300", "200", "60"},
		{"333", "7", "2.33"},
		{"5", "1", "0.01"},
		{"1", "4", "0"},
		{"250", "1.5", "0.38"},
	}
	for _, tt := range tests {
		t.Run(tt.price+"x"+tt.qty, func(t *testing.T) {
			assertDecimal(t, tt.want, pricing.LineTotal(dec(tt.price), dec(tt.qty)))
		})
	}
}

func TestSession_AddMenuSelection(t *testing.T) {
	s := pricing.NewSession(catalog.Default())
	assert.Equal(t, pricing.StateEmpty, s.State())
	assert.True(t, s.MenuSubtotal().IsZero())

	sel, err := s.AddMenuSelection("Fried Rice")
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Quantity)
	assertDecimal(t, "1800", sel.UnitPrice)
	assertDecimal(t, "1800", sel.TotalPrice)
	assert.Len(t, sel.Ingredients, 9)
	assert.Equal(t, pricing.StateHasSelections, s.State())
}

func TestSession_AddUnknownMenuLeavesStateUnchanged(t *testing.T) {
	s := pricing.NewSession(catalog.Default())
	_, err := s.AddMenuSelection("Beef Stew")
	require.NoError(t, err)

	_, err = s.AddMenuSelection("Lobster")
	assert.True(t, errors.Is(err, pricing.ErrUnknownMenu))
	assert.Len(t, s.Selections(), 1)
	assertDecimal(t, "2200", s.MenuSubtotal())
}

func TestSession_UpdateQuantityClampsToOne(t *testing.T) {
	for _, q := range []int{0, -5} {
		s := pricing.NewSession(catalog.Default())
		_, err := s.AddMenuSelection("Jollof Rice")
		require.NoError(t, err)
		_, err = s.UpdateQuantity(0, 10)
		require.NoError(t, err)

		sel, err := s.UpdateQuantity(0, q)
		require.NoError(t, err)
		assert.Equal(t, 1, sel.Quantity)
		assertDecimal(t, "1500", sel.TotalPrice)
		assertDecimal(t, "1500", sel.UnitPrice)
	}
}

func TestSession_UpdateQuantity(t *testing.T) {
	s := pricing.NewSession(catalog.Default())
	_, _ = s.AddMenuSelection("Jollof Rice")
	_, _ = s.AddMenuSelection("Vegetable Salad")

	sel, err := s.UpdateQuantity(1, 25)
	require.NoError(t, err)
	assertDecimal(t, "20000", sel.TotalPrice)
	assertDecimal(t, "21500", s.MenuSubtotal())

	_, err = s.UpdateQuantity(2, 3)
	assert.ErrorIs(t, err, pricing.ErrSelectionNotFound)
	_, err = s.UpdateQuantity(-1, 3)
	assert.ErrorIs(t, err, pricing.ErrSelectionNotFound)
}

func TestSession_RemoveSelectionKeepsOrder(t *testing.T) {
	s := pricing.NewSession(catalog.Default())
	for _, name := range []string{"Jollof Rice", "Fried Rice", "Grilled Chicken", "Beef Stew"} {
		_, err := s.AddMenuSelection(name)
		require.NoError(t, err)
	}
	_, err := s.UpdateQuantity(2, 4)
	require.NoError(t, err)

	require.NoError(t, s.RemoveSelection(1))

	got := s.Selections()
	require.Len(t, got, 3)
	assert.Equal(t, "Jollof Rice", got[0].MenuName)
	assert.Equal(t, "Grilled Chicken", got[1].MenuName)
	assert.Equal(t, 4, got[1].Quantity)
	assert.Equal(t, "Beef Stew", got[2].MenuName)

	assert.ErrorIs(t, s.RemoveSelection(3), pricing.ErrSelectionNotFound)

	for range got {
		require.NoError(t, s.RemoveSelection(0))
	}
	assert.Equal(t, pricing.StateEmpty, s.State())
}

func TestSession_SelectionsIsACopy(t *testing.T) {
	s := pricing.NewSession(catalog.Default())
	_, _ = s.AddMenuSelection("Pounded Yam")

	got := s.Selections()
	got[0].Quantity = 99
	assert.Equal(t, 1, s.Selections()[0].Quantity)
}

func TestSession_ServiceSurcharge(t *testing.T) {
	s := pricing.NewSession(catalog.Default())
	assertDecimal(t, "50000", s.ServiceSurcharge("Full Service"))
	assertDecimal(t, "20000", s.ServiceSurcharge("Cocktail Reception"))
	assertDecimal(t, "0", s.ServiceSurcharge(""))
	assertDecimal(t, "0", s.ServiceSurcharge("Self Service"))
}

func TestDurationSurcharge(t *testing.T) {
	rate := pricing.DefaultRatePerHour
	tests := []struct {
		name       string
		start, end string
		wantHours  int
		wantAmount string
	}{
		{"same day", "10:00", "13:00", 3, "30000"},
		{"partial hour rounds up", "10:00", "12:01", 3, "30000"},
		{"wraps past midnight", "22:00", "02:00", 4, "40000"},
		{"wrap with minutes", "23:30", "00:15", 1, "10000"},
		{"zero length", "09:00", "09:00", 0, "0"},
		{"start unset", "", "12:00", 0, "0"},
		{"end unset", "12:00", "", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := pricing.MustTimeOfDay(tt.start)
			end := pricing.MustTimeOfDay(tt.end)
			assert.Equal(t, tt.wantHours, pricing.DurationHours(start, end))
			assertDecimal(t, tt.wantAmount, pricing.DurationSurcharge(start, end, rate))
		})
	}
}

func TestSession_GrandTotal(t *testing.T) {
	s := pricing.NewSession(catalog.Default())
	_, err := s.AddMenuSelection("Jollof Rice")
	require.NoError(t, err)

	start, end := pricing.MustTimeOfDay("10:00"), pricing.MustTimeOfDay("13:00")
	total := s.GrandTotal("Full Service", start, end, pricing.DefaultRatePerHour)
	assertDecimal(t, "81500", total)

	want := s.MenuSubtotal().
		Add(s.ServiceSurcharge("Full Service")).
		Add(s.DurationSurcharge(start, end, pricing.DefaultRatePerHour))
	assert.True(t, want.Equal(total))
}

func TestQuoteFor(t *testing.T) {
	q, err := pricing.QuoteFor(catalog.Default(), []pricing.Item{
		{MenuName: "Jollof Rice", Quantity: 100},
		{MenuName: "Grilled Chicken", Quantity: 0},
	}, pricing.Options{
		CateringServiceType: "Buffet Style",
		StartTime:           pricing.MustTimeOfDay("18:00"),
		EndTime:             pricing.MustTimeOfDay("23:30"),
		RatePerHour:         pricing.DefaultRatePerHour,
	})
	require.NoError(t, err)

	require.Len(t, q.Selections, 2)
	assert.Equal(t, 1, q.Selections[1].Quantity)
	assertDecimal(t, "152500", q.MenuSubtotal)
	assertDecimal(t, "30000", q.ServiceSurcharge)
	assert.Equal(t, 6, q.DurationHours)
	assertDecimal(t, "60000", q.DurationSurcharge)
	assertDecimal(t, "242500", q.GrandTotal)

	_, err = pricing.QuoteFor(catalog.Default(), []pricing.Item{{MenuName: "Nope", Quantity: 1}}, pricing.Options{})
	assert.ErrorIs(t, err, pricing.ErrUnknownMenu)
}

func TestQuote_EmptyAndApplyTo(t *testing.T) {
	q := pricing.NewSession(catalog.Default()).Quote(pricing.Options{RatePerHour: pricing.DefaultRatePerHour})
	assert.Equal(t, pricing.StateEmpty, q.State)
	assert.NotNil(t, q.Selections)
	assert.True(t, q.GrandTotal.IsZero())

	q, err := pricing.QuoteFor(catalog.Default(), []pricing.Item{{MenuName: "Beef Stew", Quantity: 2}}, pricing.Options{
		CateringServiceType: "Drop-off",
		StartTime:           pricing.MustTimeOfDay("22:00"),
		EndTime:             pricing.MustTimeOfDay("02:00"),
		RatePerHour:         pricing.DefaultRatePerHour,
	})
	require.NoError(t, err)

	var ev models.Event
	q.ApplyTo(&ev)
	assert.Equal(t, "22:00", ev.StartTime)
	assert.Equal(t, "02:00", ev.EndTime)
	assert.Equal(t, 4, ev.DurationHours)
	assertDecimal(t, "4400", ev.MenuSubtotal)
	assertDecimal(t, "54400", ev.GrandTotal)
	assert.Len(t, ev.Selections, 1)
}

func TestTimeOfDay_JSON(t *testing.T) {
	var body struct {
		Start pricing.TimeOfDay `json:"start"`
		End   pricing.TimeOfDay `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"7:05","end":""}`), &body))
	assert.Equal(t, "07:05", body.Start.String())
	assert.False(t, body.End.IsSet())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"07:05","end":""}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"25:00"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"start":930}`), &body))
}

func TestState_Text(t *testing.T) {
	for _, s := range []pricing.State{pricing.StateEmpty, pricing.StateHasSelections} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back pricing.State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	var s pricing.State
	assert.Error(t, s.UnmarshalText([]byte("finished")))
}
