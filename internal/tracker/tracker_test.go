package tracker

import (
	"context"
	"strings"
	"testing"

	"github.com/akaretnikov/aquabalance/internal/goal"
	"github.com/akaretnikov/aquabalance/internal/models"
	"github.com/akaretnikov/aquabalance/internal/store"
)

type stubWeather struct {
	temp float64
	err  error
}

func (s stubWeather) Temperature(ctx context.Context, city string) (float64, error) {
	return s.temp, s.err
}

type stubNutrition struct {
	food *models.Food
	err  error
}

func (s stubNutrition) Search(ctx context.Context, query string) (*models.Food, error) {
	return s.food, s.err
}

func newTestTracker(w WeatherService, n NutritionService) (*Tracker, *store.InMemoryStore) {
	st := store.NewInMemoryStore()
	return New(st, w, n, goal.DefaultConfig()), st
}

// send is a test helper that fails the test on infrastructure errors.
func send(t *testing.T, fn func() (string, error)) string {
	t.Helper()
	reply, err := fn()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return reply
}

func mustGetUser(t *testing.T, st *store.InMemoryStore, userID int64) models.UserRecord {
	t.Helper()
	record, err := st.GetUser(userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil {
		t.Fatalf("no record for user %d", userID)
	}
	return *record
}

func runSetup(t *testing.T, tr *Tracker, userID int64, answers ...string) string {
	t.Helper()
	ctx := context.Background()
	reply := send(t, func() (string, error) { return tr.StartSetup(ctx, userID) })
	for _, answer := range answers {
		reply = send(t, func() (string, error) { return tr.HandleMessage(ctx, userID, answer) })
	}
	return reply
}

func TestSetupFullFlow(t *testing.T) {
	tr, st := newTestTracker(stubWeather{temp: 30}, stubNutrition{})

	reply := runSetup(t, tr, 1, "80", "180", "26", "45", "Lisbon")

	if !strings.Contains(reply, "3400") || !strings.Contains(reply, "1895") {
		t.Errorf("summary missing computed goals: %q", reply)
	}

	record := mustGetUser(t, st, 1)
	if record.WaterGoalML != 3400 {
		t.Errorf("WaterGoalML = %d, want 3400", record.WaterGoalML)
	}
	if record.CalorieGoalKcal != 1895 {
		t.Errorf("CalorieGoalKcal = %d, want 1895", record.CalorieGoalKcal)
	}
	if record.Weight == nil || *record.Weight != 80 {
		t.Errorf("Weight = %v, want 80", record.Weight)
	}
	if record.City == nil || *record.City != "Lisbon" {
		t.Errorf("City = %v, want Lisbon", record.City)
	}
	if record.LoggedWaterML != 0 || record.LoggedCalories != 0 || record.BurnedCalories != 0 {
		t.Errorf("accumulators not reset: %+v", record)
	}

	// Flow ended: plain text is no longer consumed.
	reply = send(t, func() (string, error) { return tr.HandleMessage(context.Background(), 1, "90") })
	if reply != "" {
		t.Errorf("message consumed after setup ended: %q", reply)
	}
}

func TestSetupParseFailureKeepsState(t *testing.T) {
	tr, st := newTestTracker(stubWeather{temp: 10}, stubNutrition{})
	ctx := context.Background()

	send(t, func() (string, error) { return tr.StartSetup(ctx, 2) })
	reply := send(t, func() (string, error) { return tr.HandleMessage(ctx, 2, "abc") })
	if !strings.Contains(reply, "Try again") {
		t.Errorf("expected re-prompt, got %q", reply)
	}

	record := mustGetUser(t, st, 2)
	if record.Weight != nil {
		t.Errorf("Weight committed on parse failure: %v", *record.Weight)
	}

	// Still at the weight step: a valid number advances to height.
	reply = send(t, func() (string, error) { return tr.HandleMessage(ctx, 2, "80") })
	if !strings.Contains(reply, "height") {
		t.Errorf("expected height prompt, got %q", reply)
	}
	record = mustGetUser(t, st, 2)
	if record.Weight == nil || *record.Weight != 80 {
		t.Errorf("Weight = %v, want 80", record.Weight)
	}
}

func TestSetupCommaDecimalAccepted(t *testing.T) {
	tr, st := newTestTracker(stubWeather{temp: 10}, stubNutrition{})
	ctx := context.Background()

	send(t, func() (string, error) { return tr.StartSetup(ctx, 3) })
	send(t, func() (string, error) { return tr.HandleMessage(ctx, 3, "72,5") })

	record := mustGetUser(t, st, 3)
	if record.Weight == nil || *record.Weight != 72.5 {
		t.Errorf("Weight = %v, want 72.5", record.Weight)
	}
}

func TestSetupCancelKeepsCommittedFields(t *testing.T) {
	tr, st := newTestTracker(stubWeather{temp: 10}, stubNutrition{})
	ctx := context.Background()

	send(t, func() (string, error) { return tr.StartSetup(ctx, 4) })
	send(t, func() (string, error) { return tr.HandleMessage(ctx, 4, "80") })
	reply := send(t, func() (string, error) { return tr.CancelSetup(ctx, 4) })
	if !strings.Contains(reply, "cancelled") {
		t.Errorf("expected cancellation notice, got %q", reply)
	}

	record := mustGetUser(t, st, 4)
	if record.Weight == nil || *record.Weight != 80 {
		t.Errorf("committed Weight lost on cancel: %v", record.Weight)
	}
	if record.Height != nil {
		t.Errorf("Height set after cancel: %v", *record.Height)
	}

	// Idle again: plain text is not consumed.
	reply = send(t, func() (string, error) { return tr.HandleMessage(ctx, 4, "180") })
	if reply != "" {
		t.Errorf("message consumed after cancel: %q", reply)
	}
}

func TestCancelWithoutSetup(t *testing.T) {
	tr, _ := newTestTracker(stubWeather{temp: 10}, stubNutrition{})
	reply := send(t, func() (string, error) { return tr.CancelSetup(context.Background(), 5) })
	if !strings.Contains(reply, "No setup") {
		t.Errorf("expected no-setup notice, got %q", reply)
	}
}

func TestSetupWeatherFailureStillCompletes(t *testing.T) {
	tr, st := newTestTracker(stubWeather{err: context.DeadlineExceeded}, stubNutrition{})

	reply := runSetup(t, tr, 6, "80", "180", "26", "45", "Atlantis")

	if !strings.Contains(reply, "couldn't find your city") {
		t.Errorf("expected weather warning, got %q", reply)
	}
	if !strings.Contains(reply, "profile is saved") {
		t.Errorf("setup did not complete on weather failure: %q", reply)
	}

	record := mustGetUser(t, st, 6)
	// No warm-weather bonus with the sentinel temperature.
	if record.WaterGoalML != 2900 {
		t.Errorf("WaterGoalML = %d, want 2900", record.WaterGoalML)
	}
	if record.CalorieGoalKcal != 1895 {
		t.Errorf("CalorieGoalKcal = %d, want 1895", record.CalorieGoalKcal)
	}
}

func TestSetupResetsAccumulators(t *testing.T) {
	tr, st := newTestTracker(stubWeather{temp: 10}, stubNutrition{})

	seed := models.UserRecord{UserID: 7, LoggedWaterML: 1200, LoggedCalories: 900, BurnedCalories: 300}
	if err := st.SaveUser(seed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runSetup(t, tr, 7, "80", "180", "26", "45", "Oslo")

	record := mustGetUser(t, st, 7)
	if record.LoggedWaterML != 0 || record.LoggedCalories != 0 || record.BurnedCalories != 0 {
		t.Errorf("accumulators not reset at completion: %+v", record)
	}
}

func TestSetupRestartReentersFromWeight(t *testing.T) {
	tr, _ := newTestTracker(stubWeather{temp: 10}, stubNutrition{})
	ctx := context.Background()

	send(t, func() (string, error) { return tr.StartSetup(ctx, 8) })
	send(t, func() (string, error) { return tr.HandleMessage(ctx, 8, "80") })
	send(t, func() (string, error) { return tr.HandleMessage(ctx, 8, "180") })

	// Fresh start mid-flow re-enters from the weight step.
	reply := send(t, func() (string, error) { return tr.StartSetup(ctx, 8) })
	if !strings.Contains(reply, "weight") {
		t.Errorf("expected weight prompt on restart, got %q", reply)
	}
}
