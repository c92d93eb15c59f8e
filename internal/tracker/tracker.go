// Package tracker implements the conversational core of AquaBalance: the
// profile setup state machine, the activity logging commands and the
// progress report.
//
// Every entry point takes a user id and returns the reply text to send
// back. Expected user-input mistakes (bad numbers, missing arguments,
// unknown products) are rendered as reply text, never as Go errors; an
// error return always means a store or lookup infrastructure failure.
package tracker

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/akaretnikov/aquabalance/internal/goal"
	"github.com/akaretnikov/aquabalance/internal/models"
	"github.com/akaretnikov/aquabalance/internal/store"
)

// WeatherService resolves a city to its current temperature in Celsius.
type WeatherService interface {
	Temperature(ctx context.Context, city string) (float64, error)
}

// NutritionService resolves a free-text food name to a product.
type NutritionService interface {
	Search(ctx context.Context, query string) (*models.Food, error)
}

// Tracker owns the per-user conversation state and applies the goal and
// logging rules to stored user records.
type Tracker struct {
	store     store.Store
	weather   WeatherService
	nutrition NutritionService
	goals     goal.Config

	// mu guards the conversation-scoped maps. Setup progress and the
	// pending food selection live here, keyed by user id, never in the
	// persisted record.
	mu          sync.Mutex
	setup       map[int64]models.SetupState
	pendingFood map[int64]models.PendingFood
}

// New creates a Tracker over the given collaborators.
func New(st store.Store, weather WeatherService, nutrition NutritionService, goals goal.Config) *Tracker {
	return &Tracker{
		store:       st,
		weather:     weather,
		nutrition:   nutrition,
		goals:       goals,
		setup:       make(map[int64]models.SetupState),
		pendingFood: make(map[int64]models.PendingFood),
	}
}

// loadOrCreate fetches the user's record, lazily creating and persisting a
// zero record on first contact.
func (t *Tracker) loadOrCreate(ctx context.Context, userID int64) (models.UserRecord, error) {
	record, err := t.store.GetUser(userID)
	if err != nil {
		return models.UserRecord{}, err
	}
	if record != nil {
		return *record, nil
	}
	fresh := models.UserRecord{UserID: userID}
	if err := t.store.SaveUser(fresh); err != nil {
		return models.UserRecord{}, err
	}
	slog.Info("Tracker created user record", "userID", userID)
	return fresh, nil
}

// HandleMessage routes a plain-text (non-command) message. An active setup
// flow consumes it first; otherwise a pending food selection interprets it
// as the gram quantity. With neither in progress the message is not
// consumed and the reply is empty.
func (t *Tracker) HandleMessage(ctx context.Context, userID int64, text string) (string, error) {
	t.mu.Lock()
	state := t.setup[userID]
	_, hasPending := t.pendingFood[userID]
	t.mu.Unlock()

	if state != models.StateIdle {
		return t.handleSetupMessage(ctx, userID, state, text)
	}
	if hasPending {
		return t.handleFoodGrams(ctx, userID, text)
	}
	slog.Debug("Tracker message not consumed", "userID", userID)
	return "", nil
}

// parseDecimal parses a decimal number accepting both '.' and ',' separators.
func parseDecimal(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	return strconv.ParseFloat(normalized, 64)
}

// parseInt parses an integer.
func parseInt(text string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(text))
}

// orZeroFloat substitutes 0 for a not-yet-provided profile field.
func orZeroFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// orZeroInt substitutes 0 for a not-yet-provided profile field.
func orZeroInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
