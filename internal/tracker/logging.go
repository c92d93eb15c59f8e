package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/akaretnikov/aquabalance/internal/models"
	"github.com/akaretnikov/aquabalance/internal/nutrition"
)

// LogWater records an amount of water in milliliters. The args string is
// the raw command argument tail.
func (t *Tracker) LogWater(ctx context.Context, userID int64, args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "Usage: /log_water <amount in ml>", nil
	}

	amount, err := parseDecimal(fields[0])
	if err != nil {
		return "Please give a number (in ml). For example: /log_water 250", nil
	}

	record, err := t.loadOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("log water: %w", err)
	}

	record.LoggedWaterML += amount
	remaining := float64(record.WaterGoalML) - record.LoggedWaterML
	if remaining < 0 {
		remaining = 0
	}

	if err := t.store.SaveUser(record); err != nil {
		return "", fmt.Errorf("log water: %w", err)
	}

	slog.Info("Tracker water logged", "userID", userID, "amountML", amount, "totalML", record.LoggedWaterML)
	return fmt.Sprintf(
		"Logged %s ml of water.\nTotal drunk: %s ml.\n%s ml left to your goal.",
		formatAmount(amount), formatAmount(record.LoggedWaterML), formatAmount(remaining),
	), nil
}

// LogFood resolves a food name and stores a pending selection; the calories
// are only logged once the user answers the follow-up gram question.
func (t *Tracker) LogFood(ctx context.Context, userID int64, args string) (string, error) {
	query := strings.TrimSpace(args)
	if query == "" {
		return "Usage: /log_food <product name>", nil
	}

	if _, err := t.loadOrCreate(ctx, userID); err != nil {
		return "", fmt.Errorf("log food: %w", err)
	}

	food, err := t.nutrition.Search(ctx, query)
	if err != nil {
		if errors.Is(err, nutrition.ErrNotFound) || errors.Is(err, nutrition.ErrUnavailable) {
			slog.Debug("Tracker food lookup failed", "error", err, "userID", userID, "query", query)
			return fmt.Sprintf("I couldn't find anything for '%s'. Please try again.", query), nil
		}
		return "", fmt.Errorf("log food: %w", err)
	}

	t.mu.Lock()
	t.pendingFood[userID] = models.PendingFood{Name: food.Name, CaloriesPer100g: food.CaloriesPer100g}
	t.mu.Unlock()

	slog.Info("Tracker food selected", "userID", userID, "name", food.Name, "kcal_per_100g", food.CaloriesPer100g)
	return fmt.Sprintf(
		"You picked: %s\nEnergy: %s kcal per 100 g.\nHow many grams did you eat? Reply with a number:",
		food.Name, formatAmount(food.CaloriesPer100g),
	), nil
}

// handleFoodGrams consumes the gram-quantity follow-up for a pending food
// selection. The selection is discarded either way: a bad number means the
// user must restart with /log_food.
func (t *Tracker) handleFoodGrams(ctx context.Context, userID int64, text string) (string, error) {
	t.mu.Lock()
	pending, ok := t.pendingFood[userID]
	delete(t.pendingFood, userID)
	t.mu.Unlock()
	if !ok {
		return "", nil
	}

	grams, err := parseDecimal(text)
	if err != nil {
		slog.Debug("Tracker food grams parse failed", "userID", userID, "text", text)
		return "Please enter a number (grams). Start over with /log_food.", nil
	}

	record, err := t.loadOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("log food grams: %w", err)
	}

	total := pending.CaloriesPer100g * grams / 100
	record.LoggedCalories += total

	if err := t.store.SaveUser(record); err != nil {
		return "", fmt.Errorf("log food grams: %w", err)
	}

	slog.Info("Tracker calories logged", "userID", userID, "name", pending.Name, "kcal", total, "totalKcal", record.LoggedCalories)
	return fmt.Sprintf(
		"Logged: %s — %.1f kcal.\nEaten today: %.1f kcal.",
		pending.Name, total, record.LoggedCalories,
	), nil
}

// LogWorkout records burned calories for a workout and suggests extra water.
// The suggestion is informational only and never persisted.
func (t *Tracker) LogWorkout(ctx context.Context, userID int64, args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return fmt.Sprintf(
			"Usage: /log_workout <type> <minutes>. For example: /log_workout running 30.\nKnown types: %s; anything else burns %d kcal/min.",
			t.knownWorkoutTypes(), t.goals.DefaultWorkoutRate,
		), nil
	}

	workoutType := fields[0]
	minutes, err := parseInt(fields[1])
	if err != nil {
		return "Please give a whole number of minutes. For example: /log_workout running 30", nil
	}

	record, err := t.loadOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("log workout: %w", err)
	}

	burned := t.goals.BurnRate(workoutType) * minutes
	record.BurnedCalories += float64(burned)

	if err := t.store.SaveUser(record); err != nil {
		return "", fmt.Errorf("log workout: %w", err)
	}

	extraWater := t.goals.WorkoutWaterSuggestion(minutes)
	slog.Info("Tracker workout logged", "userID", userID, "type", workoutType, "minutes", minutes, "burnedKcal", burned)
	return fmt.Sprintf(
		"Workout: %s %d min — %d kcal.\nConsider drinking an extra %d ml of water.",
		workoutType, minutes, burned, extraWater,
	), nil
}

// knownWorkoutTypes lists the configured burn-rate table entries for the
// usage hint, in stable order.
func (t *Tracker) knownWorkoutTypes() string {
	types := make([]string, 0, len(t.goals.WorkoutRates))
	for name := range t.goals.WorkoutRates {
		types = append(types, name)
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}

// formatAmount renders a user-supplied quantity without trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
