package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akaretnikov/aquabalance/internal/models"
)

// Setup flow prompts. Each re-prompt includes an example value.
const (
	promptWeight   = "What's your weight (in kg)?"
	promptHeight   = "What's your height (in cm)?"
	promptAge      = "How old are you (whole number)?"
	promptActivity = "How many minutes of activity do you get per day?"
	promptCity     = "Which city are you in?"

	repromptDecimal = "Please enter a number (e.g. %s). Try again:"
	repromptInteger = "Please enter a whole number (e.g. %s). Try again:"
)

// StartSetup begins (or restarts) the profile setup flow for a user. Any
// in-progress flow or pending food selection is discarded; the flow always
// re-enters from the weight step.
func (t *Tracker) StartSetup(ctx context.Context, userID int64) (string, error) {
	if _, err := t.loadOrCreate(ctx, userID); err != nil {
		return "", fmt.Errorf("start setup: %w", err)
	}

	t.mu.Lock()
	t.setup[userID] = models.StateAwaitingWeight
	delete(t.pendingFood, userID)
	t.mu.Unlock()

	slog.Info("Tracker setup started", "userID", userID)
	return promptWeight, nil
}

// CancelSetup aborts an in-progress setup flow. Fields committed on earlier
// steps stay committed; the in-progress field is discarded.
func (t *Tracker) CancelSetup(ctx context.Context, userID int64) (string, error) {
	t.mu.Lock()
	state := t.setup[userID]
	delete(t.setup, userID)
	t.mu.Unlock()

	if state == models.StateIdle {
		return "No setup is in progress. Use /set_profile to start one.", nil
	}
	slog.Info("Tracker setup cancelled", "userID", userID, "state", state)
	return "Profile setup cancelled.", nil
}

// handleSetupMessage consumes one message for the current setup step. A
// parse failure re-prompts and stays in the same state without touching
// previously committed fields.
func (t *Tracker) handleSetupMessage(ctx context.Context, userID int64, state models.SetupState, text string) (string, error) {
	record, err := t.loadOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("setup step: %w", err)
	}

	switch state {
	case models.StateAwaitingWeight:
		weight, err := parseDecimal(text)
		if err != nil {
			return fmt.Sprintf(repromptDecimal, "80"), nil
		}
		record.Weight = &weight
		return t.commitStep(userID, record, models.StateAwaitingHeight, promptHeight)

	case models.StateAwaitingHeight:
		height, err := parseDecimal(text)
		if err != nil {
			return fmt.Sprintf(repromptDecimal, "180"), nil
		}
		record.Height = &height
		return t.commitStep(userID, record, models.StateAwaitingAge, promptAge)

	case models.StateAwaitingAge:
		age, err := parseInt(text)
		if err != nil {
			return fmt.Sprintf(repromptInteger, "26"), nil
		}
		record.Age = &age
		return t.commitStep(userID, record, models.StateAwaitingActivity, promptActivity)

	case models.StateAwaitingActivity:
		activity, err := parseInt(text)
		if err != nil {
			return fmt.Sprintf(repromptInteger, "45"), nil
		}
		record.Activity = &activity
		return t.commitStep(userID, record, models.StateAwaitingCity, promptCity)

	case models.StateAwaitingCity:
		return t.completeSetup(ctx, userID, record, text)
	}

	// Unknown state: drop the flow rather than trap the user in it.
	slog.Error("Tracker unknown setup state", "userID", userID, "state", state)
	t.mu.Lock()
	delete(t.setup, userID)
	t.mu.Unlock()
	return "Something went wrong with the setup flow. Use /set_profile to start over.", nil
}

// commitStep persists the field set on this step and advances the flow.
func (t *Tracker) commitStep(userID int64, record models.UserRecord, next models.SetupState, prompt string) (string, error) {
	if err := t.store.SaveUser(record); err != nil {
		return "", fmt.Errorf("commit setup step: %w", err)
	}
	t.mu.Lock()
	t.setup[userID] = next
	t.mu.Unlock()
	slog.Info("Tracker setup advanced", "userID", userID, "next", next)
	return prompt, nil
}

// completeSetup runs the city step: weather lookup, goal computation,
// accumulator reset, and flow completion. A failed weather lookup warns but
// still completes the flow with the sentinel temperature, which suppresses
// the warm-weather bonus.
func (t *Tracker) completeSetup(ctx context.Context, userID int64, record models.UserRecord, city string) (string, error) {
	record.City = &city

	var warning string
	temperature, err := t.weather.Temperature(ctx, city)
	if err != nil {
		slog.Warn("Tracker weather lookup failed", "error", err, "userID", userID, "city", city)
		temperature = models.UnknownTemperature
		warning = "Sorry, I couldn't find your city, so the weather bonus is skipped. You can re-run /set_profile to try again.\n"
	}

	record.WaterGoalML = t.goals.WaterGoal(orZeroFloat(record.Weight), orZeroInt(record.Activity), temperature)
	record.CalorieGoalKcal = t.goals.CalorieGoal(orZeroFloat(record.Weight), orZeroFloat(record.Height), orZeroInt(record.Age), orZeroInt(record.Activity))
	record.LoggedWaterML = 0
	record.LoggedCalories = 0
	record.BurnedCalories = 0

	if err := t.store.SaveUser(record); err != nil {
		return "", fmt.Errorf("complete setup: %w", err)
	}

	t.mu.Lock()
	delete(t.setup, userID)
	t.mu.Unlock()

	slog.Info("Tracker setup completed", "userID", userID, "waterGoalML", record.WaterGoalML, "calorieGoalKcal", record.CalorieGoalKcal)
	return fmt.Sprintf(
		"%sYour profile is saved!\nWater goal: %d ml per day\nCalorie goal: %d kcal per day\nYou can now log water, food and workouts.",
		warning, record.WaterGoalML, record.CalorieGoalKcal,
	), nil
}
