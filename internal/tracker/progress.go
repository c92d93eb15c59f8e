package tracker

import (
	"context"
	"fmt"

	"github.com/akaretnikov/aquabalance/internal/models"
)

// BuildProgress computes the progress snapshot for a record. Pure: the
// record is not mutated and the same record always yields the same snapshot.
func BuildProgress(record models.UserRecord) models.Progress {
	waterLeft := float64(record.WaterGoalML) - record.LoggedWaterML
	if waterLeft < 0 {
		waterLeft = 0
	}
	balance := record.LoggedCalories - record.BurnedCalories
	caloriesLeft := float64(record.CalorieGoalKcal) - balance
	if caloriesLeft < 0 {
		caloriesLeft = 0
	}
	return models.Progress{
		WaterDrunkML:    record.LoggedWaterML,
		WaterGoalML:     record.WaterGoalML,
		WaterLeftML:     waterLeft,
		CaloriesEaten:   record.LoggedCalories,
		CaloriesBurned:  record.BurnedCalories,
		CalorieGoalKcal: record.CalorieGoalKcal,
		Balance:         balance,
		CaloriesLeft:    caloriesLeft,
	}
}

// CheckProgress reports the user's current standing against their goals. A
// freshly created record reports all zeros.
func (t *Tracker) CheckProgress(ctx context.Context, userID int64) (string, error) {
	record, err := t.loadOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("check progress: %w", err)
	}

	p := BuildProgress(record)
	return fmt.Sprintf(
		"📊 Progress:\n\n"+
			"Water:\n"+
			"- Drunk: %.0f ml of %d ml\n"+
			"- Left: %.0f ml\n\n"+
			"Calories:\n"+
			"- Eaten: %.0f kcal\n"+
			"- Burned: %.0f kcal\n"+
			"- Goal: %d kcal\n"+
			"- Balance (eaten - burned): %.0f kcal\n"+
			"- Left to goal: %.0f kcal",
		p.WaterDrunkML, p.WaterGoalML, p.WaterLeftML,
		p.CaloriesEaten, p.CaloriesBurned, p.CalorieGoalKcal, p.Balance, p.CaloriesLeft,
	), nil
}
