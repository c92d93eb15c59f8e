// Package goal computes daily water and calorie targets from profile
// attributes and current weather.
//
// All functions are pure: the same inputs always produce the same outputs.
// Tuning constants live in Config so deployments can adjust them without
// touching the formulas.
package goal

import "strings"

// Config holds the tuning constants for goal and workout computations.
type Config struct {
	// WaterPerKgML is the baseline water requirement per kilogram of body weight.
	WaterPerKgML float64
	// ActivityChunkMin is the activity block size that earns water/calorie bonuses.
	ActivityChunkMin int
	// WaterPerChunkML is the water bonus per full activity chunk.
	WaterPerChunkML int
	// WarmWeatherThresholdC is the temperature above which the weather bonus applies.
	WarmWeatherThresholdC float64
	// WarmWeatherBonusML is the extra water for warm weather.
	WarmWeatherBonusML int
	// CaloriesPerChunk is the calorie goal bonus per full activity chunk.
	CaloriesPerChunk int
	// WorkoutRates maps lowercase workout type names to kcal burned per minute.
	WorkoutRates map[string]int
	// DefaultWorkoutRate applies to workout types missing from WorkoutRates.
	DefaultWorkoutRate int
	// WorkoutWaterPerChunkML is the suggested extra water per full workout chunk.
	WorkoutWaterPerChunkML int
}

// DefaultConfig returns the canonical tuning values.
func DefaultConfig() Config {
	return Config{
		WaterPerKgML:          30,
		ActivityChunkMin:      30,
		WaterPerChunkML:       500,
		WarmWeatherThresholdC: 25,
		WarmWeatherBonusML:    500,
		CaloriesPerChunk:      100,
		WorkoutRates: map[string]int{
			"running":  10,
			"walking":  5,
			"strength": 8,
		},
		DefaultWorkoutRate:     6,
		WorkoutWaterPerChunkML: 200,
	}
}

// WaterGoal derives the daily water target in milliliters from body weight,
// daily activity minutes and the current temperature. A failure-sentinel
// temperature (far below zero) never clears the warm-weather threshold, so
// an unavailable weather lookup simply skips the bonus.
func (c Config) WaterGoal(weightKg float64, activityMin int, temperatureC float64) int {
	base := weightKg * c.WaterPerKgML
	activityBonus := activityMin / c.ActivityChunkMin * c.WaterPerChunkML
	weatherBonus := 0
	if temperatureC > c.WarmWeatherThresholdC {
		weatherBonus = c.WarmWeatherBonusML
	}
	return int(base) + activityBonus + weatherBonus
}

// CalorieGoal derives the daily calorie target in kcal using a
// Mifflin-St Jeor style basal metabolic rate plus an activity bonus.
func (c Config) CalorieGoal(weightKg, heightCm float64, ageYears, activityMin int) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	activityBonus := activityMin / c.ActivityChunkMin * c.CaloriesPerChunk
	return int(bmr) + activityBonus
}

// BurnRate returns kcal burned per minute for a workout type. The lookup is
// case-insensitive; unknown types fall back to DefaultWorkoutRate.
func (c Config) BurnRate(workoutType string) int {
	if rate, ok := c.WorkoutRates[strings.ToLower(workoutType)]; ok {
		return rate
	}
	return c.DefaultWorkoutRate
}

// WorkoutWaterSuggestion returns the informational extra-water suggestion in
// milliliters for a workout of the given duration. It is never persisted and
// never added to any goal.
func (c Config) WorkoutWaterSuggestion(minutes int) int {
	return minutes / c.ActivityChunkMin * c.WorkoutWaterPerChunkML
}
