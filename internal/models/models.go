// Package models defines the shared data types for AquaBalance.
package models

// UnknownTemperature is the sentinel returned into goal computation when the
// weather lookup fails. It is far below any warm-weather threshold, so the
// weather bonus is simply skipped.
const UnknownTemperature = -900.0

// UserRecord holds one user's profile, daily goals and daily accumulators.
// Profile fields are pointers: nil means "not yet provided", which is
// distinct from an explicit zero. Goal and accumulator fields always carry a
// numeric value and default to 0.
type UserRecord struct {
	UserID int64 `json:"user_id"`

	Weight   *float64 `json:"weight,omitempty"`   // kg
	Height   *float64 `json:"height,omitempty"`   // cm
	Age      *int     `json:"age,omitempty"`      // years
	Activity *int     `json:"activity,omitempty"` // minutes per day
	City     *string  `json:"city,omitempty"`

	WaterGoalML     int `json:"water_goal_ml"`
	CalorieGoalKcal int `json:"calorie_goal_kcal"`

	LoggedWaterML  float64 `json:"logged_water_ml"`
	LoggedCalories float64 `json:"logged_calories"`
	BurnedCalories float64 `json:"burned_calories"`
}

// PendingFood is the transient food selection held between a successful
// /log_food lookup and the follow-up gram-quantity message. It is
// conversation-scoped and never persisted.
type PendingFood struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
}

// Progress is a read-only snapshot of a user's standing against their daily
// goals, computed from a UserRecord without mutating it.
type Progress struct {
	WaterDrunkML    float64 `json:"water_drunk_ml"`
	WaterGoalML     int     `json:"water_goal_ml"`
	WaterLeftML     float64 `json:"water_left_ml"`
	CaloriesEaten   float64 `json:"calories_eaten"`
	CaloriesBurned  float64 `json:"calories_burned"`
	CalorieGoalKcal int     `json:"calorie_goal_kcal"`
	Balance         float64 `json:"balance"`
	CaloriesLeft    float64 `json:"calories_left"`
}

// Food is a resolved nutrition lookup result: a canonical product name and
// its energy density per 100 grams.
type Food struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
}
