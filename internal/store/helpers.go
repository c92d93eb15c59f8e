package store

import (
	"database/sql"

	"github.com/akaretnikov/aquabalance/internal/models"
)

// userColumns is the column order shared by both SQL backends.
const userColumns = `user_id, weight, height, age, activity, city,
	water_goal_ml, calorie_goal_kcal, logged_water_ml, logged_calories, burned_calories`

// scanUserRow scans a UserRecord from a single sql.Row, mapping NULL profile
// columns to nil pointer fields.
func scanUserRow(row *sql.Row) (models.UserRecord, error) {
	var r models.UserRecord
	var weight, height sql.NullFloat64
	var age, activity sql.NullInt64
	var city sql.NullString
	err := row.Scan(
		&r.UserID, &weight, &height, &age, &activity, &city,
		&r.WaterGoalML, &r.CalorieGoalKcal, &r.LoggedWaterML, &r.LoggedCalories, &r.BurnedCalories,
	)
	if err != nil {
		return r, err
	}
	if weight.Valid {
		r.Weight = &weight.Float64
	}
	if height.Valid {
		r.Height = &height.Float64
	}
	if age.Valid {
		v := int(age.Int64)
		r.Age = &v
	}
	if activity.Valid {
		v := int(activity.Int64)
		r.Activity = &v
	}
	if city.Valid {
		r.City = &city.String
	}
	return r, nil
}

// userArgs returns the insert/update arguments for a record in userColumns
// order, with nil profile pointers mapped to NULL.
func userArgs(r models.UserRecord) []interface{} {
	return []interface{}{
		r.UserID,
		nilIfNilFloat(r.Weight),
		nilIfNilFloat(r.Height),
		nilIfNilInt(r.Age),
		nilIfNilInt(r.Activity),
		nilIfNilString(r.City),
		r.WaterGoalML, r.CalorieGoalKcal, r.LoggedWaterML, r.LoggedCalories, r.BurnedCalories,
	}
}

func nilIfNilFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nilIfNilInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nilIfNilString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
