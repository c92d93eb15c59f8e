package goal

import "testing"

func TestWaterGoal(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name        string
		weight      float64
		activity    int
		temperature float64
		want        int
	}{
		{"warm day with activity", 80, 45, 30, 3400},
		{"cool day no activity", 80, 0, 10, 2400},
		{"threshold is exclusive", 80, 0, 25, 2400},
		{"just above threshold", 80, 0, 25.1, 2900},
		{"sentinel temperature skips bonus", 80, 45, -900, 2900},
		{"zero weight", 0, 0, 10, 0},
		{"partial chunk earns nothing", 70, 29, 10, 2100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.WaterGoal(tt.weight, tt.activity, tt.temperature)
			if got != tt.want {
				t.Errorf("WaterGoal(%v, %v, %v) = %d, want %d", tt.weight, tt.activity, tt.temperature, got, tt.want)
			}
		})
	}
}

func TestCalorieGoal(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		weight   float64
		height   float64
		age      int
		activity int
		want     int
	}{
		{"reference profile", 80, 180, 26, 45, 1895},
		{"no activity", 80, 180, 26, 0, 1795},
		{"all zero inputs", 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.CalorieGoal(tt.weight, tt.height, tt.age, tt.activity)
			if got != tt.want {
				t.Errorf("CalorieGoal(%v, %v, %v, %v) = %d, want %d", tt.weight, tt.height, tt.age, tt.activity, got, tt.want)
			}
		})
	}
}

func TestCalorieGoalDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	first := cfg.CalorieGoal(72.5, 176, 31, 60)
	for i := 0; i < 10; i++ {
		if got := cfg.CalorieGoal(72.5, 176, 31, 60); got != first {
			t.Fatalf("CalorieGoal not deterministic: got %d, want %d", got, first)
		}
	}
}

func TestBurnRate(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.BurnRate("running"); got != 10 {
		t.Errorf("BurnRate(running) = %d, want 10", got)
	}
	if got := cfg.BurnRate("RUNNING"); got != 10 {
		t.Errorf("BurnRate is not case-insensitive: got %d, want 10", got)
	}
	if got := cfg.BurnRate("swimming"); got != cfg.DefaultWorkoutRate {
		t.Errorf("BurnRate(unknown) = %d, want default %d", got, cfg.DefaultWorkoutRate)
	}
}

func TestWorkoutWaterSuggestion(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.WorkoutWaterSuggestion(30); got != 200 {
		t.Errorf("WorkoutWaterSuggestion(30) = %d, want 200", got)
	}
	if got := cfg.WorkoutWaterSuggestion(29); got != 0 {
		t.Errorf("WorkoutWaterSuggestion(29) = %d, want 0", got)
	}
	if got := cfg.WorkoutWaterSuggestion(90); got != 600 {
		t.Errorf("WorkoutWaterSuggestion(90) = %d, want 600", got)
	}
}
