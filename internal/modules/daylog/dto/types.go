package dto

import "time"

type UpdateLogInput struct {
	ID               string
	CaloriesIntake   *float64
	CaloriesExercise *float64
	SleepHours       *float64
	WeightKg         *float64
}

type RecentLogsInput struct {
	Days int
}

type DayLogOutput struct {
	ID string
	// Day is the log's calendar day as YYYY-MM-DD.
	Day              string
	Date             time.Time
	CaloriesIntake   float64
	CaloriesExercise float64
	SleepHours       float64
	WeightKg         *float64
	Balance          float64
}
