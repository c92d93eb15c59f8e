// Package models defines state types for the profile setup flow.
package models

// SetupState identifies the current step of a user's profile setup flow.
// The zero value means no setup is in progress.
type SetupState string

// Setup flow states. Each state consumes exactly one inbound text message.
const (
	StateIdle             SetupState = ""
	StateAwaitingWeight   SetupState = "awaiting_weight"
	StateAwaitingHeight   SetupState = "awaiting_height"
	StateAwaitingAge      SetupState = "awaiting_age"
	StateAwaitingActivity SetupState = "awaiting_activity"
	StateAwaitingCity     SetupState = "awaiting_city"
)
