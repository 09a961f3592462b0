package domain

import "time"

// CalendarEvent is one compliance-calendar deadline: a filing, an
// assessment, a certification renewal or a recurring review.
type CalendarEvent struct {
	ID           string
	Name         string
	Framework    string
	EventType    string // filing, assessment, renewal, review
	Owner        string
	Status       string // upcoming, in_progress, done, overdue
	Recurrence   string // once, monthly, quarterly, annual
	LeadTimeDays float64
	DueAt        time.Time
	CompletedAt  *time.Time
}
