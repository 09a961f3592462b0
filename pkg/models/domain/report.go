package domain

import "time"

// Report represents a complete analysis report rendered by the
// terminal reporter.
type Report struct {
	Title    string
	Period   TimePeriod
	Sections []ReportSection
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]any
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       any
	Unit        string
	Description string
}
