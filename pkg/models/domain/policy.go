package domain

import "time"

type PolicyStatus string

const (
	PolicyStatusDraft     PolicyStatus = "draft"
	PolicyStatusInReview  PolicyStatus = "in_review"
	PolicyStatusPublished PolicyStatus = "published"
	PolicyStatusRetired   PolicyStatus = "retired"
)

type Policy struct {
	ID          string
	Name        string
	Category    string // security, privacy, hr, operations
	Owner       string
	Status      PolicyStatus
	Version     string
	AckRate     float64 // acknowledgement rate, 0..100
	EffectiveAt time.Time
	ReviewDueAt *time.Time
}
