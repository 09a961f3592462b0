package domain

import "time"

type PrivacyRequestType string

const (
	PrivacyRequestAccess        PrivacyRequestType = "access"
	PrivacyRequestErasure       PrivacyRequestType = "erasure"
	PrivacyRequestPortability   PrivacyRequestType = "portability"
	PrivacyRequestRectification PrivacyRequestType = "rectification"
)

type PrivacyRequestStatus string

const (
	PrivacyRequestStatusReceived  PrivacyRequestStatus = "received"
	PrivacyRequestStatusVerifying PrivacyRequestStatus = "verifying"
	PrivacyRequestStatusFulfilled PrivacyRequestStatus = "fulfilled"
	PrivacyRequestStatusRejected  PrivacyRequestStatus = "rejected"
)

// PrivacyRequest is one data-subject request (DSAR) in the privacy register.
type PrivacyRequest struct {
	ID          string
	Subject     string
	Type        PrivacyRequestType
	Regulation  string // gdpr, ccpa, lgpd
	Status      PrivacyRequestStatus
	Assignee    string
	ElapsedDays float64
	ReceivedAt  time.Time
	DueAt       *time.Time
	ClosedAt    *time.Time
}
