package domain

import "time"

type Campaign struct {
	ID             string
	Name           string
	Topic          string // phishing, passwords, data_handling, social_engineering
	Audience       string // all_staff, engineering, finance, executives
	Status         string // draft, running, completed
	Owner          string
	TargetCount    float64
	CompletionRate float64 // 0..100
	ClickRate      float64 // phishing simulations only, 0..100
	StartedAt      time.Time
	EndsAt         *time.Time
}
