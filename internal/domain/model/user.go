package model

import "time"

// User is an authenticated participant together with the counters the rating
// aggregator maintains about them.
type User struct {
	ID             int64
	Login          string
	PasswordHash   string
	Role           Role
	Warnings       int
	LowRatings     int
	HighRatings    int
	FeedbackPoints int
	CreatedAt      time.Time
}
