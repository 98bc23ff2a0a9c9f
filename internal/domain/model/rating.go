package model

import "time"

// ReviewType classifies a rating's free-form sentiment.
type ReviewType string

const (
	ReviewCompliment ReviewType = "compliment"
	ReviewComplaint  ReviewType = "complaint"
)

// DisputeStatus moves none -> pending -> resolved with no way back.
type DisputeStatus string

const (
	DisputeNone     DisputeStatus = "none"
	DisputePending  DisputeStatus = "pending"
	DisputeResolved DisputeStatus = "resolved"
)

// ManagerAction is the outcome a manager records when resolving a dispute.
type ManagerAction string

const (
	ActionDismissed ManagerAction = "dismissed"
	ActionWarning   ManagerAction = "warning"
)

// ParseManagerAction validates an action supplied by a manager.
func ParseManagerAction(s string) (ManagerAction, bool) {
	switch ManagerAction(s) {
	case ActionDismissed, ActionWarning:
		return ManagerAction(s), true
	}
	return "", false
}

// Rating records one review between two participants of an order. A single
// reviewer rates a single target at most once per order.
type Rating struct {
	ID            int64
	OrderID       int64
	ReviewerID    int64
	TargetID      int64
	Score         int
	ReviewType    ReviewType
	Comment       string
	DisputeStatus DisputeStatus
	ManagerAction ManagerAction
	CreatedAt     time.Time
}

// PerformanceGrade is derived from a participant's average score; it is
// display logic only and never stored.
type PerformanceGrade string

const (
	GradeReward  PerformanceGrade = "reward"
	GradeNeutral PerformanceGrade = "neutral"
	GradePenalty PerformanceGrade = "penalty"
)

// GradeFor maps an average score onto a grade: >=4.5 reward, >=3.5 neutral,
// below that a penalty warning.
func GradeFor(average float64) PerformanceGrade {
	switch {
	case average >= 4.5:
		return GradeReward
	case average >= 3.5:
		return GradeNeutral
	default:
		return GradePenalty
	}
}

// Performance aggregates a chef's or driver's rating history.
type Performance struct {
	Average float64
	Count   int
	Grade   PerformanceGrade
}
