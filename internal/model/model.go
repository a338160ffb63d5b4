// Package model defines the domain types used across the application.
package model

import "time"

// Status is the review state of a homework submission as reported by the API.
type Status string

// Known review statuses.
const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Homework is a single homework record from the review API.
// Records are compared as a whole to decide whether a notification is due.
type Homework struct {
	Name            string
	Status          Status
	ReviewerComment string
	DateUpdated     string
}

// NotificationKind tells status notifications apart from failure reports.
type NotificationKind string

// Supported notification kinds.
const (
	KindStatus  NotificationKind = "status"
	KindFailure NotificationKind = "failure"
)

// Notification is a journal entry for one delivery attempt.
type Notification struct {
	ID           int64
	Kind         NotificationKind
	HomeworkName string
	Status       Status
	Text         string
	Delivered    bool
	Error        string
	CreatedAt    time.Time
}
