package report

import (
	"strings"
	"time"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
)

func (s Status) Lower() string {
	return strings.ToLower(string(s))
}

type DailyReport struct {
	ID          int
	UserID      int
	ReportDate  time.Time
	Status      Status
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type VisitRecord struct {
	ID            int
	DailyReportID int
	CustomerID    int
	VisitDatetime time.Time
	Purpose       string
	Content       string
	Problem       *string
	Plan          *string
	DisplayOrder  int
}

type Comment struct {
	ID            int
	DailyReportID int
	UserID        int
	Content       string
	CreatedAt     time.Time
}

// Joined shapes returned by the repositories for list/detail views.

type DailyReportWithUser struct {
	DailyReport
	UserName string
}

type VisitRecordWithCustomer struct {
	VisitRecord
	CustomerName string
}

type CommentWithAuthor struct {
	Comment
	AuthorName string
}
