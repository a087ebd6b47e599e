package report

import (
	"github.com/nippo-dev/nippo-backend-go/internal/domain/customer"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/validator"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type ListQuery struct {
	Page  int
	Limit int
}

// Normalize clamps pagination parameters to their allowed ranges.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
}

type VisitRecordInput struct {
	CustomerID    int     `json:"customer_id"`
	VisitDatetime string  `json:"visit_datetime"`
	Purpose       string  `json:"purpose"`
	Content       string  `json:"content"`
	Problem       *string `json:"problem"`
	Plan          *string `json:"plan"`
	DisplayOrder  int     `json:"display_order"`
}

type CreateReportRequest struct {
	ReportDate   string             `json:"report_date"`
	Status       string             `json:"status"`
	VisitRecords []VisitRecordInput `json:"visit_records"`
}

func (r *CreateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.ReportDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "report_date",
			Message: "report_date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsInSlice(r.Status, []string{"draft", "submitted"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be draft or submitted",
		})
	}
	for i, v := range r.VisitRecords {
		field := "visit_records[" + validator.Itoa(i) + "]"
		if v.CustomerID <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".customer_id",
				Message: "customer_id must be a positive integer",
			})
		}
		if _, ok := validator.IsValidDateTime(v.VisitDatetime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".visit_datetime",
				Message: "visit_datetime must be an ISO 8601 timestamp",
			})
		}
		if validator.IsEmpty(v.Purpose) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".purpose",
				Message: "purpose is required",
			})
		}
		if validator.IsEmpty(v.Content) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".content",
				Message: "content is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

func (r *CreateCommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	}
	if len(r.Content) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListItem struct {
	ID           int      `json:"id"`
	ReportDate   string   `json:"report_date"`
	Status       string   `json:"status"`
	SubmittedAt  *string  `json:"submitted_at"`
	User         user.Ref `json:"user"`
	VisitCount   int      `json:"visit_count"`
	CommentCount int      `json:"comment_count"`
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
}

type ListResponse struct {
	Reports    []ListItem `json:"reports"`
	Pagination Pagination `json:"pagination"`
}

type CreateReportResponse struct {
	ID         int    `json:"id"`
	ReportDate string `json:"report_date"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type VisitRecordResponse struct {
	ID            int          `json:"id"`
	Customer      customer.Ref `json:"customer"`
	VisitDatetime string       `json:"visit_datetime"`
	Purpose       string       `json:"purpose"`
	Content       string       `json:"content"`
	Problem       *string      `json:"problem"`
	Plan          *string      `json:"plan"`
	DisplayOrder  int          `json:"display_order"`
}

type CommentResponse struct {
	ID        int      `json:"id"`
	Content   string   `json:"content"`
	User      user.Ref `json:"user"`
	CreatedAt string   `json:"created_at"`
}

type DetailResponse struct {
	ID           int                   `json:"id"`
	ReportDate   string                `json:"report_date"`
	Status       string                `json:"status"`
	SubmittedAt  *string               `json:"submitted_at"`
	User         user.Ref              `json:"user"`
	VisitRecords []VisitRecordResponse `json:"visit_records"`
	Comments     []CommentResponse     `json:"comments"`
}
