package report

import (
	"context"
	"time"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/authz"
)

type ReportRepository interface {
	// List returns one page of reports visible under scope, ordered by
	// report date descending, plus the total matching count.
	List(ctx context.Context, scope authz.ReportScope, page, limit int) ([]ListItem, int64, error)
	GetByID(ctx context.Context, id int) (DailyReportWithUser, error)
	ExistsByUserAndDate(ctx context.Context, userID int, date time.Time) (bool, error)
	Create(ctx context.Context, r DailyReport) (DailyReport, error)
	CreateVisitRecords(ctx context.Context, reportID int, visits []VisitRecord) error
	ListVisitRecords(ctx context.Context, reportID int) ([]VisitRecordWithCustomer, error)
}

type CommentRepository interface {
	GetByID(ctx context.Context, id int) (Comment, error)
	ListByReport(ctx context.Context, reportID int) ([]CommentWithAuthor, error)
	Create(ctx context.Context, c Comment) (CommentWithAuthor, error)
	Delete(ctx context.Context, id int) error
}
