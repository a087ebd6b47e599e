package report

import (
	"context"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
)

type ReportService interface {
	List(ctx context.Context, actor user.User, q ListQuery) (ListResponse, error)
	Create(ctx context.Context, actor user.User, req CreateReportRequest) (CreateReportResponse, error)
	Get(ctx context.Context, actor user.User, id int) (DetailResponse, error)
	AddComment(ctx context.Context, actor user.User, reportID int, req CreateCommentRequest) (CommentResponse, error)
	DeleteComment(ctx context.Context, actor user.User, reportID, commentID int) error
}
