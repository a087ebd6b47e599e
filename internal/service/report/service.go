package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/authz"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/customer"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/report"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/database"
	"github.com/nippo-dev/nippo-backend-go/internal/repository/postgresql"
)

type ReportServiceImpl struct {
	db *database.DB
	report.ReportRepository
	report.CommentRepository
}

func NewReportService(db *database.DB, reportRepository report.ReportRepository, commentRepository report.CommentRepository) report.ReportService {
	return &ReportServiceImpl{
		db:                db,
		ReportRepository:  reportRepository,
		CommentRepository: commentRepository,
	}
}

// List implements report.ReportService. Visibility follows the actor's role:
// admins see everything, managers see their department's SALES reports plus
// their own, everyone else sees only their own.
func (s *ReportServiceImpl) List(ctx context.Context, actor user.User, q report.ListQuery) (report.ListResponse, error) {
	q.Normalize()

	scope := authz.ReportListScope(actor)
	items, total, err := s.ReportRepository.List(ctx, scope, q.Page, q.Limit)
	if err != nil {
		return report.ListResponse{}, fmt.Errorf("failed to list reports: %w", err)
	}
	if items == nil {
		items = []report.ListItem{}
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	return report.ListResponse{
		Reports: items,
		Pagination: report.Pagination{
			CurrentPage: q.Page,
			TotalPages:  totalPages,
			TotalCount:  total,
		},
	}, nil
}

// Create implements report.ReportService. The report and its visit records
// are written in one transaction.
func (s *ReportServiceImpl) Create(ctx context.Context, actor user.User, req report.CreateReportRequest) (report.CreateReportResponse, error) {
	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		return report.CreateReportResponse{}, fmt.Errorf("invalid report date: %w", err)
	}

	exists, err := s.ReportRepository.ExistsByUserAndDate(ctx, actor.ID, reportDate)
	if err != nil {
		return report.CreateReportResponse{}, fmt.Errorf("failed to check for existing report: %w", err)
	}
	if exists {
		return report.CreateReportResponse{}, report.ErrDuplicateReport
	}

	newReport := report.DailyReport{
		UserID:     actor.ID,
		ReportDate: reportDate,
		Status:     report.StatusDraft,
	}
	if req.Status == "submitted" {
		now := time.Now()
		newReport.Status = report.StatusSubmitted
		newReport.SubmittedAt = &now
	}

	visits := make([]report.VisitRecord, 0, len(req.VisitRecords))
	for _, v := range req.VisitRecords {
		visitAt, err := time.Parse(time.RFC3339, v.VisitDatetime)
		if err != nil {
			return report.CreateReportResponse{}, fmt.Errorf("invalid visit datetime: %w", err)
		}
		visits = append(visits, report.VisitRecord{
			CustomerID:    v.CustomerID,
			VisitDatetime: visitAt,
			Purpose:       v.Purpose,
			Content:       v.Content,
			Problem:       v.Problem,
			Plan:          v.Plan,
			DisplayOrder:  v.DisplayOrder,
		})
	}

	var created report.DailyReport
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.ReportRepository.Create(txCtx, newReport)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		if err := s.ReportRepository.CreateVisitRecords(txCtx, created.ID, visits); err != nil {
			return fmt.Errorf("failed to create visit records: %w", err)
		}
		return nil
	})
	if err != nil {
		return report.CreateReportResponse{}, err
	}

	return report.CreateReportResponse{
		ID:         created.ID,
		ReportDate: created.ReportDate.Format("2006-01-02"),
		Status:     created.Status.Lower(),
		CreatedAt:  created.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Get implements report.ReportService. Single-report access is owner or any
// MANAGER/ADMIN; this is intentionally wider than the list scope.
func (s *ReportServiceImpl) Get(ctx context.Context, actor user.User, id int) (report.DetailResponse, error) {
	rep, err := s.ReportRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.DetailResponse{}, report.ErrReportNotFound
		}
		return report.DetailResponse{}, fmt.Errorf("failed to get report: %w", err)
	}

	if err := authz.CanViewReport(actor, rep.UserID).Err(); err != nil {
		return report.DetailResponse{}, err
	}

	visits, err := s.ReportRepository.ListVisitRecords(ctx, id)
	if err != nil {
		return report.DetailResponse{}, fmt.Errorf("failed to list visit records: %w", err)
	}
	comments, err := s.CommentRepository.ListByReport(ctx, id)
	if err != nil {
		return report.DetailResponse{}, fmt.Errorf("failed to list comments: %w", err)
	}

	detail := report.DetailResponse{
		ID:           rep.ID,
		ReportDate:   rep.ReportDate.Format("2006-01-02"),
		Status:       rep.Status.Lower(),
		User:         user.Ref{ID: rep.UserID, Name: rep.UserName},
		VisitRecords: make([]report.VisitRecordResponse, 0, len(visits)),
		Comments:     make([]report.CommentResponse, 0, len(comments)),
	}
	if rep.SubmittedAt != nil {
		submitted := rep.SubmittedAt.Format(time.RFC3339)
		detail.SubmittedAt = &submitted
	}
	for _, v := range visits {
		detail.VisitRecords = append(detail.VisitRecords, report.VisitRecordResponse{
			ID:            v.ID,
			Customer:      customer.Ref{ID: v.CustomerID, Name: v.CustomerName},
			VisitDatetime: v.VisitDatetime.Format(time.RFC3339),
			Purpose:       v.Purpose,
			Content:       v.Content,
			Problem:       v.Problem,
			Plan:          v.Plan,
			DisplayOrder:  v.DisplayOrder,
		})
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, report.CommentResponse{
			ID:        c.ID,
			Content:   c.Content,
			User:      user.Ref{ID: c.UserID, Name: c.AuthorName},
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}

	return detail, nil
}

// AddComment implements report.ReportService.
func (s *ReportServiceImpl) AddComment(ctx context.Context, actor user.User, reportID int, req report.CreateCommentRequest) (report.CommentResponse, error) {
	rep, err := s.ReportRepository.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.CommentResponse{}, report.ErrReportNotFound
		}
		return report.CommentResponse{}, fmt.Errorf("failed to get report: %w", err)
	}

	if err := authz.CanCommentOnReport(actor, rep.UserID).Err(); err != nil {
		return report.CommentResponse{}, err
	}

	created, err := s.CommentRepository.Create(ctx, report.Comment{
		DailyReportID: reportID,
		UserID:        actor.ID,
		Content:       req.Content,
	})
	if err != nil {
		return report.CommentResponse{}, fmt.Errorf("failed to create comment: %w", err)
	}

	return report.CommentResponse{
		ID:        created.ID,
		Content:   created.Content,
		User:      user.Ref{ID: created.UserID, Name: created.AuthorName},
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}, nil
}

// DeleteComment implements report.ReportService. Only the author or an admin
// may delete; managers cannot remove other users' comments.
func (s *ReportServiceImpl) DeleteComment(ctx context.Context, actor user.User, reportID, commentID int) error {
	comment, err := s.CommentRepository.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.ErrCommentNotFound
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment.DailyReportID != reportID {
		return report.ErrCommentNotFound
	}

	if err := authz.CanDeleteComment(actor, comment.UserID).Err(); err != nil {
		return err
	}

	if err := s.CommentRepository.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
