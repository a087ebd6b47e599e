package postgresql

import (
	"context"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/report"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/database"
)

type commentRepositoryImpl struct {
	db *database.DB
}

func NewCommentRepository(db *database.DB) report.CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// GetByID implements report.CommentRepository.
func (r *commentRepositoryImpl) GetByID(ctx context.Context, id int) (report.Comment, error) {
	q := GetQuerier(ctx, r.db)

	var c report.Comment
	err := q.QueryRow(ctx,
		`SELECT id, daily_report_id, user_id, content, created_at FROM comments WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.DailyReportID, &c.UserID, &c.Content, &c.CreatedAt)
	if err != nil {
		return report.Comment{}, err
	}

	return c, nil
}

// ListByReport implements report.CommentRepository.
func (r *commentRepositoryImpl) ListByReport(ctx context.Context, reportID int) ([]report.CommentWithAuthor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.daily_report_id, c.user_id, c.content, c.created_at, u.name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.daily_report_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`

	rows, err := q.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []report.CommentWithAuthor
	for rows.Next() {
		var c report.CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.DailyReportID, &c.UserID, &c.Content, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// Create implements report.CommentRepository.
func (r *commentRepositoryImpl) Create(ctx context.Context, c report.Comment) (report.CommentWithAuthor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO comments (daily_report_id, user_id, content, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, daily_report_id, user_id, content, created_at
		)
		SELECT i.id, i.daily_report_id, i.user_id, i.content, i.created_at, u.name
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`

	var created report.CommentWithAuthor
	err := q.QueryRow(ctx, query, c.DailyReportID, c.UserID, c.Content).Scan(
		&created.ID,
		&created.DailyReportID,
		&created.UserID,
		&created.Content,
		&created.CreatedAt,
		&created.AuthorName,
	)
	if err != nil {
		return report.CommentWithAuthor{}, err
	}

	return created, nil
}

// Delete implements report.CommentRepository.
func (r *commentRepositoryImpl) Delete(ctx context.Context, id int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return report.ErrCommentNotFound
	}

	return nil
}
