package postgresql

import (
	"context"
	"strconv"
	"time"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/authz"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/report"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// scopeCondition translates an authz.ReportScope into a WHERE fragment.
// Column aliases: r = daily_reports, u = report owner.
func scopeCondition(scope authz.ReportScope, args *[]interface{}) string {
	if scope.All {
		return "TRUE"
	}
	*args = append(*args, scope.UserID)
	cond := "r.user_id = $1"
	if scope.DepartmentID != nil {
		*args = append(*args, string(user.RoleSales), *scope.DepartmentID)
		cond = "(r.user_id = $1 OR (u.role = $2 AND u.department_id = $3))"
	}
	return cond
}

// List implements report.ReportRepository.
func (r *reportRepositoryImpl) List(ctx context.Context, scope authz.ReportScope, page, limit int) ([]report.ListItem, int64, error) {
	q := GetQuerier(ctx, r.db)

	var args []interface{}
	cond := scopeCondition(scope, &args)

	countQuery := `
		SELECT COUNT(*)
		FROM daily_reports r
		JOIN users u ON u.id = r.user_id
		WHERE ` + cond

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := `
		SELECT r.id, r.report_date, r.status, r.submitted_at, u.id, u.name,
			   (SELECT COUNT(*) FROM visit_records v WHERE v.daily_report_id = r.id),
			   (SELECT COUNT(*) FROM comments c WHERE c.daily_report_id = r.id)
		FROM daily_reports r
		JOIN users u ON u.id = r.user_id
		WHERE ` + cond + `
		ORDER BY r.report_date DESC
		LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa((page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []report.ListItem
	for rows.Next() {
		var (
			item        report.ListItem
			reportDate  time.Time
			status      report.Status
			submittedAt *time.Time
		)
		if err := rows.Scan(
			&item.ID,
			&reportDate,
			&status,
			&submittedAt,
			&item.User.ID,
			&item.User.Name,
			&item.VisitCount,
			&item.CommentCount,
		); err != nil {
			return nil, 0, err
		}
		item.ReportDate = reportDate.Format("2006-01-02")
		item.Status = status.Lower()
		if submittedAt != nil {
			s := submittedAt.Format(time.RFC3339)
			item.SubmittedAt = &s
		}
		items = append(items, item)
	}

	return items, total, rows.Err()
}

// GetByID implements report.ReportRepository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, id int) (report.DailyReportWithUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.user_id, r.report_date, r.status, r.submitted_at, r.created_at, r.updated_at, u.name
		FROM daily_reports r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	var rep report.DailyReportWithUser
	err := q.QueryRow(ctx, query, id).Scan(
		&rep.ID,
		&rep.UserID,
		&rep.ReportDate,
		&rep.Status,
		&rep.SubmittedAt,
		&rep.CreatedAt,
		&rep.UpdatedAt,
		&rep.UserName,
	)
	if err != nil {
		return report.DailyReportWithUser{}, err
	}

	return rep, nil
}

// ExistsByUserAndDate implements report.ReportRepository.
func (r *reportRepositoryImpl) ExistsByUserAndDate(ctx context.Context, userID int, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM daily_reports WHERE user_id = $1 AND report_date = $2)`,
		userID, date,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Create implements report.ReportRepository.
func (r *reportRepositoryImpl) Create(ctx context.Context, rep report.DailyReport) (report.DailyReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_reports (user_id, report_date, status, submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, user_id, report_date, status, submitted_at, created_at, updated_at
	`

	var created report.DailyReport
	err := q.QueryRow(ctx, query,
		rep.UserID,
		rep.ReportDate,
		string(rep.Status),
		rep.SubmittedAt,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.ReportDate,
		&created.Status,
		&created.SubmittedAt,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return report.DailyReport{}, err
	}

	return created, nil
}

// CreateVisitRecords implements report.ReportRepository.
func (r *reportRepositoryImpl) CreateVisitRecords(ctx context.Context, reportID int, visits []report.VisitRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO visit_records (daily_report_id, customer_id, visit_datetime, purpose, content, problem, plan, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, v := range visits {
		if _, err := q.Exec(ctx, query,
			reportID,
			v.CustomerID,
			v.VisitDatetime,
			v.Purpose,
			v.Content,
			v.Problem,
			v.Plan,
			v.DisplayOrder,
		); err != nil {
			return err
		}
	}

	return nil
}

// ListVisitRecords implements report.ReportRepository.
func (r *reportRepositoryImpl) ListVisitRecords(ctx context.Context, reportID int) ([]report.VisitRecordWithCustomer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT v.id, v.daily_report_id, v.customer_id, v.visit_datetime, v.purpose, v.content,
			   v.problem, v.plan, v.display_order, c.name
		FROM visit_records v
		JOIN customers c ON c.id = v.customer_id
		WHERE v.daily_report_id = $1
		ORDER BY v.display_order ASC
	`

	rows, err := q.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []report.VisitRecordWithCustomer
	for rows.Next() {
		var v report.VisitRecordWithCustomer
		if err := rows.Scan(
			&v.ID,
			&v.DailyReportID,
			&v.CustomerID,
			&v.VisitDatetime,
			&v.Purpose,
			&v.Content,
			&v.Problem,
			&v.Plan,
			&v.DisplayOrder,
			&v.CustomerName,
		); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}

	return visits, rows.Err()
}

