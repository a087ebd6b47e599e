package report

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/authz"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/report"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportRepo struct {
	reports   map[int]report.DailyReportWithUser
	listItems []report.ListItem
	listTotal int64
	lastScope authz.ReportScope
	lastPage  int
	lastLimit int
	existing  map[string]bool
}

func (s *stubReportRepo) List(_ context.Context, scope authz.ReportScope, page, limit int) ([]report.ListItem, int64, error) {
	s.lastScope = scope
	s.lastPage = page
	s.lastLimit = limit
	return s.listItems, s.listTotal, nil
}

func (s *stubReportRepo) GetByID(_ context.Context, id int) (report.DailyReportWithUser, error) {
	r, ok := s.reports[id]
	if !ok {
		return report.DailyReportWithUser{}, pgx.ErrNoRows
	}
	return r, nil
}

func (s *stubReportRepo) ExistsByUserAndDate(_ context.Context, userID int, date time.Time) (bool, error) {
	return s.existing[date.Format("2006-01-02")], nil
}

func (s *stubReportRepo) Create(_ context.Context, r report.DailyReport) (report.DailyReport, error) {
	r.ID = 1
	return r, nil
}

func (s *stubReportRepo) CreateVisitRecords(context.Context, int, []report.VisitRecord) error {
	return nil
}

func (s *stubReportRepo) ListVisitRecords(context.Context, int) ([]report.VisitRecordWithCustomer, error) {
	return nil, nil
}

type stubCommentRepo struct {
	comments map[int]report.Comment
	deleted  []int
}

func (s *stubCommentRepo) GetByID(_ context.Context, id int) (report.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return report.Comment{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *stubCommentRepo) ListByReport(context.Context, int) ([]report.CommentWithAuthor, error) {
	return nil, nil
}

func (s *stubCommentRepo) Create(_ context.Context, c report.Comment) (report.CommentWithAuthor, error) {
	c.ID = 10
	c.CreatedAt = time.Now()
	return report.CommentWithAuthor{Comment: c, AuthorName: "author"}, nil
}

func (s *stubCommentRepo) Delete(_ context.Context, id int) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestService(reports *stubReportRepo, comments *stubCommentRepo) report.ReportService {
	return NewReportService(nil, reports, comments)
}

func deptPtr(id int) *int { return &id }

var (
	salesUser   = user.User{ID: 1, Role: user.RoleSales, DepartmentID: deptPtr(1), IsActive: true}
	managerUser = user.User{ID: 2, Role: user.RoleManager, DepartmentID: deptPtr(1), IsActive: true}
	adminUser   = user.User{ID: 3, Role: user.RoleAdmin, IsActive: true}
)

func TestListScopePassedToRepository(t *testing.T) {
	repo := &stubReportRepo{}
	svc := newTestService(repo, &stubCommentRepo{})

	_, err := svc.List(context.Background(), salesUser, report.ListQuery{})
	require.NoError(t, err)
	assert.False(t, repo.lastScope.All)
	assert.Equal(t, salesUser.ID, repo.lastScope.UserID)
	assert.Nil(t, repo.lastScope.DepartmentID)

	_, err = svc.List(context.Background(), managerUser, report.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, managerUser.ID, repo.lastScope.UserID)
	require.NotNil(t, repo.lastScope.DepartmentID)
	assert.Equal(t, 1, *repo.lastScope.DepartmentID)

	_, err = svc.List(context.Background(), adminUser, report.ListQuery{})
	require.NoError(t, err)
	assert.True(t, repo.lastScope.All)
}

func TestListPagination(t *testing.T) {
	repo := &stubReportRepo{listTotal: 45}
	svc := newTestService(repo, &stubCommentRepo{})

	result, err := svc.List(context.Background(), adminUser, report.ListQuery{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pagination.CurrentPage)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.Equal(t, int64(45), result.Pagination.TotalCount)
	assert.NotNil(t, result.Reports)
}

func TestListClampsLimit(t *testing.T) {
	repo := &stubReportRepo{}
	svc := newTestService(repo, &stubCommentRepo{})

	_, err := svc.List(context.Background(), adminUser, report.ListQuery{Page: -5, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastPage)
	assert.Equal(t, report.MaxPageLimit, repo.lastLimit)

	_, err = svc.List(context.Background(), adminUser, report.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, report.DefaultPageLimit, repo.lastLimit)
}

func TestCreateDuplicateDate(t *testing.T) {
	repo := &stubReportRepo{existing: map[string]bool{"2026-08-28": true}}
	svc := newTestService(repo, &stubCommentRepo{})

	_, err := svc.Create(context.Background(), salesUser, report.CreateReportRequest{
		ReportDate: "2026-08-28",
		Status:     "draft",
	})
	assert.ErrorIs(t, err, report.ErrDuplicateReport)
}

func TestGetReportNotFound(t *testing.T) {
	svc := newTestService(&stubReportRepo{reports: map[int]report.DailyReportWithUser{}}, &stubCommentRepo{})

	_, err := svc.Get(context.Background(), adminUser, 99)
	assert.ErrorIs(t, err, report.ErrReportNotFound)
}

func TestGetReportVisibility(t *testing.T) {
	otherSales := user.User{ID: 7, Role: user.RoleSales, DepartmentID: deptPtr(2), IsActive: true}
	otherDeptManager := user.User{ID: 8, Role: user.RoleManager, DepartmentID: deptPtr(2), IsActive: true}
	repo := &stubReportRepo{reports: map[int]report.DailyReportWithUser{
		1: {DailyReport: report.DailyReport{ID: 1, UserID: salesUser.ID, ReportDate: time.Now(), Status: report.StatusSubmitted}, UserName: "山田太郎"},
	}}
	svc := newTestService(repo, &stubCommentRepo{})

	_, err := svc.Get(context.Background(), salesUser, 1)
	assert.NoError(t, err, "owner can view")

	_, err = svc.Get(context.Background(), otherSales, 1)
	var forbidden *authz.ForbiddenError
	assert.ErrorAs(t, err, &forbidden, "other sales cannot view")

	// single-report access is wider than the list scope: any manager may view
	_, err = svc.Get(context.Background(), otherDeptManager, 1)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), adminUser, 1)
	assert.NoError(t, err)
}

func TestAddCommentPermissions(t *testing.T) {
	otherSales := user.User{ID: 7, Role: user.RoleSales, IsActive: true}
	repo := &stubReportRepo{reports: map[int]report.DailyReportWithUser{
		1: {DailyReport: report.DailyReport{ID: 1, UserID: salesUser.ID}},
	}}
	svc := newTestService(repo, &stubCommentRepo{comments: map[int]report.Comment{}})

	_, err := svc.AddComment(context.Background(), salesUser, 1, report.CreateCommentRequest{Content: "メモ"})
	assert.NoError(t, err, "owner can comment on own report")

	_, err = svc.AddComment(context.Background(), managerUser, 1, report.CreateCommentRequest{Content: "確認しました"})
	assert.NoError(t, err)

	_, err = svc.AddComment(context.Background(), otherSales, 1, report.CreateCommentRequest{Content: "nope"})
	var forbidden *authz.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestDeleteCommentPermissions(t *testing.T) {
	repo := &stubReportRepo{reports: map[int]report.DailyReportWithUser{
		1: {DailyReport: report.DailyReport{ID: 1, UserID: salesUser.ID}},
	}}
	comments := &stubCommentRepo{comments: map[int]report.Comment{
		10: {ID: 10, DailyReportID: 1, UserID: managerUser.ID, Content: "確認しました"},
	}}
	svc := newTestService(repo, comments)

	// the report owner did not write the comment and is not an admin
	err := svc.DeleteComment(context.Background(), salesUser, 1, 10)
	var forbidden *authz.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)

	// author can delete
	err = svc.DeleteComment(context.Background(), managerUser, 1, 10)
	assert.NoError(t, err)

	// admin can delete anyone's comment
	err = svc.DeleteComment(context.Background(), adminUser, 1, 10)
	assert.NoError(t, err)

	assert.Equal(t, []int{10, 10}, comments.deleted)
}

func TestDeleteCommentReportMismatch(t *testing.T) {
	repo := &stubReportRepo{reports: map[int]report.DailyReportWithUser{
		1: {DailyReport: report.DailyReport{ID: 1, UserID: salesUser.ID}},
		2: {DailyReport: report.DailyReport{ID: 2, UserID: salesUser.ID}},
	}}
	comments := &stubCommentRepo{comments: map[int]report.Comment{
		10: {ID: 10, DailyReportID: 1, UserID: adminUser.ID},
	}}
	svc := newTestService(repo, comments)

	err := svc.DeleteComment(context.Background(), adminUser, 2, 10)
	assert.ErrorIs(t, err, report.ErrCommentNotFound)
	assert.Empty(t, comments.deleted)
}
