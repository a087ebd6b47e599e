package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/customer"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/report"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/jwt"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/password"
	authService "github.com/nippo-dev/nippo-backend-go/internal/service/auth"
	customerService "github.com/nippo-dev/nippo-backend-go/internal/service/customer"
	userService "github.com/nippo-dev/nippo-backend-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appTestSecret = "test-secret-key-for-jwt"

// memUserRepo is an in-memory user.UserRepository for handler tests.
type memUserRepo struct {
	users  map[int]user.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int]user.User{}, nextID: 1}
}

func (m *memUserRepo) add(u user.User) user.User {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u
}

func (m *memUserRepo) GetByID(_ context.Context, id int) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (m *memUserRepo) GetProfile(_ context.Context, id int) (user.Profile, error) {
	u, ok := m.users[id]
	if !ok {
		return user.Profile{}, pgx.ErrNoRows
	}
	p := user.Profile{User: u}
	if u.DepartmentID != nil {
		p.Department = &user.Ref{ID: *u.DepartmentID, Name: "営業1課"}
	}
	if u.ManagerID != nil {
		if mgr, ok := m.users[*u.ManagerID]; ok {
			p.Manager = &user.Ref{ID: mgr.ID, Name: mgr.Name}
		}
	}
	return p, nil
}

func (m *memUserRepo) List(_ context.Context) ([]user.Profile, error) {
	var profiles []user.Profile
	for id, u := range m.users {
		if !u.IsActive {
			continue
		}
		p, _ := m.GetProfile(context.Background(), id)
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (m *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	return m.add(u), nil
}

func (m *memUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) Deactivate(_ context.Context, id int) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = false
	m.users[id] = u
	return nil
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// memCustomerRepo is an in-memory customer.CustomerRepository.
type memCustomerRepo struct {
	customers map[int]customer.Customer
	nextID    int
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: map[int]customer.Customer{}, nextID: 1}
}

func (m *memCustomerRepo) List(_ context.Context, keyword string) ([]customer.Customer, error) {
	var out []customer.Customer
	for _, c := range m.customers {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCustomerRepo) GetByID(_ context.Context, id int) (customer.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return customer.Customer{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *memCustomerRepo) Create(_ context.Context, c customer.Customer) (customer.Customer, error) {
	c.ID = m.nextID
	c.IsActive = true
	m.nextID++
	m.customers[c.ID] = c
	return c, nil
}

func (m *memCustomerRepo) Update(_ context.Context, c customer.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *memCustomerRepo) Deactivate(_ context.Context, id int) error {
	c, ok := m.customers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.IsActive = false
	m.customers[id] = c
	return nil
}

// stubReportService returns canned domain errors so the tests can check the
// HTTP mapping without a database.
type stubReportService struct{}

func (stubReportService) List(context.Context, user.User, report.ListQuery) (report.ListResponse, error) {
	return report.ListResponse{Reports: []report.ListItem{}}, nil
}

func (stubReportService) Create(context.Context, user.User, report.CreateReportRequest) (report.CreateReportResponse, error) {
	return report.CreateReportResponse{}, report.ErrDuplicateReport
}

func (stubReportService) Get(context.Context, user.User, int) (report.DetailResponse, error) {
	return report.DetailResponse{}, report.ErrReportNotFound
}

func (stubReportService) AddComment(context.Context, user.User, int, report.CreateCommentRequest) (report.CommentResponse, error) {
	return report.CommentResponse{}, report.ErrReportNotFound
}

func (stubReportService) DeleteComment(context.Context, user.User, int, int) error {
	return report.ErrReportNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testApp struct {
	router    http.Handler
	jwt       jwt.Service
	users     *memUserRepo
	customers *memCustomerRepo
	admin     user.User
	manager   user.User
	sales     user.User
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := newMemUserRepo()
	hash, err := password.Hash("password123")
	require.NoError(t, err)

	dept := 1
	admin := users.add(user.User{Name: "管理者", Email: "admin@example.com", PasswordHash: hash, Role: user.RoleAdmin, IsActive: true})
	manager := users.add(user.User{Name: "鈴木部長", Email: "suzuki@example.com", PasswordHash: hash, Role: user.RoleManager, DepartmentID: &dept, IsActive: true})
	managerID := manager.ID
	sales := users.add(user.User{Name: "山田太郎", Email: "yamada@example.com", PasswordHash: hash, Role: user.RoleSales, DepartmentID: &dept, ManagerID: &managerID, IsActive: true})

	customers := newMemCustomerRepo()

	jwtService := jwt.NewJWTService(appTestSecret, "1h", false)
	authSvc := authService.NewAuthService(users, jwtService)
	customerSvc := customerService.NewCustomerService(customers)
	userSvc := userService.NewUserService(users)

	router := NewRouter(
		RouterConfig{Env: "test", LogLevel: slog.LevelError, AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		users,
		NewAuthHandler(jwtService, authSvc),
		NewReportHandler(stubReportService{}),
		NewCustomerHandler(customerSvc),
		NewUserHandler(userSvc),
	)

	return &testApp{
		router:    router,
		jwt:       jwtService,
		users:     users,
		customers: customers,
		admin:     admin,
		manager:   manager,
		sales:     sales,
	}
}

func (a *testApp) request(t *testing.T, method, path string, body interface{}, as *user.User) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		token, _, err := a.jwt.Issue(jwt.Claims{UserID: as.ID, Email: as.Email, Role: as.Role})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestLoginSuccess(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "yamada@example.com",
		"password": "password123",
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID         int    `json:"id"`
			Name       string `json:"name"`
			Email      string `json:"email"`
			Role       string `json:"role"`
			Department *struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"department"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "sales", data.User.Role)
	assert.Equal(t, "山田太郎", data.User.Name)
	require.NotNil(t, data.User.Department)
	assert.Equal(t, "営業1課", data.User.Department.Name)

	var authCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == jwt.AuthTokenCookieName {
			authCookie = c
		}
	}
	require.NotNil(t, authCookie, "login must set the auth cookie")
	assert.True(t, authCookie.HttpOnly)
	assert.Equal(t, data.Token, authCookie.Value)
}

func TestLoginFailureUniformResponse(t *testing.T) {
	app := newTestApp(t)

	wrongPassword := app.request(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "yamada@example.com",
		"password": "wrong-password",
	}, nil)
	unknownEmail := app.request(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// identical bodies so a caller cannot tell which part failed
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())

	env := decodeEnvelope(t, wrongPassword)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	assert.Equal(t, "invalid email or password", env.Error.Message)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.users.Deactivate(context.Background(), app.sales.ID))

	rec := app.request(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "yamada@example.com",
		"password": "password123",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "invalid email or password", env.Error.Message)
}

func TestLoginValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"password": "password123",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "email")
}

func TestMe(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/api/v1/auth/me", nil, &app.sales)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var data struct {
		Role    string `json:"role"`
		Manager *struct {
			Name string `json:"name"`
		} `json:"manager"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "sales", data.Role)
	require.NotNil(t, data.Manager)
	assert.Equal(t, "鈴木部長", data.Manager.Name)
}

func TestLogoutRequiresToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	// An anonymous logout must not touch the cookie either.
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, jwt.AuthTokenCookieName, c.Name)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/auth/logout", nil, &app.sales)
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == jwt.AuthTokenCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestUserRoutesAdminOnly(t *testing.T) {
	app := newTestApp(t)

	for _, actor := range []*user.User{&app.sales, &app.manager} {
		rec := app.request(t, http.MethodGet, "/api/v1/users", nil, actor)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	}

	rec := app.request(t, http.MethodGet, "/api/v1/users", nil, &app.admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"name":     "二人目",
		"email":    "yamada@example.com",
		"password": "password123",
		"role":     "sales",
	}, &app.admin)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_EMAIL", env.Error.Code)
}

func TestUserDeleteDeactivates(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodDelete, "/api/v1/users/"+strconv.Itoa(app.sales.ID), nil, &app.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := app.users.users[app.sales.ID]
	assert.False(t, stored.IsActive, "delete must deactivate, not remove")

	// deactivated account can no longer authenticate
	me := app.request(t, http.MethodGet, "/api/v1/auth/me", nil, &app.sales)
	assert.Equal(t, http.StatusUnauthorized, me.Code)
}

func TestCustomerEditRequiresManager(t *testing.T) {
	app := newTestApp(t)

	body := map[string]string{"name": "株式会社ABC商事"}

	rec := app.request(t, http.MethodPost, "/api/v1/customers", body, &app.sales)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.request(t, http.MethodPost, "/api/v1/customers", body, &app.manager)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCustomerDeleteAdminOnlyAndSoft(t *testing.T) {
	app := newTestApp(t)

	created := app.request(t, http.MethodPost, "/api/v1/customers", map[string]string{"name": "XYZ工業"}, &app.manager)
	require.Equal(t, http.StatusCreated, created.Code)
	env := decodeEnvelope(t, created)
	var data struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	rec := app.request(t, http.MethodDelete, "/api/v1/customers/"+strconv.Itoa(data.ID), nil, &app.manager)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.request(t, http.MethodDelete, "/api/v1/customers/"+strconv.Itoa(data.ID), nil, &app.admin)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := app.customers.customers[data.ID]
	assert.False(t, stored.IsActive, "delete must deactivate, not remove")

	list := app.request(t, http.MethodGet, "/api/v1/customers", nil, &app.sales)
	require.Equal(t, http.StatusOK, list.Code)
	assert.NotContains(t, list.Body.String(), "XYZ工業")
}

func TestReportErrorMapping(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/v1/reports", map[string]interface{}{
		"report_date": "2026-08-28",
		"status":      "submitted",
	}, &app.sales)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_REPORT", env.Error.Code)

	rec = app.request(t, http.MethodGet, "/api/v1/reports/42", nil, &app.sales)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.request(t, http.MethodGet, "/api/v1/reports/abc", nil, &app.sales)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnauthenticatedRequests(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/reports", "/api/v1/customers", "/api/v1/users", "/api/v1/auth/me"} {
		rec := app.request(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

