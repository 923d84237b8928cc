package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/database"
	"github.com/phyn2-2/veritas-phase1/internal/dto"
	"github.com/phyn2-2/veritas-phase1/internal/handlers"
	"github.com/phyn2-2/veritas-phase1/internal/models"
	"github.com/phyn2-2/veritas-phase1/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:         "0123456789abcdef0123456789abcdef",
		JWTAccessExpiry:   30 * time.Minute,
		MaxPendingPerUser: 3,
		GlobalPendingCap:  1000,
		DefaultPageSize:   50,
		MaxPageSize:       100,
	}

	authService := services.NewAuthService(db, cfg)
	submissionService := services.NewSubmissionService(db, cfg)
	verificationService := services.NewVerificationService(db)
	catalogService := services.NewCatalogService(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
		},
	})

	Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewSubmissionHandler(submissionService, cfg),
		handlers.NewAdminHandler(submissionService, verificationService, cfg),
		handlers.NewAssetHandler(catalogService, cfg),
		handlers.NewHealthHandler(),
	)
	return &testEnv{app: app, db: db, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "Password1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.request(t, http.MethodPost, "/api/login", "", dto.LoginRequest{
		Identifier: username,
		Password:   "Password1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok dto.TokenResponse
	decodeBody(t, resp, &tok)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func (e *testEnv) promote(t *testing.T, username string) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.User{}).
		Where("username = ?", username).
		Update("is_admin", true).Error)
}

func submissionBody(title string) dto.CreateSubmissionRequest {
	return dto.CreateSubmissionRequest{
		Title:       title,
		Description: "a description",
		Type:        models.TypeIdea,
	}
}

func TestRegisterStatusCodes(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "Password1",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Duplicate username.
	resp = env.request(t, http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Username: "alice", Email: "alice2@example.com", Password: "Password1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Weak password.
	resp = env.request(t, http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "weak",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginStatusCodes(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "alice")

	resp := env.request(t, http.MethodPost, "/api/login", "", dto.LoginRequest{
		Identifier: "alice", Password: "Wrong1pass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/login", "", dto.LoginRequest{
		Identifier: "ghost", Password: "Password1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSubmissionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "alice")

	// No token: 401.
	resp := env.request(t, http.MethodPost, "/api/submissions", "", submissionBody("nope"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Create up to the quota.
	var last models.Submission
	for i := 0; i < env.cfg.MaxPendingPerUser; i++ {
		resp = env.request(t, http.MethodPost, "/api/submissions", token, submissionBody(fmt.Sprintf("s%d", i)))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		decodeBody(t, resp, &last)
		assert.Equal(t, models.StatusPending, last.Status)
	}

	// Over quota: 409.
	resp = env.request(t, http.MethodPost, "/api/submissions", token, submissionBody("overflow"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Validation failure: 422.
	bad := submissionBody("bad url")
	url := "http://insecure.example.com"
	bad.FileURL = &url
	resp = env.request(t, http.MethodPost, "/api/submissions", token, bad)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Owner sees their own pending submission.
	resp = env.request(t, http.MethodGet, "/api/submissions/"+last.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/submissions/mine", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A stranger gets 404 for someone else's pending submission.
	strangerToken := env.registerAndLogin(t, "stranger")
	resp = env.request(t, http.MethodGet, "/api/submissions/"+last.ID.String(), strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Unknown id: 404 too.
	resp = env.request(t, http.MethodGet, "/api/submissions/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerAndLogin(t, "alice")
	adminToken := env.registerAndLogin(t, "admin")
	env.promote(t, "admin")

	resp := env.request(t, http.MethodPost, "/api/submissions", userToken, submissionBody("review me"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var submission models.Submission
	decodeBody(t, resp, &submission)

	// Non-admin is authenticated but forbidden.
	resp = env.request(t, http.MethodGet, "/api/admin/pending", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/admin/pending", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Approve.
	verifyPath := "/api/admin/verify/" + submission.ID.String()
	resp = env.request(t, http.MethodPost, verifyPath, adminToken, dto.VerifyRequest{Decision: models.DecisionApprove})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var decided models.Submission
	decodeBody(t, resp, &decided)
	assert.Equal(t, models.StatusVerified, decided.Status)

	// Identical retry is accepted.
	resp = env.request(t, http.MethodPost, verifyPath, adminToken, dto.VerifyRequest{Decision: models.DecisionApprove})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A different outcome conflicts.
	resp = env.request(t, http.MethodPost, verifyPath, adminToken, dto.VerifyRequest{Decision: models.DecisionReject})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// The verified submission shows up in the public catalog, no auth needed.
	resp = env.request(t, http.MethodGet, "/api/assets", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.PageResponse
	decodeBody(t, resp, &page)
	assert.Equal(t, int64(1), page.Total)
}

func TestAssetsPaginationValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/assets?page=0", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/assets?limit=101", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/assets?page=2&limit=10", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.PageResponse
	decodeBody(t, resp, &page)
	assert.Zero(t, page.Total)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "alice")

	require.NoError(t, env.db.Where("username = ?", "alice").Delete(&models.User{}).Error)

	// The signature is still valid, but the subject no longer exists.
	resp := env.request(t, http.MethodGet, "/api/submissions/mine", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
