package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/config"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/middleware"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/repository"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/service"
)

// newTestRouter wires the portal routes the way the app does, minus the
// observability middleware.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-0123456789-0123456789"
	cfg.JWT.ExpireTime = time.Hour

	users := repository.NewUserRepository()
	require.NoError(t, users.Seed("admin-pw", "eng-pw"))
	assessments := repository.NewAssessmentRepository()

	authSvc := service.NewAuthService(users, cfg)
	assessSvc := service.NewAssessmentService(assessments, users)

	authCtl := NewAuthController(authSvc)
	assessCtl := NewAssessmentController(assessSvc)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/login", authCtl.Login)

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	auth.GET("/profile", authCtl.GetProfile)
	auth.GET("/assessments", assessCtl.List)
	auth.GET("/assessments/:id", assessCtl.Get)
	auth.POST("/assessments/:id/submit", assessCtl.Submit)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	admin.POST("/assessments", assessCtl.Create)
	admin.GET("/review", assessCtl.ReviewQueue)
	admin.POST("/assessments/:id/grade", assessCtl.Grade)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func decodeAssessment(t *testing.T, rec *httptest.ResponseRecorder) model.Assessment {
	t.Helper()
	var resp struct {
		Data model.Assessment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func fullAnswers(n int) map[string]string {
	answers := make(map[string]string, n)
	for i := 0; i < n; i++ {
		answers[fmt.Sprintf("%d", i)] = "the slack report drives timing closure for this block"
	}
	return answers
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"username": "eng001", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{"username": "eng001"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	loginAs(t, router, "eng001", "eng-pw")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/assessments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/assessments", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRejectEngineers(t *testing.T) {
	router := newTestRouter(t)
	engToken := loginAs(t, router, "eng001", "eng-pw")

	rec := doJSON(t, router, http.MethodPost, "/api/admin/assessments", engToken, gin.H{
		"engineerId": "eng002", "topic": "sta",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAssessmentLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	adminToken := loginAs(t, router, "admin", "admin-pw")
	engToken := loginAs(t, router, "eng001", "eng-pw")

	// Assign.
	rec := doJSON(t, router, http.MethodPost, "/api/admin/assessments", adminToken, gin.H{
		"engineerId": "eng001", "topic": "sta",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeAssessment(t, rec)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Len(t, created.Questions, 18)

	// Engineer sees it, another engineer does not.
	rec = doJSON(t, router, http.MethodGet, "/api/assessments/"+created.ID, engToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	otherToken := loginAs(t, router, "eng002", "eng-pw")
	rec = doJSON(t, router, http.MethodGet, "/api/assessments/"+created.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Short submission is rejected and leaves the record pending.
	rec = doJSON(t, router, http.MethodPost, "/api/assessments/"+created.ID+"/submit", engToken,
		gin.H{"answers": fullAnswers(10)})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Full submission auto-scores.
	rec = doJSON(t, router, http.MethodPost, "/api/assessments/"+created.ID+"/submit", engToken,
		gin.H{"answers": fullAnswers(15)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	submitted := decodeAssessment(t, rec)
	assert.Equal(t, model.StatusSubmitted, submitted.Status)
	assert.Len(t, submitted.AutoScores, 15)

	// Resubmission conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/assessments/"+created.ID+"/submit", engToken,
		gin.H{"answers": fullAnswers(15)})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// It shows up in the review queue.
	rec = doJSON(t, router, http.MethodGet, "/api/admin/review", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var queue struct {
		Data []model.Assessment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &queue))
	require.Len(t, queue.Data, 1)

	// Grade with clamped scores.
	scores := make(map[string]int, 18)
	for i := 0; i < 18; i++ {
		scores[fmt.Sprintf("%d", i)] = 15
	}
	rec = doJSON(t, router, http.MethodPost, "/api/admin/assessments/"+created.ID+"/grade", adminToken,
		gin.H{"scores": scores})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	graded := decodeAssessment(t, rec)
	assert.Equal(t, model.StatusCompleted, graded.Status)
	assert.Equal(t, 180, graded.TotalScore)
	assert.Equal(t, "admin", graded.GradedBy)
}

func TestSubmitRejectsNonNumericKeys(t *testing.T) {
	router := newTestRouter(t)
	adminToken := loginAs(t, router, "admin", "admin-pw")
	engToken := loginAs(t, router, "eng001", "eng-pw")

	rec := doJSON(t, router, http.MethodPost, "/api/admin/assessments", adminToken, gin.H{
		"engineerId": "eng001", "topic": "cts",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeAssessment(t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/assessments/"+created.ID+"/submit", engToken,
		gin.H{"answers": map[string]string{"abc": "some long enough answer text here"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	router := newTestRouter(t)
	adminToken := loginAs(t, router, "admin", "admin-pw")

	rec := doJSON(t, router, http.MethodPost, "/api/admin/assessments", adminToken, gin.H{
		"engineerId": "eng001", "topic": "dft",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/admin/assessments", adminToken, gin.H{
		"engineerId": "ghost", "topic": "sta",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/admin/assessments", adminToken, gin.H{
		"topic": "sta",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileEndpoint(t *testing.T) {
	router := newTestRouter(t)
	engToken := loginAs(t, router, "eng001", "eng-pw")

	rec := doJSON(t, router, http.MethodGet, "/api/profile", engToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "eng001", resp.Data.ID)
	assert.Empty(t, resp.Data.Password)
}
