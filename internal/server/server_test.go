package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmaerten/github-stats/internal/models"
	"github.com/vmaerten/github-stats/internal/services"
)

type stubFetcher struct {
	activity *models.RepositoryActivity
}

func (f *stubFetcher) FetchActivity(ctx context.Context, windowStart, windowEnd time.Time) (*models.RepositoryActivity, error) {
	return f.activity, nil
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	activity := &models.RepositoryActivity{
		PullRequests: []*models.PullRequest{
			{
				Number:           1,
				Title:            "test",
				Author:           "alice",
				State:            models.PullRequestOpen,
				CreatedAt:        time.Now().Add(-time.Hour),
				ReadyForReviewAt: time.Now().Add(-time.Hour),
			},
		},
		ReviewsByPR:  map[int][]*models.Review{},
		RequestsByPR: map[int][]*models.ReviewRequest{},
		CommentsByPR: map[int][]*models.Comment{},
	}

	statsService := services.NewStatsService(&stubFetcher{activity: activity}, nil, "acme/widgets", time.Hour)
	return New(statsService, 30).Router()
}

func TestHealthCheck(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStats(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.RepositoryStatistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "acme/widgets", result.Repository)
	assert.Equal(t, 1, result.TotalPRs)
	require.Len(t, result.People, 1)
	assert.Equal(t, models.Identity("alice"), result.People[0].Identity)
}

func TestGetStatsInvalidDays(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats?days=zero", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportExcel(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats/export.xlsx", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}
