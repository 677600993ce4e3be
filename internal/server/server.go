package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vmaerten/github-stats/internal/export"
	"github.com/vmaerten/github-stats/internal/models"
	"github.com/vmaerten/github-stats/internal/services"
	"github.com/vmaerten/github-stats/pkg/logger"
)

// Server exposes the computed statistics over HTTP: JSON for dashboards,
// a spreadsheet download for everyone else.
type Server struct {
	statsService *services.StatsService
	periodDays   int
}

func New(statsService *services.StatsService, periodDays int) *Server {
	return &Server{
		statsService: statsService,
		periodDays:   periodDays,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", s.healthCheck)

	api := router.Group("/api")
	{
		api.GET("/stats", s.getStats)
		api.GET("/stats/export.xlsx", s.exportExcel)
	}

	return router
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getStats(c *gin.Context) {
	result, ok := s.collect(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) exportExcel(c *gin.Context) {
	result, ok := s.collect(c)
	if !ok {
		return
	}

	workbook, err := export.BuildWorkbook(result)
	if err != nil {
		logger.WithError(err).Errorf("Failed to build workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}
	defer workbook.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="report.xlsx"`)
	if err := workbook.Write(c.Writer); err != nil {
		logger.WithError(err).Errorf("Failed to stream workbook")
	}
}

// collect resolves the window (honoring a ?days= override) and runs the
// aggregation. Replies with the error itself on failure.
func (s *Server) collect(c *gin.Context) (*models.RepositoryStatistics, bool) {
	days := s.periodDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return nil, false
		}
		days = parsed
	}

	windowStart, windowEnd, err := services.Window(days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	result, err := s.statsService.Collect(c.Request.Context(), windowStart, windowEnd)
	if err != nil {
		logger.WithError(err).Errorf("Failed to collect statistics")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to collect statistics"})
		return nil, false
	}

	return result, true
}
