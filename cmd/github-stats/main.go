package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vmaerten/github-stats/internal/export"
	"github.com/vmaerten/github-stats/internal/fetcher"
	"github.com/vmaerten/github-stats/internal/models"
	"github.com/vmaerten/github-stats/internal/repositories"
	"github.com/vmaerten/github-stats/internal/server"
	"github.com/vmaerten/github-stats/internal/services"
	"github.com/vmaerten/github-stats/pkg/config"
	"github.com/vmaerten/github-stats/pkg/database"
	"github.com/vmaerten/github-stats/pkg/logger"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init()

	cfg := config.AppConfig
	owner, repo, err := cfg.GitHub.SplitRepository()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	if err := database.Init(cfg.Cache.Path); err != nil {
		logger.Fatalf("Failed to initialize snapshot cache: %v", err)
	}
	defer database.Close()

	client := fetcher.NewClient(cfg.GitHub.Token)
	activityFetcher := fetcher.NewFetcher(client, owner, repo)
	snapshotRepo := repositories.NewActivitySnapshotRepository(database.DB)
	statsService := services.NewStatsService(
		activityFetcher,
		snapshotRepo,
		cfg.GitHub.Repository,
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
	)

	command := "report"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "report":
		runReport(statsService, cfg)
	case "comments":
		runComments(statsService, cfg)
	case "serve":
		runServer(statsService, cfg)
	default:
		logger.Fatalf("Unknown command %q, expected report, comments, or serve", command)
	}
}

// runReport produces the full set of report files plus a console table.
func runReport(statsService *services.StatsService, cfg *config.Config) {
	windowStart, windowEnd, err := services.Window(cfg.Report.PeriodDays)
	if err != nil {
		logger.Fatalf("Invalid reporting window: %v", err)
	}

	result, err := statsService.Collect(context.Background(), windowStart, windowEnd)
	if err != nil {
		logger.Fatalf("Failed to collect statistics: %v", err)
	}

	if err := export.WriteTable(os.Stdout, result); err != nil {
		logger.Fatalf("Failed to render table: %v", err)
	}
	if err := export.WriteReports(cfg.Report.OutputDir, result); err != nil {
		logger.Fatalf("Failed to write reports: %v", err)
	}
}

// runComments produces the conversation-history report for COMMENTS_USER.
func runComments(statsService *services.StatsService, cfg *config.Config) {
	user := models.Identity(cfg.Report.CommentsUser)
	if user == "" {
		logger.Fatalf("COMMENTS_USER must be set for the comments command")
	}

	windowStart, windowEnd, err := services.Window(cfg.Report.PeriodDays)
	if err != nil {
		logger.Fatalf("Invalid reporting window: %v", err)
	}

	activity, err := statsService.CollectActivity(context.Background(), windowStart, windowEnd)
	if err != nil {
		logger.Fatalf("Failed to collect activity: %v", err)
	}

	report := services.NewCommentReportService().ExtractUserComments(cfg.GitHub.Repository, user, activity)
	if err := export.WriteCommentReport(cfg.Report.OutputDir, report); err != nil {
		logger.Fatalf("Failed to write comment report: %v", err)
	}
}

func runServer(statsService *services.StatsService, cfg *config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.New(statsService, cfg.Report.PeriodDays).Router(),
	}

	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
