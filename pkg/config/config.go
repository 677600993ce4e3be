package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GitHub GitHubConfig
	Report ReportConfig
	Cache  CacheConfig
	Server ServerConfig
}

type GitHubConfig struct {
	Token      string
	Repository string // "owner/name"
}

type ReportConfig struct {
	PeriodDays   int
	OutputDir    string
	CommentsUser string
}

type CacheConfig struct {
	Path       string
	TTLMinutes int
}

type ServerConfig struct {
	Port string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		GitHub: GitHubConfig{
			Token:      getEnv("GITHUB_TOKEN", ""),
			Repository: getEnv("GITHUB_REPOSITORY", ""),
		},
		Report: ReportConfig{
			PeriodDays:   getEnvAsInt("PERIOD_DAYS", 30),
			OutputDir:    getEnv("OUTPUT_DIR", "./reports"),
			CommentsUser: getEnv("COMMENTS_USER", ""),
		},
		Cache: CacheConfig{
			Path:       getEnv("CACHE_PATH", "./github-stats.db"),
			TTLMinutes: getEnvAsInt("CACHE_TTL_MINUTES", 60),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
	}

	return nil
}

// SplitRepository splits the configured "owner/name" repository identifier.
func (c *GitHubConfig) SplitRepository() (owner, name string, err error) {
	parts := strings.SplitN(c.Repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", c.Repository)
	}
	return parts[0], parts[1], nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
