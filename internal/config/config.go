package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	DBConnectionString string
	GitHub             *GitHubConfig
}

func Load() (*Config, error) {
	port := getEnv("PORT", "8080")
	dbConnStr := getEnv("DB_CONNECTION_STRING", "")

	github := DefaultGitHubConfig()
	github.APIBaseURL = getEnv("GITHUB_API_BASE_URL", github.APIBaseURL)

	pageSize, err := strconv.Atoi(getEnv("GITHUB_PAGE_SIZE", strconv.Itoa(github.PageSize)))
	if err != nil {
		return nil, err
	}
	github.PageSize = pageSize

	timeoutSeconds, err := strconv.Atoi(getEnv("GITHUB_REQUEST_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, err
	}
	github.RequestTimeout = time.Duration(timeoutSeconds) * time.Second

	return &Config{
		Port:               port,
		DBConnectionString: dbConnStr,
		GitHub:             github,
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
