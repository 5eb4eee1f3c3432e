package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // TASKSPHERE_DATABASE_URL (postgres backend)
	DataDir     string // TASKSPHERE_DATA_DIR (jsonfile backend; used when no database URL)
	HTTPAddr    string // TASKSPHERE_HTTP_ADDR (default ":8080")
	NATSURL     string // TASKSPHERE_NATS_URL (optional, empty = no events)
	AuthToken   string // TASKSPHERE_AUTH_TOKEN (optional, empty = auth disabled)

	// Sync settings
	SyncInterval   time.Duration // TASKSPHERE_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // TASKSPHERE_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // TASKSPHERE_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // TASKSPHERE_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // TASKSPHERE_SYNC_S3_KEY (default "tasksphere/backup.jsonl")
	SyncGitRepo    string        // TASKSPHERE_SYNC_GIT_REPO (enables git when set; path to clone)
	SyncGitFile    string        // TASKSPHERE_SYNC_GIT_FILE (default "tasksphere.jsonl")
	SyncGitBranch  string        // TASKSPHERE_SYNC_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("TASKSPHERE_DATABASE_URL"),
		DataDir:        os.Getenv("TASKSPHERE_DATA_DIR"),
		HTTPAddr:       envOrDefault("TASKSPHERE_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("TASKSPHERE_NATS_URL"),
		AuthToken:      os.Getenv("TASKSPHERE_AUTH_TOKEN"),
		SyncS3Bucket:   os.Getenv("TASKSPHERE_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("TASKSPHERE_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("TASKSPHERE_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("TASKSPHERE_SYNC_S3_KEY", "tasksphere/backup.jsonl"),
		SyncGitRepo:    os.Getenv("TASKSPHERE_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("TASKSPHERE_SYNC_GIT_FILE", "tasksphere.jsonl"),
		SyncGitBranch:  envOrDefault("TASKSPHERE_SYNC_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" && c.DataDir == "" {
		return nil, fmt.Errorf("TASKSPHERE_DATABASE_URL or TASKSPHERE_DATA_DIR is required")
	}

	intervalStr := envOrDefault("TASKSPHERE_SYNC_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("TASKSPHERE_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
