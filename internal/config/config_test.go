package config

import (
	"testing"
	"time"
)

// syncEnvVars lists all sync-related env vars that must be cleared between tests.
var syncEnvVars = []string{
	"TASKSPHERE_SYNC_INTERVAL", "TASKSPHERE_SYNC_S3_BUCKET", "TASKSPHERE_SYNC_S3_ENDPOINT",
	"TASKSPHERE_SYNC_S3_REGION", "TASKSPHERE_SYNC_S3_KEY", "TASKSPHERE_SYNC_GIT_REPO",
	"TASKSPHERE_SYNC_GIT_FILE", "TASKSPHERE_SYNC_GIT_BRANCH",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TASKSPHERE_DATABASE_URL", "TASKSPHERE_DATA_DIR", "TASKSPHERE_HTTP_ADDR", "TASKSPHERE_NATS_URL"} {
		t.Setenv(key, "")
	}
	for _, key := range syncEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name         string
		env          map[string]string
		wantErr      bool
		wantHTTPAddr string
		wantNATSURL  string
		wantDataDir  string
	}{
		{
			name:    "MissingBackend",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:         "DatabaseBackend",
			env:          map[string]string{"TASKSPHERE_DATABASE_URL": "postgres://localhost/tasksphere"},
			wantHTTPAddr: ":8080",
		},
		{
			name:         "JSONFileBackend",
			env:          map[string]string{"TASKSPHERE_DATA_DIR": "/var/lib/tasksphere"},
			wantHTTPAddr: ":8080",
			wantDataDir:  "/var/lib/tasksphere",
		},
		{
			name: "CustomAddresses",
			env: map[string]string{
				"TASKSPHERE_DATABASE_URL": "postgres://db:5432/tasksphere",
				"TASKSPHERE_HTTP_ADDR":    ":3000",
				"TASKSPHERE_NATS_URL":     "nats://localhost:4222",
			},
			wantHTTPAddr: ":3000",
			wantNATSURL:  "nats://localhost:4222",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DatabaseURL != tc.env["TASKSPHERE_DATABASE_URL"] {
				t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, tc.env["TASKSPHERE_DATABASE_URL"])
			}
			if cfg.DataDir != tc.wantDataDir {
				t.Errorf("DataDir = %q, want %q", cfg.DataDir, tc.wantDataDir)
			}
			if cfg.HTTPAddr != tc.wantHTTPAddr {
				t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, tc.wantHTTPAddr)
			}
			if cfg.NATSURL != tc.wantNATSURL {
				t.Errorf("NATSURL = %q, want %q", cfg.NATSURL, tc.wantNATSURL)
			}
		})
	}
}

func TestLoadSyncDefaults(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("TASKSPHERE_DATABASE_URL", "postgres://localhost/tasksphere")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SyncInterval != 3*time.Minute {
		t.Errorf("SyncInterval = %v, want 3m", cfg.SyncInterval)
	}
	if cfg.SyncS3Region != "us-east-1" {
		t.Errorf("SyncS3Region = %q, want %q", cfg.SyncS3Region, "us-east-1")
	}
	if cfg.SyncS3Key != "tasksphere/backup.jsonl" {
		t.Errorf("SyncS3Key = %q, want %q", cfg.SyncS3Key, "tasksphere/backup.jsonl")
	}
	if cfg.SyncGitFile != "tasksphere.jsonl" {
		t.Errorf("SyncGitFile = %q, want %q", cfg.SyncGitFile, "tasksphere.jsonl")
	}
	if cfg.SyncGitBranch != "main" {
		t.Errorf("SyncGitBranch = %q, want %q", cfg.SyncGitBranch, "main")
	}
}

func TestLoadSyncCustom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("TASKSPHERE_DATABASE_URL", "postgres://localhost/tasksphere")
	t.Setenv("TASKSPHERE_SYNC_INTERVAL", "10m")
	t.Setenv("TASKSPHERE_SYNC_S3_BUCKET", "my-bucket")
	t.Setenv("TASKSPHERE_SYNC_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("TASKSPHERE_SYNC_S3_REGION", "eu-west-1")
	t.Setenv("TASKSPHERE_SYNC_S3_KEY", "custom/key.jsonl")
	t.Setenv("TASKSPHERE_SYNC_GIT_REPO", "/tmp/repo")
	t.Setenv("TASKSPHERE_SYNC_GIT_FILE", "custom.jsonl")
	t.Setenv("TASKSPHERE_SYNC_GIT_BRANCH", "backup")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SyncInterval != 10*time.Minute {
		t.Errorf("SyncInterval = %v, want 10m", cfg.SyncInterval)
	}
	if cfg.SyncS3Bucket != "my-bucket" {
		t.Errorf("SyncS3Bucket = %q", cfg.SyncS3Bucket)
	}
	if cfg.SyncS3Endpoint != "http://minio:9000" {
		t.Errorf("SyncS3Endpoint = %q", cfg.SyncS3Endpoint)
	}
	if cfg.SyncS3Region != "eu-west-1" {
		t.Errorf("SyncS3Region = %q", cfg.SyncS3Region)
	}
	if cfg.SyncS3Key != "custom/key.jsonl" {
		t.Errorf("SyncS3Key = %q", cfg.SyncS3Key)
	}
	if cfg.SyncGitRepo != "/tmp/repo" {
		t.Errorf("SyncGitRepo = %q", cfg.SyncGitRepo)
	}
	if cfg.SyncGitFile != "custom.jsonl" {
		t.Errorf("SyncGitFile = %q", cfg.SyncGitFile)
	}
	if cfg.SyncGitBranch != "backup" {
		t.Errorf("SyncGitBranch = %q", cfg.SyncGitBranch)
	}
}

func TestLoadSyncInvalidInterval(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("TASKSPHERE_DATABASE_URL", "postgres://localhost/tasksphere")
	t.Setenv("TASKSPHERE_SYNC_INTERVAL", "not-a-duration")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid TASKSPHERE_SYNC_INTERVAL")
	}
}

func TestLoadSyncDisabled(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("TASKSPHERE_DATABASE_URL", "postgres://localhost/tasksphere")
	t.Setenv("TASKSPHERE_SYNC_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SyncInterval != 0 {
		t.Errorf("SyncInterval = %v, want 0 (disabled)", cfg.SyncInterval)
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
