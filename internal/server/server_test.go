package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/store"
	"github.com/aturzone/tasksphere/internal/store/jsonfile"
)

// stepFaultStore fails every step listing to simulate a backend fault.
type stepFaultStore struct {
	store.Store
}

func (s *stepFaultStore) ListSteps(ctx context.Context, projectID string) ([]*model.ProjectStep, error) {
	return nil, errors.New("disk on fire")
}

func TestEventProgress_StorageFaultIsLogged(t *testing.T) {
	base, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer base.Close()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	srv := NewServer(&stepFaultStore{Store: base}, nil, logger)

	pct := srv.eventProgress(context.Background(), "p-1")
	if pct != 0 {
		t.Errorf("eventProgress under storage fault = %d, want 0", pct)
	}

	out := logBuf.String()
	if !strings.Contains(out, "failed to compute progress for event") {
		t.Errorf("storage fault was not logged; log output:\n%s", out)
	}
	if !strings.Contains(out, "disk on fire") {
		t.Errorf("log does not carry the underlying error; log output:\n%s", out)
	}
}
