package testutil

import (
	"context"
	"testing"

	"github.com/abrezinsky/eventdash/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied and no latency.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// NewSeededRepository creates a test repository loaded with the sample data
func NewSeededRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo := NewTestRepository(t)
	if _, err := repo.Seed(context.Background()); err != nil {
		t.Fatalf("failed to seed test repository: %v", err)
	}
	return repo
}
