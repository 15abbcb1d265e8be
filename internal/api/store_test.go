package api

import (
	"testing"
	"time"

	"github.com/growthlab/diagnostic/internal/models"
)

func resultAt(id, userID string, completed time.Time) *models.DiagnosticResult {
	return &models.DiagnosticResult{ID: id, UserID: userID, TestID: "t1", CompletedAt: completed}
}

func TestMemoryStoreResults(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, r := range []*models.DiagnosticResult{
		resultAt("r1", "u1", base),
		resultAt("r2", "u2", base.AddDate(0, 0, 1)),
		resultAt("r3", "u1", base.AddDate(0, 0, 2)),
	} {
		if err := s.AddResult(r); err != nil {
			t.Fatalf("add result %d: %v", i, err)
		}
	}

	got, err := s.ListResultsByUser("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r3" {
		t.Fatalf("unexpected results for u1: %+v", got)
	}

	removed, err := s.DeleteResultsBefore(base.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	got, _ = s.ListResultsByUser("u1")
	if len(got) != 1 || got[0].ID != "r3" {
		t.Fatalf("unexpected results after retention delete: %+v", got)
	}
}

func TestMemoryStoreUsers(t *testing.T) {
	s := NewMemoryStore()
	u := &models.User{ID: "u1", Email: "user@example.com"}
	if err := s.AddUser(u); err != nil {
		t.Fatalf("add user: %v", err)
	}
	if err := s.AddUser(&models.User{ID: "u2", Email: "user@example.com"}); err == nil {
		t.Fatalf("expected conflict on duplicate email")
	}
	found, err := s.FindUserByEmail("user@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.ID != "u1" {
		t.Fatalf("unexpected user: %+v", found)
	}
	missing, err := s.FindUserByEmail("nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for unknown email, got %+v, %v", missing, err)
	}
}
