package history

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepo_Contract(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()

	rec := &Record{TotalQuestions: 30, ScorePercent: 50}
	if err := m.Append(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID == "" || rec.Timestamp.IsZero() {
		t.Error("append must assign id and timestamp")
	}

	got, err := m.Get(ctx, rec.ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v, %v", got, err)
	}
	if got.ScorePercent != 50 {
		t.Errorf("unexpected score: %d", got.ScorePercent)
	}

	if got, err := m.Get(ctx, "missing"); err != nil || got != nil {
		t.Errorf("unknown id must yield (nil, nil), got (%v, %v)", got, err)
	}

	if err := m.Delete(ctx, "missing"); err != nil {
		t.Errorf("delete of unknown id must be a no-op: %v", err)
	}
	if err := m.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	records, _ := m.List(ctx)
	if len(records) != 0 {
		t.Errorf("expected empty repo, got %d", len(records))
	}
}

func TestMemoryRepo_ListNewestFirst(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{time.Hour, 0, 2 * time.Hour} {
		if err := m.Append(ctx, &Record{Timestamp: base.Add(offset)}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	records, err := m.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Timestamp.After(records[i-1].Timestamp) {
			t.Fatal("records must be ordered newest first")
		}
	}
}

func TestMemoryRepo_Clear(t *testing.T) {
	m := NewMemoryRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = m.Append(ctx, &Record{})
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, _ := m.List(ctx)
	if len(records) != 0 {
		t.Errorf("expected empty repo after clear, got %d", len(records))
	}
}
