package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/duosplit/receipt-split-service/internal/split"
)

func newTestRepo(t *testing.T) *BoltPreferenceRepository {
	t.Helper()
	repo, err := NewBoltPreferenceRepository(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("NewBoltPreferenceRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestBoltSetGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "milkl"); err != nil || ok {
		t.Fatalf("Get of absent key = ok=%v err=%v, want absent", ok, err)
	}

	if err := repo.Set(ctx, "milkl", split.Person2); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := repo.Get(ctx, "milkl")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || got != split.Person2 {
		t.Errorf("Get = %s/%v, want PERSON_2 present", got, ok)
	}
}

func TestBoltOverwrite(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "bread", split.Person1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "bread", split.Both); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, ok, err := repo.Get(ctx, "bread")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if got != split.Both {
		t.Errorf("Get = %s, want latest value BOTH", got)
	}
}

func TestBoltIgnoresCorruptValue(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// A value written by an older build with a different encoding must
	// read back as absence, not an error.
	if err := repo.Set(ctx, "coffee", split.Attribution("SOMEONE")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, ok, err := repo.Get(ctx, "coffee")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get of unparseable value = present, want absent")
	}
}
