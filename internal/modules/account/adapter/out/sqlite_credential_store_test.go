package out

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"sparks/internal/modules/account/domain"
	apperrors "sparks/internal/platform/errors"
)

func TestCredentialStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "sparks.db")
	store, err := NewSQLiteCredentialStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNoStoredSession) {
		t.Fatalf("expected no stored session, got %v", err)
	}

	want := domain.Credentials{
		Token: "tok-1",
		Profile: domain.Profile{
			ID:              "u1",
			Name:            "Ada",
			Email:           "ada@example.com",
			Age:             29,
			PersonalityType: "mindful-seeker",
			EmotionalNeeds:  []string{"calm"},
			Interests:       []string{"art", "music"},
			Goals:           []string{"focus"},
			CurrentMood:     "hopeful",
			SparkPoints:     120,
			Level:           2,
			CompletedQuests: 3,
			Streak:          4,
		},
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := NewSQLiteCredentialStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	want.Profile.CurrentMood = "calm"
	if err := reopened.SaveProfile(ctx, want.Profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	got, err = reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load after profile save: %v", err)
	}
	if got.Token != "tok-1" || got.Profile.CurrentMood != "calm" {
		t.Fatalf("unexpected credentials: %+v", got)
	}

	if err := reopened.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := reopened.Load(ctx); !errors.Is(err, apperrors.ErrNoStoredSession) {
		t.Fatalf("expected cleared store, got %v", err)
	}
}

func TestCredentialStoreCorruptSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := NewSQLiteCredentialStore(filepath.Join(t.TempDir(), "sparks.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := put(ctx, store.db, keyAuthToken, "tok"); err != nil {
		t.Fatalf("put token: %v", err)
	}
	if err := put(ctx, store.db, keyUserData, "{not json"); err != nil {
		t.Fatalf("put user data: %v", err)
	}
	_, err = store.Load(ctx)
	if err == nil || errors.Is(err, apperrors.ErrNoStoredSession) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
