package out

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sparks/internal/platform/sparkapi"
)

func TestParseReceipt(t *testing.T) {
	t.Parallel()
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cases := map[string]bool{
		`{"completedAt":"2026-03-01T10:00:00Z"}`:                     true,
		`{"quest":{"id":"q1","completedAt":"2026-03-01T10:00:00Z"}}`: true,
		`{"userQuest":{"completedAt":"2026-03-01T10:00:00Z"}}`:       true,
		`{"completedAt":1772359200000}`:                              true,
		`{"message":"Quest completed"}`:                              false,
		`{"completedAt":"yesterday"}`:                                false,
		``:                                                           false,
	}
	for raw, found := range cases {
		receipt := parseReceipt([]byte(raw))
		if !found {
			if receipt.CompletedAt != nil {
				t.Fatalf("%s: expected no timestamp, got %v", raw, receipt.CompletedAt)
			}
			continue
		}
		if receipt.CompletedAt == nil || !receipt.CompletedAt.Equal(want) {
			t.Fatalf("%s: unexpected timestamp %v", raw, receipt.CompletedAt)
		}
	}
}

func TestUnreadableTimestampsAreLoggedNotFatal(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	var quests []sparkapi.Quest
	if err := json.Unmarshal([]byte(`[{"id":"q1","completed":true,"completedAt":"whenever"},{"id":"q2","completedAt":1772359200000}]`), &quests); err != nil {
		t.Fatalf("decode quests: %v", err)
	}
	got := questsFromAPI(quests, logger)
	if len(got) != 2 {
		t.Fatalf("expected both quests, got %d", len(got))
	}
	if got[0].CompletedAt != nil || !got[0].Completed {
		t.Fatalf("unreadable completedAt should map to nil: %+v", got[0])
	}
	if got[1].CompletedAt == nil || got[1].CompletedAt.Unix() != 1772359200 {
		t.Fatalf("epoch millis not mapped: %+v", got[1].CompletedAt)
	}

	var reflection sparkapi.Reflection
	if err := json.Unmarshal([]byte(`{"id":"ref-1","questId":"q1","mood":"calm","createdAt":"a while ago"}`), &reflection); err != nil {
		t.Fatalf("decode reflection: %v", err)
	}
	if r := reflectionFromAPI(reflection, logger); !r.CreatedAt.IsZero() {
		t.Fatalf("unreadable createdAt should be zero, got %v", r.CreatedAt)
	}

	if logs.Len() != 2 {
		t.Fatalf("expected 2 warnings, got %d", logs.Len())
	}
	if logs.All()[0].ContextMap()["completedAt"] != "whenever" {
		t.Fatalf("warning should carry the raw value: %+v", logs.All()[0].ContextMap())
	}
}
