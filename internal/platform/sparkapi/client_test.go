package sparkapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sparks/internal/platform/sparkapi"
)

type fixedID struct{}

func (fixedID) New() string { return "req-1" }

func newClient(t *testing.T, handler http.HandlerFunc) *sparkapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return sparkapi.New(sparkapi.Config{BaseURL: srv.URL + "/", IDs: fixedID{}})
}

func TestLoginUnwrapsDataEnvelope(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "req-1", r.Header.Get(sparkapi.HeaderRequestID))
		require.Empty(t, r.Header.Get("Authorization"))

		var body sparkapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ada@example.com", body.Email)

		_, _ = io.WriteString(w, `{"success":true,"message":"welcome","data":{"token":"tok","user":{"id":"u1","name":"Ada","sparkPoints":80,"level":1}}}`)
	})

	res := client.Login(context.Background(), "ada@example.com", "secret1")
	require.True(t, res.Success)
	require.NoError(t, res.Err())
	require.Equal(t, "welcome", res.Message)
	require.Equal(t, "tok", res.Data.Token)
	require.Equal(t, "Ada", res.Data.User.Name)
	require.Equal(t, 80, res.Data.User.SparkPoints)
}

func TestBodyWithoutEnvelopeIsTheData(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"q1","title":"Breathe","points":40,"completedAt":"2026-03-01T10:00:00Z"}]`)
	})

	res := client.GetPersonalizedQuests(context.Background())
	require.True(t, res.Success)
	require.Len(t, res.Data, 1)
	require.Equal(t, "q1", res.Data[0].ID)
	require.NotNil(t, res.Data[0].CompletedAt)
	require.Equal(t, 2026, res.Data[0].CompletedAt.Year())
}

func TestNonSuccessStatusUsesBackendMessage(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"message":"Insufficient spark points"}`)
	})

	res := client.RedeemReward(context.Background(), "r1")
	require.False(t, res.Success)
	require.Equal(t, "Insufficient spark points", res.Error)
	require.Equal(t, http.StatusBadRequest, res.Status)

	var reqErr *sparkapi.RequestError
	require.ErrorAs(t, res.Err(), &reqErr)
	require.Equal(t, http.StatusBadRequest, reqErr.Status)
}

func TestNonSuccessStatusWithoutMessage(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})

	res := client.GetRewards(context.Background())
	require.False(t, res.Success)
	require.Equal(t, "HTTP error! status: 500", res.Error)
}

func TestEmptySuccessBody(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	res := client.DeleteReflection(context.Background(), "ref-1")
	require.True(t, res.Success)
	require.Empty(t, res.Data)
}

func TestUndecodableSuccessBodyIsFailure(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":"not a list"}`)
	})

	res := client.GetReflections(context.Background())
	require.False(t, res.Success)
	require.Contains(t, res.Error, "decode response")
}

func TestNetworkFailureIsAResult(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := sparkapi.New(sparkapi.Config{BaseURL: url})
	res := client.GetQuests(context.Background())
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)
	require.Zero(t, res.Status)
}

func TestBearerTokenAndUnauthorizedHook(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Token expired"}`)
	})
	client.OnUnauthorized(func() { calls.Add(1) })

	res := client.GetProfile(context.Background())
	require.False(t, res.Success)
	require.Equal(t, int32(0), calls.Load(), "no credential was attached")

	client.SetToken("tok")
	require.True(t, client.HasToken())
	res = client.GetProfile(context.Background())
	require.Equal(t, "Token expired", res.Error)
	require.Equal(t, int32(1), calls.Load())

	client.ClearToken()
	require.False(t, client.HasToken())
}

func TestPathIdentifiersAreEscaped(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quests/a%2Fb/complete", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"success":true,"data":{"completedAt":"2026-03-01T10:00:00Z"}}`)
	})

	res := client.CompleteQuest(context.Background(), "a/b")
	require.True(t, res.Success)
	require.JSONEq(t, `{"completedAt":"2026-03-01T10:00:00Z"}`, string(res.Data))
}

func TestTrackBehaviorPayload(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analytics/behavior", r.URL.Path)
		var event sparkapi.BehaviorEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		require.Equal(t, "quest_completed", event.Action)
		require.Equal(t, "q1", event.QuestID)
		require.EqualValues(t, 40, event.Metadata["points"])
		w.WriteHeader(http.StatusCreated)
	})

	res := client.TrackBehavior(context.Background(), sparkapi.BehaviorEvent{
		Action:   "quest_completed",
		QuestID:  "q1",
		Metadata: map[string]any{"points": 40},
	})
	require.True(t, res.Success)
}

func TestUploadFileSendsMultipart(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "sunrise.jpg", header.Filename)
		require.Equal(t, "jpeg-bytes", string(payload))
		_, _ = io.WriteString(w, `{"data":{"url":"https://cdn.example.com/sunrise.jpg"}}`)
	})

	path := filepath.Join(t.TempDir(), "sunrise.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o644))

	res := client.UploadFile(context.Background(), path)
	require.True(t, res.Success)
	require.Equal(t, "https://cdn.example.com/sunrise.jpg", res.Data.URL)
}

func TestUploadMissingFile(t *testing.T) {
	t.Parallel()
	client := sparkapi.New(sparkapi.Config{BaseURL: "http://127.0.0.1:0"})
	res := client.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	require.False(t, res.Success)
	require.Contains(t, res.Error, "open upload")
}

func TestReflectionTimestampFormats(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		value   string
		want    time.Time
		invalid bool
	}{
		{name: "rfc3339", value: `"2024-05-01T10:00:00.000Z"`, want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{name: "zoneless", value: `"2024-05-01T10:00:00"`, want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)},
		{name: "epoch millis", value: `1714557600000`, want: time.UnixMilli(1714557600000)},
		{name: "date only", value: `"2024-05-01"`, want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{name: "unreadable", value: `"last tuesday"`, invalid: true},
		{name: "null", value: `null`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"data":[{"id":"r1","questId":"q1","mood":"calm","createdAt":`+tc.value+`},{"id":"r2","questId":"q2","mood":"joy","createdAt":"2024-05-02T08:00:00Z"}]}`)
			})

			res := client.GetReflections(context.Background())
			require.True(t, res.Success, res.Error)
			require.Len(t, res.Data, 2, "one timestamp never drops the collection")
			got := res.Data[0].CreatedAt
			require.Equal(t, tc.invalid, got.Invalid())
			if tc.want.IsZero() {
				require.True(t, got.IsZero())
				return
			}
			require.True(t, tc.want.Equal(got.Time), "got %v", got.Time)
		})
	}
}

func TestQuestCompletedAtEpochMillis(t *testing.T) {
	t.Parallel()
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"q1","completedAt":1714557600000},{"id":"q2","completedAt":"soon"},{"id":"q3"}]`)
	})

	res := client.GetPersonalizedQuests(context.Background())
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data, 3)
	require.Equal(t, time.UnixMilli(1714557600000).UTC(), res.Data[0].CompletedAt.Ptr().UTC())
	require.True(t, res.Data[1].CompletedAt.Invalid())
	require.Nil(t, res.Data[1].CompletedAt.Ptr())
	require.Nil(t, res.Data[2].CompletedAt.Ptr())
}

func TestEndpointPaths(t *testing.T) {
	t.Parallel()
	cases := []struct {
		method, path string
		call         func(*sparkapi.Client) bool
	}{
		{http.MethodGet, "/quests", func(c *sparkapi.Client) bool { return c.GetQuests(context.Background()).Success }},
		{http.MethodGet, "/quests/personalized", func(c *sparkapi.Client) bool { return c.GetPersonalizedQuests(context.Background()).Success }},
		{http.MethodGet, "/quests/user", func(c *sparkapi.Client) bool { return c.GetUserQuests(context.Background()).Success }},
		{http.MethodGet, "/reflections", func(c *sparkapi.Client) bool { return c.GetReflections(context.Background()).Success }},
		{http.MethodGet, "/rewards", func(c *sparkapi.Client) bool { return c.GetRewards(context.Background()).Success }},
		{http.MethodGet, "/users/profile", func(c *sparkapi.Client) bool { return c.GetProfile(context.Background()).Success }},
		{http.MethodPut, "/users/mood", func(c *sparkapi.Client) bool { return c.UpdateMood(context.Background(), "calm").Success }},
		{http.MethodPost, "/rewards/r1/redeem", func(c *sparkapi.Client) bool { return c.RedeemReward(context.Background(), "r1").Success }},
		{http.MethodDelete, "/reflections/ref-1", func(c *sparkapi.Client) bool { return c.DeleteReflection(context.Background(), "ref-1").Success }},
		{http.MethodPost, "/auth/logout", func(c *sparkapi.Client) bool { return c.Logout(context.Background()).Success }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			t.Parallel()
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, tc.method, r.Method)
				require.Equal(t, tc.path, r.URL.Path)
				w.WriteHeader(http.StatusNoContent)
			})
			require.True(t, tc.call(client))
		})
	}
}
