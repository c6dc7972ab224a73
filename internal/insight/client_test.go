package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textResponse(text string) string {
	encoded, _ := json.Marshal(text)
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%s}]}}]}`, encoded)
}

func TestClient_GenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textResponse("Hello there")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	reply, err := client.GenerateText(context.Background(), "Say hello")
	require.NoError(t, err)

	assert.Equal(t, "Hello there", reply)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "Say hello", gotBody.Contents[0].Parts[0].Text)
}

func TestClient_GenerateJSONSetsMimeType(t *testing.T) {
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textResponse(`{"ok":true}`)))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	_, err := client.GenerateJSON(context.Background(), "Respond with JSON")
	require.NoError(t, err)

	require.NotNil(t, gotBody.GenerationConfig)
	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
}

func TestClient_GenerateFromImage(t *testing.T) {
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textResponse("A chest X-ray")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	reply, err := client.GenerateFromImage(context.Background(), "Describe this", []byte("fake-image"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "A chest X-ray", reply)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	require.NotNil(t, gotBody.Contents[0].Parts[0].InlineData)
	assert.Equal(t, "image/png", gotBody.Contents[0].Parts[0].InlineData.MimeType)
	assert.Equal(t, "ZmFrZS1pbWFnZQ==", gotBody.Contents[0].Parts[0].InlineData.Data)
	assert.Equal(t, "Describe this", gotBody.Contents[0].Parts[1].Text)
}

func TestClient_ModelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", testLogger())

	_, err := client.GenerateText(context.Background(), "Say hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestClient_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	_, err := client.GenerateText(context.Background(), "Say hello")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClient_RejectsConcurrentRequests(t *testing.T) {
	var calls atomic.Int64
	reached := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(reached)
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textResponse("done")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	firstDone := make(chan error, 1)
	go func() {
		_, err := client.GenerateText(context.Background(), "slow question")
		firstDone <- err
	}()

	// The slot is claimed before the request goes on the wire, so once
	// the server sees it a second call must be rejected.
	<-reached
	_, err := client.GenerateText(context.Background(), "second question")
	assert.ErrorIs(t, err, ErrAnalysisInFlight)

	close(release)
	require.NoError(t, <-firstDone)

	reply, err := client.GenerateText(context.Background(), "third question")
	require.NoError(t, err)
	assert.Equal(t, "done", reply)
}

func TestClient_CancelAbortsRequest(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		close(blocked)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", testLogger())

	errCh := make(chan error, 1)
	go func() {
		_, err := client.GenerateText(context.Background(), "long running")
		errCh <- err
	}()

	<-blocked
	client.Cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("request did not abort after Cancel")
	}
}

func TestClient_CancelDoesNotReleaseSuccessorSlot(t *testing.T) {
	client := NewClient("http://localhost", "test-key", testLogger())

	_, doneA, err := client.begin(context.Background())
	require.NoError(t, err)

	client.Cancel()

	_, doneB, err := client.begin(context.Background())
	require.NoError(t, err)

	// The first request's cleanup fires after its slot was cancelled and
	// reclaimed. It must not free the second request's slot.
	doneA()

	_, _, err = client.begin(context.Background())
	assert.ErrorIs(t, err, ErrAnalysisInFlight)

	doneB()
	_, doneC, err := client.begin(context.Background())
	require.NoError(t, err)
	doneC()
}
