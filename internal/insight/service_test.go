package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carebook/internal/model"
	"carebook/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(handler http.HandlerFunc) (*Service, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "test-key", testLogger())
	return NewService(client, testLogger()), server
}

func TestService_AnalyzeDocument(t *testing.T) {
	t.Run("rejects_non_lab_reports", func(t *testing.T) {
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})
		defer server.Close()

		doc := model.DocumentItem{ID: uuid.New(), Title: "Referral Letter", Category: "Other"}
		_, err := svc.AnalyzeDocument(context.Background(), doc, strings.NewReader("content"), "application/pdf")
		assert.ErrorIs(t, err, ErrNotLabReport)
	})

	t.Run("parses_structured_result", func(t *testing.T) {
		analysis := `{"summary":"Everything looks fine overall.","metrics":[{"name":"Hemoglobin","value":"14.1 g/dL","range":"13.5-17.5","interpretation":"Normal"},{"name":"Glucose","value":"112 mg/dL","range":"70-99","interpretation":"High"}]}`
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(textResponse(analysis)))
		})
		defer server.Close()

		doc := model.DocumentItem{ID: uuid.New(), Title: "Annual Bloodwork", Category: model.CategoryLabReport}
		result, err := svc.AnalyzeDocument(context.Background(), doc, strings.NewReader("pdf-bytes"), "application/pdf")
		require.NoError(t, err)

		assert.Equal(t, "Everything looks fine overall.", result.Summary)
		require.Len(t, result.Metrics, 2)
		assert.Equal(t, "Hemoglobin", result.Metrics[0].Name)
		assert.Equal(t, InterpretationNormal, result.Metrics[0].Interpretation)
		assert.Equal(t, InterpretationHigh, result.Metrics[1].Interpretation)
	})

	t.Run("rejects_malformed_model_output", func(t *testing.T) {
		svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(textResponse("Sorry, I cannot read this document.")))
		})
		defer server.Close()

		doc := model.DocumentItem{ID: uuid.New(), Title: "Annual Bloodwork", Category: model.CategoryLabReport}
		_, err := svc.AnalyzeDocument(context.Background(), doc, strings.NewReader("pdf-bytes"), "application/pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse analysis")
	})
}

func TestService_AnalyzeImageDefaultPrompt(t *testing.T) {
	var gotPrompt string
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, decodeJSON(r, &req))
		gotPrompt = req.Contents[0].Parts[1].Text
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textResponse("A skin rash")))
	})
	defer server.Close()

	reply, err := svc.AnalyzeImage(context.Background(), "", []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "A skin rash", reply)
	assert.Equal(t, "What do you see in this image? Describe any notable features.", gotPrompt)
}

func TestService_WeeklyPregnancyInsight(t *testing.T) {
	var gotPrompt string
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, decodeJSON(r, &req))
		gotPrompt = req.Contents[0].Parts[0].Text
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textResponse("Week 20 is an exciting halfway point.")))
	})
	defer server.Close()

	reply, err := svc.WeeklyPregnancyInsight(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, "Week 20 is an exciting halfway point.", reply)
	assert.Contains(t, gotPrompt, "week 20 of pregnancy")
}

func TestService_WellnessInsight(t *testing.T) {
	var gotPrompt string
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, decodeJSON(r, &req))
		gotPrompt = req.Contents[0].Parts[0].Text
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textResponse("Nice sleep streak this week.")))
	})
	defer server.Close()

	entries := []model.WellnessEntry{{ID: uuid.New(), Mood: util.Some(model.Mood("Happy")), Date: model.NewDate(2025, 6, 1)}}
	settings := model.WellnessSettings{WaterIntakeGoalLiters: 2.5, SleepGoalHours: 8}

	reply, err := svc.WellnessInsight(context.Background(), entries, settings)
	require.NoError(t, err)
	assert.Equal(t, "Nice sleep streak this week.", reply)
	assert.Contains(t, gotPrompt, "2.5 liters of water")
	assert.Contains(t, gotPrompt, "8.0 hours of sleep")
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
