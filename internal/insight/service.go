package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"carebook/internal/model"
)

// ErrNotLabReport rejects analysis of categories the prompt is not tuned
// for.
var ErrNotLabReport = fmt.Errorf("insight: %s", "AI analysis is currently optimized for Lab Reports only.")

type MetricInterpretation string

const (
	InterpretationNormal   MetricInterpretation = "Normal"
	InterpretationHigh     MetricInterpretation = "High"
	InterpretationLow      MetricInterpretation = "Low"
	InterpretationAbnormal MetricInterpretation = "Abnormal"
)

type AnalysisMetric struct {
	Name           string               `json:"name"`
	Value          string               `json:"value"`
	Range          string               `json:"range,omitempty"`
	Interpretation MetricInterpretation `json:"interpretation"`
}

// AnalysisResult is the structured read of a lab report.
type AnalysisResult struct {
	Summary string           `json:"summary"`
	Metrics []AnalysisMetric `json:"metrics"`
}

const labReportPrompt = `You are reading a medical lab report. Summarize the overall picture in 2-4 plain sentences a patient can understand, then list each measured metric. Respond with a JSON object of the shape {"summary": string, "metrics": [{"name": string, "value": string, "range": string, "interpretation": "Normal"|"High"|"Low"|"Abnormal"}]}. Use the reference range printed on the report when present. Do not invent metrics that are not in the document.`

type Service struct {
	client *Client
	logger *slog.Logger
}

func NewService(client *Client, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// AnalyzeDocument runs the structured lab-report analysis over a stored
// document's content. Only Lab Report documents are accepted.
func (s *Service) AnalyzeDocument(ctx context.Context, doc model.DocumentItem, content io.Reader, mimeType string) (AnalysisResult, error) {
	if doc.Category != model.CategoryLabReport {
		return AnalysisResult{}, ErrNotLabReport
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("insight: read document: %w", err)
	}

	raw, err := s.client.GenerateFromImage(ctx, labReportPrompt, data, mimeType)
	if err != nil {
		return AnalysisResult{}, err
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return AnalysisResult{}, fmt.Errorf("insight: parse analysis: %w", err)
	}

	s.logger.InfoContext(ctx, "Document analyzed",
		"document_id", doc.ID,
		"metrics", len(result.Metrics))
	return result, nil
}

// AnalyzeImage answers a free-text question about an uploaded image.
func (s *Service) AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	if prompt == "" {
		prompt = "What do you see in this image? Describe any notable features."
	}
	return s.client.GenerateFromImage(ctx, prompt, image, mimeType)
}

// WeeklyPregnancyInsight writes a short encouraging note for the given
// week of pregnancy.
func (s *Service) WeeklyPregnancyInsight(ctx context.Context, week int) (string, error) {
	prompt := fmt.Sprintf("Provide a brief (2-3 sentences), encouraging, and easy-to-understand summary for week %d of pregnancy for an expectant parent. Include the baby's approximate size (compared to a common fruit or vegetable), one key fetal development milestone, and one common maternal symptom. Write in a warm, friendly tone. Do not use markdown formatting.", week)
	return s.client.GenerateText(ctx, prompt)
}

// WellnessInsight comments on recent wellness entries against the user's
// goals.
func (s *Service) WellnessInsight(ctx context.Context, entries []model.WellnessEntry, settings model.WellnessSettings) (string, error) {
	recent, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("insight: marshal entries: %w", err)
	}
	prompt := fmt.Sprintf("Here is a week of wellness log entries as JSON: %s. The user's goals are %.1f liters of water and %.1f hours of sleep per day. In 2-3 friendly sentences, point out one positive trend and one gentle suggestion. Do not use markdown formatting.", recent, settings.WaterIntakeGoalLiters, settings.SleepGoalHours)
	return s.client.GenerateText(ctx, prompt)
}

// Cancel aborts whatever analysis is in flight.
func (s *Service) Cancel() {
	s.client.Cancel()
}
