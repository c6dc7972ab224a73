package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"carebook/internal/repository"

	"github.com/google/uuid"
)

// minSearchTermLength keeps one-character terms from matching everything.
const minSearchTermLength = 2

type SearchResultType string

const (
	ResultFamilyMember SearchResultType = "Family Member"
	ResultDocument     SearchResultType = "Document"
	ResultPrescription SearchResultType = "Prescription"
	ResultCondition    SearchResultType = "Condition"
)

type SearchResult struct {
	ID          uuid.UUID        `json:"id"`
	Type        SearchResultType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Link        string           `json:"link"`
}

type SearchService struct {
	repo   repository.Repository
	logger *slog.Logger
}

func NewSearchService(repo repository.Repository, logger *slog.Logger) *SearchService {
	return &SearchService{
		repo:   repo,
		logger: logger,
	}
}

// Search matches the term as a case-insensitive substring against member
// names, document titles, medication names and condition names. Results
// keep source order: members, documents, prescriptions, conditions. No
// ranking and no deduplication.
func (s *SearchService) Search(ctx context.Context, term string) ([]SearchResult, error) {
	if utf8.RuneCountInString(term) < minSearchTermLength {
		return []SearchResult{}, nil
	}
	needle := strings.ToLower(term)

	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: list members: %w", err)
	}
	memberName := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		memberName[m.ID] = m.Name
	}
	nameOr := func(id uuid.UUID, fallback string) string {
		if name, ok := memberName[id]; ok {
			return name
		}
		return fallback
	}

	results := []SearchResult{}

	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			results = append(results, SearchResult{
				ID:          m.ID,
				Type:        ResultFamilyMember,
				Title:       m.Name,
				Description: fmt.Sprintf("Relationship: %s", m.Relationship),
				Link:        fmt.Sprintf("/family/%s", m.ID),
			})
		}
	}

	documents, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: list documents: %w", err)
	}
	for _, d := range documents {
		if strings.Contains(strings.ToLower(d.Title), needle) {
			results = append(results, SearchResult{
				ID:          d.ID,
				Type:        ResultDocument,
				Title:       d.Title,
				Description: fmt.Sprintf("Category: %s", d.Category),
				Link:        "/documents",
			})
		}
	}

	prescriptions, err := s.repo.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: list prescriptions: %w", err)
	}
	for _, p := range prescriptions {
		if strings.Contains(strings.ToLower(p.MedicationName), needle) {
			results = append(results, SearchResult{
				ID:          p.ID,
				Type:        ResultPrescription,
				Title:       p.MedicationName,
				Description: fmt.Sprintf("For: %s", nameOr(p.FamilyMemberID, "Unknown")),
				Link:        "/prescriptions",
			})
		}
	}

	conditions, err := s.repo.ListConditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: list conditions: %w", err)
	}
	for _, c := range conditions {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			results = append(results, SearchResult{
				ID:          c.ID,
				Type:        ResultCondition,
				Title:       c.Name,
				Description: fmt.Sprintf("Member: %s", nameOr(c.FamilyMemberID, "Unknown")),
				Link:        fmt.Sprintf("/family/%s", c.FamilyMemberID),
			})
		}
	}

	return results, nil
}
