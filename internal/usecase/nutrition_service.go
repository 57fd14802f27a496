package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/caloriehawk/backend/internal/domain"
)

// Source tags for the non-provider outcomes of the simple flow.
const (
	SourceFallback = "fallback"
	SourceNone     = "none"
)

// NutritionService drives the simple flow: an ordered provider fallback
// chain, then the static table, then an explicit "none" result. A "none"
// result is a valid outcome, not an error.
type NutritionService struct {
	providers []domain.MacroProvider
}

// NewNutritionService creates the simple-flow orchestrator. Providers are
// tried in the order given.
func NewNutritionService(providers ...domain.MacroProvider) *NutritionService {
	return &NutritionService{providers: providers}
}

// Resolve looks up macros for a food name across the fallback chain.
// Provider failures are logged and swallowed; they advance the chain
// rather than abort it. Returns ErrInvalidRequest for a blank name.
func (s *NutritionService) Resolve(ctx context.Context, foodName string) (*domain.SimpleNutrition, error) {
	query := strings.ToLower(strings.TrimSpace(foodName))
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	for _, provider := range s.providers {
		if !provider.Configured() {
			continue
		}

		record, err := provider.Lookup(ctx, query)
		if err != nil {
			log.Printf("[Nutrition] %s error for %q: %v", provider.Name(), query, err)
			continue
		}
		if record == nil || record.Empty() {
			continue
		}

		return &domain.SimpleNutrition{
			Calories: record.Kcal,
			Protein:  record.Protein,
			Fat:      record.Fat,
			Carbs:    record.Carbs,
			Source:   provider.Name(),
		}, nil
	}

	if record, ok := fallbackTable[query]; ok {
		return &domain.SimpleNutrition{
			Calories: record.Kcal,
			Protein:  record.Protein,
			Fat:      record.Fat,
			Carbs:    record.Carbs,
			Source:   SourceFallback,
		}, nil
	}

	return &domain.SimpleNutrition{Source: SourceNone}, nil
}
