package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/caloriehawk/backend/internal/domain"
	"github.com/caloriehawk/backend/internal/infrastructure/fdc"
)

// MacroService drives the detailed flow against the structured provider:
// search, rank, probe candidates until one yields usable macros, then
// produce per-100g and per-requested-grams views. Unlike the simple flow
// there is no further provider to fall back to, so a missing credential
// or an upstream failure fails the request.
type MacroService struct {
	client domain.FDCClient
}

func NewMacroService(client domain.FDCClient) *MacroService {
	return &MacroService{client: client}
}

// Report resolves query to a full macro report scaled to grams.
func (s *MacroService) Report(ctx context.Context, query string, grams float64, includeSurvey bool) (*domain.MacroReport, error) {
	query = strings.TrimSpace(query)
	if query == "" || grams <= 0 {
		return nil, domain.ErrInvalidRequest
	}
	if !s.client.Configured() {
		return nil, domain.ErrMissingAPIKey
	}

	searchResp, err := s.client.Search(ctx, query, includeSurvey)
	if err != nil {
		return nil, err
	}
	if len(searchResp.Foods) == 0 {
		return nil, fmt.Errorf("%w for %q", domain.ErrNoCandidates, query)
	}

	ranked := rankCandidates(searchResp.Foods)
	chosen, detail, record, derived, err := s.probe(ctx, ranked)
	if err != nil {
		return nil, err
	}

	basis := gramsBasis(detail, chosen.DataType)

	brandOwner := chosen.BrandOwner
	if brandOwner == "" {
		brandOwner = detail.BrandOwner
	}

	return &domain.MacroReport{
		Query:           query,
		FdcID:           chosen.FdcID,
		Description:     detail.Description,
		DataType:        chosen.DataType,
		BrandOwner:      brandOwner,
		Per100g:         per100g(record, basis),
		ScaledPerGrams:  scaledTo(record, grams, basis),
		ServingSize:     detail.ServingSize,
		ServingSizeUnit: detail.ServingSizeUnit,
		Debug: domain.MacroDebug{
			ChosenDataType:     chosen.DataType,
			GramsBasis:         basis,
			UsedLabelNutrients: len(detail.LabelNutrients) > 0,
			KcalDerived:        derived,
			CandidateCount:     len(ranked),
		},
	}, nil
}

// probe walks the ranked candidates in order, fetching and normalizing
// each detail until one yields at least one macro field. When every
// candidate comes back empty the first-ranked candidate is used with
// whatever its normalization produced, so the caller still gets a
// structured response. (Arguably an upstream quirk, kept as observed.)
func (s *MacroService) probe(ctx context.Context, ranked []domain.FDCSearchFood) (domain.FDCSearchFood, *domain.FDCFoodDetail, domain.NutrientRecord, bool, error) {
	var (
		first       *domain.FDCSearchFood
		firstDetail *domain.FDCFoodDetail
	)

	for i := range ranked {
		cand := ranked[i]
		if cand.FdcID == 0 {
			continue
		}

		detail, err := s.client.FoodDetail(ctx, cand.FdcID)
		if err != nil {
			return domain.FDCSearchFood{}, nil, domain.NutrientRecord{}, false, err
		}

		record, derived := fdc.MergeNutrients(detail)
		if !record.Empty() {
			return cand, detail, record, derived, nil
		}

		if first == nil {
			first = &ranked[i]
			firstDetail = detail
		}
		log.Printf("[Macros] candidate %d (%s) has no macro data, trying next", cand.FdcID, cand.DataType)
	}

	if first == nil {
		return domain.FDCSearchFood{}, nil, domain.NutrientRecord{}, false, domain.ErrNoCandidates
	}

	record, derived := fdc.MergeNutrients(firstDetail)
	return *first, firstDetail, record, derived, nil
}
