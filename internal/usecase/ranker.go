package usecase

import (
	"sort"

	"github.com/caloriehawk/backend/internal/domain"
	"github.com/caloriehawk/backend/internal/infrastructure/fdc"
)

// rankCandidates orders search hits by data-source trustworthiness,
// richness, then relevance: preferred category first, more nutrient
// fields first within a category, higher relevance score last. The
// survey category, when the caller opted into it, slots right after the
// preferred list; anything else sorts after that.
func rankCandidates(foods []domain.FDCSearchFood) []domain.FDCSearchFood {
	ranked := make([]domain.FDCSearchFood, len(foods))
	copy(ranked, foods)

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := categoryRank(ranked[i].DataType), categoryRank(ranked[j].DataType)
		if ri != rj {
			return ri < rj
		}
		ni, nj := len(ranked[i].FoodNutrients), len(ranked[j].FoodNutrients)
		if ni != nj {
			return ni > nj
		}
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

func categoryRank(dataType string) int {
	for i, dt := range fdc.PreferredDataTypes {
		if dt == dataType {
			return i
		}
	}
	if dataType == fdc.SurveyDataType {
		return len(fdc.PreferredDataTypes)
	}
	return len(fdc.PreferredDataTypes) + 1
}
