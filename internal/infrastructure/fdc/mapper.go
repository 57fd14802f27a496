package fdc

import (
	"github.com/caloriehawk/backend/internal/domain"
)

// FDC identifies nutrients two ways inside a detail record: a numeric id
// on newer entries and a numeric code string on legacy ones. Both paths
// are kept, id taking precedence when a nutrient appears under both.
const (
	NutrientIDEnergy       = 1008
	NutrientIDProtein      = 1003
	NutrientIDTotalFat     = 1004
	NutrientIDCarbohydrate = 1005
)

const (
	NutrientNumberEnergy       = "208"
	NutrientNumberProtein      = "203"
	NutrientNumberTotalFat     = "204"
	NutrientNumberCarbohydrate = "205"
)

// Label-block keys for the four macros.
const (
	labelKeyCalories = "calories"
	labelKeyProtein  = "protein"
	labelKeyFat      = "fat"
	labelKeyCarbs    = "carbohydrates"
)

// MergeNutrients reconciles a detail record's label block with its
// measured nutrient list into one macro record. Label-declared values
// win; measured values fill the gaps. When no direct calorie figure
// exists but at least one macro does, kcal is synthesized from the
// 4/4/9 kcal-per-gram rule and reported as derived.
func MergeNutrients(detail *domain.FDCFoodDetail) (domain.NutrientRecord, bool) {
	label := labelRecord(detail)
	measured := measuredRecord(detail)

	merged := domain.NutrientRecord{
		Kcal:    prefer(label.Kcal, measured.Kcal),
		Protein: prefer(label.Protein, measured.Protein),
		Fat:     prefer(label.Fat, measured.Fat),
		Carbs:   prefer(label.Carbs, measured.Carbs),
	}

	derived := false
	if merged.Kcal == nil && (merged.Protein != nil || merged.Fat != nil || merged.Carbs != nil) {
		approx := 4*orZero(merged.Protein) + 4*orZero(merged.Carbs) + 9*orZero(merged.Fat)
		merged.Kcal = domain.Float(domain.Round3(approx))
		derived = true
	}

	return merged, derived
}

// labelRecord extracts the label-declared macros from a packaged-food
// label block.
func labelRecord(detail *domain.FDCFoodDetail) domain.NutrientRecord {
	pick := func(key string) *float64 {
		if entry, ok := detail.LabelNutrients[key]; ok {
			return entry.Value
		}
		return nil
	}

	return domain.NutrientRecord{
		Kcal:    pick(labelKeyCalories),
		Protein: pick(labelKeyProtein),
		Fat:     pick(labelKeyFat),
		Carbs:   pick(labelKeyCarbs),
	}
}

// measuredRecord extracts macros from the measured nutrient list,
// indexing by id and by code string and resolving id-first.
func measuredRecord(detail *domain.FDCFoodDetail) domain.NutrientRecord {
	byID := make(map[int64]float64)
	byNumber := make(map[string]float64)

	for _, n := range detail.FoodNutrients {
		if n.Amount == nil {
			continue
		}
		if n.Nutrient.ID != 0 {
			byID[n.Nutrient.ID] = *n.Amount
		}
		if n.Nutrient.Number != "" {
			byNumber[n.Nutrient.Number] = *n.Amount
		}
	}

	pick := func(id int64, number string) *float64 {
		if v, ok := byID[id]; ok {
			return domain.Float(v)
		}
		if v, ok := byNumber[number]; ok {
			return domain.Float(v)
		}
		return nil
	}

	return domain.NutrientRecord{
		Kcal:    pick(NutrientIDEnergy, NutrientNumberEnergy),
		Protein: pick(NutrientIDProtein, NutrientNumberProtein),
		Fat:     pick(NutrientIDTotalFat, NutrientNumberTotalFat),
		Carbs:   pick(NutrientIDCarbohydrate, NutrientNumberCarbohydrate),
	}
}

// recordFromSearchHit reads macros straight off a search hit by nutrient
// code. Search hits carry the flattened nutrient shape, code-keyed only.
func recordFromSearchHit(food domain.FDCSearchFood) domain.NutrientRecord {
	pick := func(number string) *float64 {
		for _, n := range food.FoodNutrients {
			if n.NutrientNumber == number {
				return n.Value
			}
		}
		return nil
	}

	return domain.NutrientRecord{
		Kcal:    pick(NutrientNumberEnergy),
		Protein: pick(NutrientNumberProtein),
		Fat:     pick(NutrientNumberTotalFat),
		Carbs:   pick(NutrientNumberCarbohydrate),
	}
}

func prefer(label, measured *float64) *float64 {
	if label != nil {
		return label
	}
	return measured
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
