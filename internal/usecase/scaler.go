package usecase

import (
	"github.com/caloriehawk/backend/internal/domain"
	"github.com/caloriehawk/backend/internal/infrastructure/fdc"
)

// gramsBasis infers the gram quantity a detail record's nutrient values
// are expressed per. Branded items declare a serving size (nil when they
// don't); the generic ingredient categories are per 100g by definition;
// anything else falls back to the declared serving size.
func gramsBasis(detail *domain.FDCFoodDetail, dataType string) *float64 {
	switch dataType {
	case fdc.DataTypeBranded:
		return positiveOrNil(detail.ServingSize)
	case fdc.DataTypeFoundation, fdc.DataTypeSRLegacy:
		return domain.Float(100)
	default:
		return positiveOrNil(detail.ServingSize)
	}
}

// per100g rescales a record to a 100-gram view. An absent or non-positive
// basis yields all-absent fields, not zeros.
func per100g(record domain.NutrientRecord, basis *float64) domain.NutrientRecord {
	if basis == nil || *basis <= 0 {
		return domain.NutrientRecord{}
	}
	return scaleRecord(record, 100 / *basis)
}

// scaledTo rescales a record to the requested gram quantity.
func scaledTo(record domain.NutrientRecord, grams float64, basis *float64) domain.NutrientRecord {
	if basis == nil || *basis <= 0 {
		return domain.NutrientRecord{}
	}
	return scaleRecord(record, grams / *basis)
}

func scaleRecord(record domain.NutrientRecord, factor float64) domain.NutrientRecord {
	scale := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return domain.Float(domain.Round3(*v * factor))
	}
	return domain.NutrientRecord{
		Kcal:    scale(record.Kcal),
		Protein: scale(record.Protein),
		Fat:     scale(record.Fat),
		Carbs:   scale(record.Carbs),
	}
}

func positiveOrNil(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}
