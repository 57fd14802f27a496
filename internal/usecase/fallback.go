package usecase

import (
	"github.com/caloriehawk/backend/internal/domain"
)

// fallbackTable maps lowercase singular food names to fixed macro values.
// It is the last live-data stand-in: consulted only when every configured
// provider failed or had nothing. Read-only after init.
var fallbackTable = map[string]domain.NutrientRecord{
	"banana":  staticRecord(105, 1, 0, 27),
	"apple":   staticRecord(95, 0, 0, 25),
	"orange":  staticRecord(62, 1, 0, 15),
	"egg":     staticRecord(78, 6, 5, 1),
	"rice":    staticRecord(206, 4, 0, 45),
	"bread":   staticRecord(80, 3, 1, 15),
	"yogurt":  staticRecord(149, 8, 8, 11),
	"chicken": staticRecord(231, 43, 5, 0),
	"beef":    staticRecord(250, 26, 15, 0),
	"milk":    staticRecord(122, 8, 5, 12),
	"pizza":   staticRecord(285, 12, 10, 36),
}

func staticRecord(kcal, protein, fat, carbs float64) domain.NutrientRecord {
	return domain.NutrientRecord{
		Kcal:    domain.Float(kcal),
		Protein: domain.Float(protein),
		Fat:     domain.Float(fat),
		Carbs:   domain.Float(carbs),
	}
}
