package domain

import "math"

// NutrientRecord holds the four macro values a resolution can produce.
// Every field is independently optional: a nil pointer means the source
// had no figure at all, which is different from an explicit zero.
type NutrientRecord struct {
	Kcal    *float64 `json:"kcal"`
	Protein *float64 `json:"protein_g"`
	Fat     *float64 `json:"fat_g"`
	Carbs   *float64 `json:"carbs_g"`
}

// Empty reports whether no macro field carries a value. An empty record
// must never be reported as a provider success.
func (r NutrientRecord) Empty() bool {
	return r.Kcal == nil && r.Protein == nil && r.Fat == nil && r.Carbs == nil
}

// SimpleNutrition is the simple-flow result: the four macros plus the tag
// of the source that produced them ("calorieninjas", "fdc", "fallback" or
// "none").
type SimpleNutrition struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Fat      *float64 `json:"fat"`
	Carbs    *float64 `json:"carbs"`
	Source   string   `json:"source"`
}

// MacroReport is the detailed-flow result for one resolved food record.
type MacroReport struct {
	Query           string         `json:"query"`
	FdcID           int64          `json:"fdcId"`
	Description     string         `json:"description"`
	DataType        string         `json:"dataType"`
	BrandOwner      string         `json:"brandOwner,omitempty"`
	Per100g         NutrientRecord `json:"per_100g"`
	ScaledPerGrams  NutrientRecord `json:"scaled_per_grams"`
	ServingSize     *float64       `json:"servingSize"`
	ServingSizeUnit string         `json:"servingSizeUnit,omitempty"`
	Debug           MacroDebug     `json:"debug"`
}

// MacroDebug exposes how the report was assembled.
type MacroDebug struct {
	ChosenDataType     string   `json:"chosen_dataType"`
	GramsBasis         *float64 `json:"grams_basis"`
	UsedLabelNutrients bool     `json:"used_labelNutrients"`
	KcalDerived        bool     `json:"kcal_derived_from_macros"`
	CandidateCount     int      `json:"candidate_count"`
}

// Float returns a pointer to v, for building records from literals.
func Float(v float64) *float64 { return &v }

// Round3 rounds to 3 decimal places, half away from zero. All nutrient
// math in the resolution pipeline uses this one convention.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
