package domain

// FDCSearchResponse is the USDA FoodData Central /foods/search payload.
type FDCSearchResponse struct {
	Foods     []FDCSearchFood `json:"foods"`
	TotalHits int             `json:"totalHits"`
}

// FDCSearchFood is one search hit. It doubles as the ranking candidate:
// data type, nutrient field count and relevance score drive candidate
// ordering, FdcID drives the follow-up detail fetch.
type FDCSearchFood struct {
	FdcID         int64               `json:"fdcId"`
	Description   string              `json:"description"`
	DataType      string              `json:"dataType"`
	BrandOwner    string              `json:"brandOwner,omitempty"`
	Score         float64             `json:"score"`
	FoodNutrients []FDCSearchNutrient `json:"foodNutrients"`
}

// FDCSearchNutrient is the flattened nutrient shape the search endpoint
// returns, keyed by the numeric code string ("208", "203", ...).
type FDCSearchNutrient struct {
	NutrientNumber string   `json:"nutrientNumber"`
	NutrientName   string   `json:"nutrientName"`
	UnitName       string   `json:"unitName"`
	Value          *float64 `json:"value"`
}

// FDCFoodDetail is the full /food/{id} record for one candidate. The
// label block and the measured nutrient list may disagree; the
// normalizer reconciles them.
type FDCFoodDetail struct {
	FdcID           int64                    `json:"fdcId"`
	Description     string                   `json:"description"`
	DataType        string                   `json:"dataType"`
	BrandOwner      string                   `json:"brandOwner,omitempty"`
	ServingSize     *float64                 `json:"servingSize"`
	ServingSizeUnit string                   `json:"servingSizeUnit"`
	LabelNutrients  map[string]FDCLabelValue `json:"labelNutrients"`
	FoodNutrients   []FDCFoodNutrient        `json:"foodNutrients"`
}

// FDCLabelValue wraps a label-declared nutrient amount.
type FDCLabelValue struct {
	Value *float64 `json:"value"`
}

// FDCFoodNutrient is one measured nutrient entry from a detail record.
// The nested nutrient is identified by a numeric id, a numeric code
// string, or both.
type FDCFoodNutrient struct {
	Nutrient FDCNutrientRef `json:"nutrient"`
	Amount   *float64       `json:"amount"`
}

// FDCNutrientRef identifies a nutrient within a detail record.
type FDCNutrientRef struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}
