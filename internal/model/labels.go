package model

// TriangleLabel is the ratio-triangle classifier's own label set. Some labels
// are deliberately ambiguous (the method cannot separate water from gas on
// its own); the fusion engine resolves them through TriangleSplit.
type TriangleLabel string

const (
	TriangleWaterOrGas         TriangleLabel = "water-or-gas"
	TriangleOilGasOrWater      TriangleLabel = "oil-gas-or-water"
	TriangleTransitionNormal   TriangleLabel = "transition-normal"
	TriangleTransitionInverted TriangleLabel = "transition-inverted"
	TriangleOilHighGOR         TriangleLabel = "oil-high-gor"
	TriangleAnomalous          TriangleLabel = "anomalous"
	TriangleInvalid            TriangleLabel = "invalid"
)

// triangleSplits maps each triangle label onto the shared category space as
// an explicit probability split. Ambiguous labels divide their mass across at
// most two categories; anomalous and invalid labels carry no mass and are
// excluded from voting.
var triangleSplits = map[TriangleLabel]map[Category]float64{
	TriangleWaterOrGas:         {CategoryWater: 0.5, CategoryGas: 0.5},
	TriangleOilGasOrWater:      {CategoryOil: 0.5, CategoryWater: 0.5},
	TriangleTransitionNormal:   {CategoryTransitional: 1.0},
	TriangleTransitionInverted: {CategoryTransitional: 1.0},
	TriangleOilHighGOR:         {CategoryOil: 1.0},
}

// TriangleSplit returns the category probability split for a triangle label.
// The second return is false for labels that do not vote.
func TriangleSplit(l TriangleLabel) (map[Category]float64, bool) {
	split, ok := triangleSplits[l]
	return split, ok
}

// ThreeRatioLabel is the three-ratio classifier's own label set.
type ThreeRatioLabel string

const (
	ThreeRatioDry           ThreeRatioLabel = "dry"
	ThreeRatioDryGas        ThreeRatioLabel = "dry-gas"
	ThreeRatioWetGas        ThreeRatioLabel = "wet-gas"
	ThreeRatioCondensateGas ThreeRatioLabel = "condensate-gas"
	ThreeRatioLightOil      ThreeRatioLabel = "light-oil"
	ThreeRatioOil           ThreeRatioLabel = "oil"
	ThreeRatioSuspectedDry  ThreeRatioLabel = "suspected-dry"
	ThreeRatioTransitional  ThreeRatioLabel = "transitional"
	ThreeRatioInvalid       ThreeRatioLabel = "invalid"
)

// threeRatioCategories collapses the method's fine-grained labels onto the
// shared category space for voting.
var threeRatioCategories = map[ThreeRatioLabel]Category{
	ThreeRatioDry:           CategoryDry,
	ThreeRatioDryGas:        CategoryGas,
	ThreeRatioWetGas:        CategoryGas,
	ThreeRatioCondensateGas: CategoryGas,
	ThreeRatioLightOil:      CategoryOil,
	ThreeRatioOil:           CategoryOil,
	ThreeRatioSuspectedDry:  CategoryDry,
	ThreeRatioTransitional:  CategoryTransitional,
	ThreeRatioInvalid:       CategoryInvalid,
}

// ThreeRatioCategory maps a three-ratio label onto the shared category space.
// Unknown labels map to invalid.
func ThreeRatioCategory(l ThreeRatioLabel) Category {
	if c, ok := threeRatioCategories[l]; ok {
		return c
	}
	return CategoryInvalid
}
