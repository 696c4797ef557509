package scoring

import (
	"fmt"
	"sort"
)

// SCA cupping form bounds
const (
	MinAttributeScore  = 6.0
	MaxAttributeScore  = 10.0
	MinDefectIntensity = 1
	MaxDefectIntensity = 4

	// Each defect deducts twice its intensity from the total
	defectMultiplier = 2
)

// Attributes lists the ten scored attributes of the SCA cupping form
var Attributes = []string{
	"Fragrance/Aroma",
	"Flavor",
	"Aftertaste",
	"Acidity",
	"Body",
	"Uniformity",
	"Balance",
	"Clean Cup",
	"Sweetness",
	"Cupper's Points",
}

// Defects lists the recognized sensory defects
var Defects = []string{
	"Over-fermented", "Moldy", "Earthy", "Astringent",
	"Bitter", "Sour", "Green", "Phenolic", "Chemical", "Medicinal",
}

// Result holds the derived fields of a scored evaluation
type Result struct {
	TotalScore      float64 `json:"total_score"`
	DefectDeduction float64 `json:"defect_deduction"`
	FinalScore      float64 `json:"final_score"`
}

// RangeError reports an attribute score or defect intensity outside the
// cupping form's bounds
type RangeError struct {
	Name  string
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: value %g out of range", e.Name, e.Value)
}

// Score computes the final cupping score from attribute ratings and
// flagged defects. The defects map may be empty. The final score is
// clamped at zero; it never exceeds the attribute total.
func Score(attributes map[string]float64, defects map[string]int) (Result, error) {
	var total float64
	for _, name := range sortedKeys(attributes) {
		value := attributes[name]
		if value < MinAttributeScore || value > MaxAttributeScore {
			return Result{}, &RangeError{Name: name, Value: value}
		}
		total += value
	}

	var deduction float64
	for name, intensity := range defects {
		if intensity < MinDefectIntensity || intensity > MaxDefectIntensity {
			return Result{}, &RangeError{Name: name, Value: float64(intensity)}
		}
		deduction += float64(intensity) * defectMultiplier
	}

	final := total - deduction
	if final < 0 {
		final = 0
	}

	return Result{
		TotalScore:      total,
		DefectDeduction: deduction,
		FinalScore:      final,
	}, nil
}

// sortedKeys keeps error reporting deterministic across runs
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
