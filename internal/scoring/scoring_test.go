package scoring

import (
	"errors"
	"testing"
)

func allAttributesAt(value float64) map[string]float64 {
	scores := make(map[string]float64, len(Attributes))
	for _, name := range Attributes {
		scores[name] = value
	}
	return scores
}

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		attributes    map[string]float64
		defects       map[string]int
		wantTotal     float64
		wantDeduction float64
		wantFinal     float64
	}{
		{
			name:       "no defects",
			attributes: allAttributesAt(8.0),
			defects:    map[string]int{},
			wantTotal:  80, wantDeduction: 0, wantFinal: 80,
		},
		{
			name:       "nil defects map",
			attributes: allAttributesAt(7.5),
			defects:    nil,
			wantTotal:  75, wantDeduction: 0, wantFinal: 75,
		},
		{
			name:       "single defect",
			attributes: allAttributesAt(8.0),
			defects:    map[string]int{"Bitter": 2},
			wantTotal:  80, wantDeduction: 4, wantFinal: 76,
		},
		{
			name:       "multiple defects",
			attributes: allAttributesAt(9.0),
			defects:    map[string]int{"Sour": 3, "Earthy": 1, "Moldy": 4},
			wantTotal:  90, wantDeduction: 16, wantFinal: 74,
		},
		{
			name:       "quarter point steps",
			attributes: map[string]float64{"Flavor": 8.25, "Acidity": 7.75},
			defects:    map[string]int{"Astringent": 1},
			wantTotal:  16, wantDeduction: 2, wantFinal: 14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.attributes, tt.defects)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if got.TotalScore != tt.wantTotal {
				t.Errorf("TotalScore = %v, want %v", got.TotalScore, tt.wantTotal)
			}
			if got.DefectDeduction != tt.wantDeduction {
				t.Errorf("DefectDeduction = %v, want %v", got.DefectDeduction, tt.wantDeduction)
			}
			if got.FinalScore != tt.wantFinal {
				t.Errorf("FinalScore = %v, want %v", got.FinalScore, tt.wantFinal)
			}
		})
	}
}

func TestScoreClampsAtZero(t *testing.T) {
	// Ten attributes at the minimum 6.0 (total 60) with defect
	// intensities summing to 40 (deduction 80) must clamp to 0,
	// not go negative.
	attributes := allAttributesAt(MinAttributeScore)
	defects := make(map[string]int, len(Defects))
	for _, name := range Defects {
		defects[name] = 4
	}

	got, err := Score(attributes, defects)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got.TotalScore != 60 {
		t.Errorf("TotalScore = %v, want 60", got.TotalScore)
	}
	if got.DefectDeduction != 80 {
		t.Errorf("DefectDeduction = %v, want 80", got.DefectDeduction)
	}
	if got.FinalScore != 0 {
		t.Errorf("FinalScore = %v, want 0", got.FinalScore)
	}
}

func TestScoreRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name       string
		attributes map[string]float64
		defects    map[string]int
	}{
		{
			name:       "attribute below minimum",
			attributes: map[string]float64{"Flavor": 5.5},
		},
		{
			name:       "attribute above maximum",
			attributes: map[string]float64{"Body": 10.5},
		},
		{
			name:       "defect intensity zero",
			attributes: map[string]float64{"Flavor": 8.0},
			defects:    map[string]int{"Bitter": 0},
		},
		{
			name:       "defect intensity above maximum",
			attributes: map[string]float64{"Flavor": 8.0},
			defects:    map[string]int{"Bitter": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.attributes, tt.defects)
			if err == nil {
				t.Fatal("Score() error = nil, want range error")
			}
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Errorf("error type = %T, want *RangeError", err)
			}
		})
	}
}
