package core

import "fmt"

// LevelPolicy selects the initial reference level that splits the value
// domain into a positive and a negative color branch.
type LevelPolicy string

const (
	LevelZero    LevelPolicy = "zero"
	LevelAverage LevelPolicy = "average"
)

var ValidLevelPolicies = []LevelPolicy{
	LevelZero,
	LevelAverage,
}

func ParseLevelPolicy(s string) (LevelPolicy, error) {
	if s == "" {
		return LevelZero, nil
	}
	for _, p := range ValidLevelPolicies {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid level policy %q (want zero or average)", s)
}

// Initial returns the starting level for the given extent.
func (p LevelPolicy) Initial(e Extent) float64 {
	if p == LevelAverage && e.Count > 0 {
		return e.Mean
	}
	return 0
}
