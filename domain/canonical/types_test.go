package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPairKeyCanonicalOrder(t *testing.T) {
	assert.Equal(t, NewPairKey("A", "B"), NewPairKey("B", "A"))
	assert.Equal(t, Feature("A"), NewPairKey("B", "A").X)
}

func TestSortedPairsDeterministic(t *testing.T) {
	s := Statistics{
		Correlations: map[PairKey]float64{
			NewPairKey("C", "D"): 0.1,
			NewPairKey("A", "B"): 0.2,
			NewPairKey("A", "D"): 0.3,
		},
	}
	pairs := s.SortedPairs()
	assert.Equal(t, []PairKey{
		NewPairKey("A", "B"),
		NewPairKey("A", "D"),
		NewPairKey("C", "D"),
	}, pairs)
}

func TestMeanRange(t *testing.T) {
	s := Statistics{
		ClassMeans: map[Feature]map[Class]float64{
			"Id": {"a": 25.5, "b": 75.5, "c": 125.5},
		},
	}
	assert.InDelta(t, 100.0, s.MeanRange("Id"), 1e-9)
	assert.Zero(t, s.MeanRange("absent"))
}

func TestTopShare(t *testing.T) {
	s := Statistics{
		Importance: []FeatureScore{
			{Feature: "A", Score: 0.1549},
			{Feature: "B", Score: 0.1488},
			{Feature: "C", Score: 0.1356},
			{Feature: "D", Score: 0.5607},
		},
	}
	assert.InDelta(t, 0.4393, s.TopShare(3), 1e-9)
	assert.InDelta(t, 1.0, s.TopShare(10), 1e-9)
}

func TestBalanceRatio(t *testing.T) {
	s := Statistics{ClassCounts: map[Class]int{"a": 50, "b": 100}}
	assert.Equal(t, 0.5, s.BalanceRatio())
	assert.Zero(t, Statistics{}.BalanceRatio())
}
