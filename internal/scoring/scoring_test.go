package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentwire/candidate-scorer/internal/types"
)

func TestBucketForBoundaries(t *testing.T) {
	tests := []struct {
		percent float64
		want    types.Bucket
	}{
		{100, types.BucketA},
		{90, types.BucketA},
		{89.99, types.BucketB},
		{75, types.BucketB},
		{74.99, types.BucketC},
		{60, types.BucketC},
		{59.99, types.BucketD},
		{40, types.BucketD},
		{39.99, types.BucketE},
		{0, types.BucketE},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketFor(tt.percent), "match_percent %.2f", tt.percent)
	}
}

func TestBucketMonotonic(t *testing.T) {
	// Walking the percent scale downward must never improve the grade.
	prev := BucketFor(100)
	for p := 99.5; p >= 0; p -= 0.5 {
		b := BucketFor(p)
		assert.GreaterOrEqual(t, string(b), string(prev), "bucket improved as percent dropped to %.1f", p)
		prev = b
	}
}

func TestMatchPercent(t *testing.T) {
	assert.Equal(t, 50.0, MatchPercent(5, 10))
	assert.Equal(t, 33.33, MatchPercent(1, 3))
	assert.Equal(t, 100.0, MatchPercent(10, 10))
}

func TestMatchPercentZeroIdeal(t *testing.T) {
	// A zero denominator yields zero, whatever the raw score.
	assert.Equal(t, 0.0, MatchPercent(0, 0))
	assert.Equal(t, 0.0, MatchPercent(42.5, 0))
}

func TestIndustryMatch(t *testing.T) {
	experiences := []types.Experience{
		{Title: "Engineer", Industry: "Fintech"},
		{Title: "Analyst", Industry: ""},
	}

	assert.True(t, IndustryMatch(experiences, []string{"fintech", "healthcare"}))
	assert.True(t, IndustryMatch(experiences, []string{" FINTECH "}))
	assert.False(t, IndustryMatch(experiences, []string{"healthcare"}))
	assert.False(t, IndustryMatch(experiences, nil))
	assert.False(t, IndustryMatch(nil, []string{"fintech"}))
}
