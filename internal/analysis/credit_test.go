package analysis

import (
	"testing"

	"CreditScoreZ/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_RiskClampBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		score    float64
		activity float64
		risk     int
	}{
		// 100-300 < 5 → базовый риск 5
		{"low score, activity 1", 300, 1, 5 + 90},
		{"low score, activity 10", 300, 10, 5 + 0},
		{"high score, activity 1", 850, 1, 5 + 90},
		{"high score, activity 10", 850, 10, 5},
		// 100-0 > 95 → базовый риск 95
		{"zero score", 0, 5, 95 + 50},
		// без зажима
		{"mid", 40, 5, 60 + 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Analyze(tc.score, tc.activity)
			assert.Equal(t, tc.risk, a.RiskLevel)
		})
	}
}

func TestAnalyze_RiskAlwaysWithinAdjustedRange(t *testing.T) {
	for score := 300; score <= 850; score += 50 {
		for activity := 1; activity <= 10; activity++ {
			a := Analyze(float64(score), float64(activity))
			adj := 100 - activity*10
			assert.GreaterOrEqual(t, a.RiskLevel, 5+adj)
			assert.LessOrEqual(t, a.RiskLevel, 95+adj)
		}
	}
}

func TestAnalyze_LendingCapacity(t *testing.T) {
	assert.Equal(t, 850000, Analyze(850, 5).LendingCapacity)
	assert.Equal(t, 1_000_000, Analyze(1000, 5).LendingCapacity)
	assert.Equal(t, 1_000_000, Analyze(5000, 5).LendingCapacity)
}

func TestAnalyze_Caps(t *testing.T) {
	a := Analyze(850, 10)
	assert.Equal(t, 99, a.RepaymentProbability)
	assert.Equal(t, 95, a.GrowthPotential)
	// 850*0.7 + 10*3
	assert.Equal(t, 625, a.StabilityScore)

	small := Analyze(10, 2)
	// 10*0.8 + 2*2 = 12
	assert.Equal(t, 12, small.RepaymentProbability)
	// (6 + 0.8) * 0.8 = 5.44
	assert.Equal(t, 5, small.GrowthPotential)
}

func TestAnalyze_RoundHalfUp(t *testing.T) {
	// 0*0.7 + 0.5*3 = 1.5 → 2
	a := Analyze(0, 0.5)
	assert.Equal(t, 2, a.StabilityScore)
}

func TestEffectiveScore(t *testing.T) {
	local := uint32(720)
	zero := uint32(0)

	verified := model.Record{IsVerified: true, DecryptedValue: 810, PublicValue1: 4}
	assert.Equal(t, uint32(810), EffectiveScore(verified, &local))

	pending := model.Record{PublicValue1: 4}
	assert.Equal(t, uint32(720), EffectiveScore(pending, &local))
	assert.Equal(t, uint32(4), EffectiveScore(pending, nil))
	assert.Equal(t, uint32(4), EffectiveScore(pending, &zero))

	empty := model.Record{}
	assert.Equal(t, uint32(5), EffectiveScore(empty, nil))
}

func TestAnalyzeRecord_UsesActivityFromPublicValue(t *testing.T) {
	r := model.Record{IsVerified: true, DecryptedValue: 750, PublicValue1: 5}
	assert.Equal(t, Analyze(750, 5), AnalyzeRecord(r, nil))

	noActivity := model.Record{IsVerified: true, DecryptedValue: 750}
	assert.Equal(t, Analyze(750, 5), AnalyzeRecord(noActivity, nil))
}

func TestSummarize_Empty(t *testing.T) {
	st := Summarize(nil)
	assert.Equal(t, Stats{}, st)
}

func TestSummarize(t *testing.T) {
	records := []model.Record{
		{ID: "a", IsVerified: true, DecryptedValue: 800, PublicValue1: 5},
		{ID: "b", PublicValue1: 6},
		{ID: "c", IsVerified: true, DecryptedValue: 700, PublicValue1: 2},
	}
	st := Summarize(records)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Verified)
	assert.Equal(t, 2, st.HighScores)
	assert.InDelta(t, (800.0+6+700)/3, st.AverageScore, 1e-9)
}

func TestFilter(t *testing.T) {
	records := []model.Record{
		{ID: "1", Name: "Alice Corp", Creator: "0xAAAA"},
		{ID: "2", Name: "Bob", Creator: "0xbbbb"},
	}
	assert.Len(t, Filter(records, ""), 2)
	got := Filter(records, "alice")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "1", got[0].ID)
	}
	got = Filter(records, "0XBB")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "2", got[0].ID)
	}
	assert.Empty(t, Filter(records, "nobody"))
}
