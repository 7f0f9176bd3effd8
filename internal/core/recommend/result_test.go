package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleResultPreservesServiceOrder(t *testing.T) {
	// 服務端順序就是排名，即使分數不是遞減也不得重排
	candidates := []SingleCandidate{
		{Substitute: "a", FinalScore: 0.3},
		{Substitute: "b", FinalScore: 0.9},
		{Substitute: "c", FinalScore: 0.5},
	}

	rs := SingleResult(candidates)
	require.Equal(t, KindSingle, rs.Kind())

	got := rs.Candidates()
	require.Len(t, got, 3)
	assert.Equal(t, 0.3, got[0].FinalScore)
	assert.Equal(t, 0.9, got[1].FinalScore)
	assert.Equal(t, 0.5, got[2].FinalScore)
}

func TestSingleResultEmptyCollapses(t *testing.T) {
	rs := SingleResult(nil)
	assert.True(t, rs.IsEmpty())
	assert.Equal(t, 0, rs.Len())
	assert.Nil(t, rs.Candidates())
}

func TestMultiResultLengthMismatchDegradesToEmpty(t *testing.T) {
	// 任何一筆組合長度不符都是服務端違約，整份結果作廢
	combos := []Combination{
		{Substitutes: []string{"x", "y"}, Score: 0.8},
		{Substitutes: []string{"x"}, Score: 0.7},
	}

	rs := MultiResult(combos, 2)
	assert.True(t, rs.IsEmpty())
	assert.Nil(t, rs.Combinations())
}

func TestMultiResultValid(t *testing.T) {
	combos := []Combination{
		{Substitutes: []string{"x", "y"}, Score: 0.8},
		{Substitutes: []string{"p", "q"}, Score: 0.6},
	}

	rs := MultiResult(combos, 2)
	require.Equal(t, KindMulti, rs.Kind())
	assert.Equal(t, 2, rs.Len())
}

func TestPairsZipsPositionally(t *testing.T) {
	combos := []Combination{
		{Substitutes: []string{"소고기", "버섯"}, Score: 0.8},
	}
	rs := MultiResult(combos, 2)

	pairs := rs.Pairs(0, []string{"돼지고기", "두부"})
	require.Len(t, pairs, 2)
	assert.Equal(t, SubstitutionPair{Target: "돼지고기", Substitute: "소고기"}, pairs[0])
	assert.Equal(t, SubstitutionPair{Target: "두부", Substitute: "버섯"}, pairs[1])
}

func TestPairsOutOfRange(t *testing.T) {
	rs := MultiResult([]Combination{{Substitutes: []string{"x"}, Score: 0.5}}, 1)

	assert.Nil(t, rs.Pairs(-1, []string{"a"}))
	assert.Nil(t, rs.Pairs(1, []string{"a"}))
	assert.Nil(t, EmptyResult().Pairs(0, []string{"a"}))
}

func TestPercentify(t *testing.T) {
	assert.Equal(t, 0, Percentify(0.0))
	assert.Equal(t, 35, Percentify(0.345))
	assert.Equal(t, 87, Percentify(0.8651))
	assert.Equal(t, 100, Percentify(1.0))
}
