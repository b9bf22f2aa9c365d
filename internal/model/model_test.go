package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategy_Text(t *testing.T) {
	for strategy, name := range strategyNames {
		text, err := strategy.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))

		var parsed Strategy
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, strategy, parsed)
	}
}

func TestStrategy_Unknown(t *testing.T) {
	assert.Equal(t, "strategy(42)", Strategy(42).String())

	_, err := Strategy(42).MarshalText()
	require.Error(t, err)

	var parsed Strategy
	require.EqualError(t, parsed.UnmarshalText([]byte("guess")), `unknown strategy "guess"`)
}

func TestReport_Summarize(t *testing.T) {
	report := Report{Entries: []Resolution{
		{Path: "/a", Exists: true, Strategy: StrategyDirect},
		{Path: "/b", Exists: true, Strategy: StrategyDirect},
		{Path: "/c", Exists: true, Strategy: StrategySearchPath},
		{Path: "/d", Strategy: StrategyUnresolved},
	}}

	summary := report.Summarize()

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Resolved)
	assert.Equal(t, 1, summary.Unresolved)
	assert.Equal(t, map[Strategy]int{StrategyDirect: 2, StrategySearchPath: 1, StrategyUnresolved: 1}, summary.ByStrategy)

	unresolved := report.Unresolved()
	require.Len(t, unresolved, 1)
	assert.Equal(t, Path("/d"), unresolved[0].Path)
}

func TestReport_SummarizeEmpty(t *testing.T) {
	summary := Report{}.Summarize()

	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.ByStrategy)
	assert.Nil(t, Report{}.Unresolved())
}
