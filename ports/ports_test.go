// SPDX-License-Identifier: MIT
package ports_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rvimdp/ports"
)

func TestSpec_RoundTripsThroughJSON(t *testing.T) {
	want := ports.Spec{
		Kind:             "reward",
		Horizon:          10,
		Reward:           []float64{2, 1, 0},
		Discount:         0.9,
		SatisfactionMode: "pessimistic",
		StrategyMode:     "stationary",
	}

	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got ports.Spec
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, want, got)
}

func TestSpec_OmitsZeroFields(t *testing.T) {
	data, err := json.Marshal(ports.Spec{Kind: "safety", Avoid: []int{2}})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "kind")
	require.Contains(t, raw, "avoid")
	require.NotContains(t, raw, "horizon")
	require.NotContains(t, raw, "reward")
}
