package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTallyPoll(t *testing.T) {
	const supply = 1000
	const quorum = 3000    // 30%
	const threshold = 5000 // 50%

	tests := []struct {
		name    string
		yes     uint64
		no      uint64
		abstain uint64
		want    Outcome
	}{
		{"quorum not reached", 100, 100, 99, OutcomeExpired},
		{"quorum met on the boundary", 150, 100, 50, OutcomePassed},
		{"abstain counts toward quorum", 100, 50, 150, OutcomePassed},
		{"abstain only quorum is rejected", 0, 0, 300, OutcomeRejected},
		{"exactly at threshold passes", 150, 150, 0, OutcomePassed},
		{"just below threshold fails", 149, 151, 0, OutcomeRejected},
		{"no votes win", 100, 300, 0, OutcomeRejected},
		{"unanimous yes", 1000, 0, 0, OutcomePassed},
		{"nothing cast", 0, 0, 0, OutcomeExpired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tallyPoll(tc.yes, tc.no, tc.abstain, supply, quorum, threshold)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTallyPollZeroSupply(t *testing.T) {
	require.Equal(t, OutcomeExpired, tallyPoll(0, 0, 0, 0, 3000, 5000))
}

func TestTallyPollLargeWeights(t *testing.T) {
	// products exceed uint64, the cross multiplication must not wrap
	supply := uint64(1) << 62
	yes := supply / 2
	got := tallyPoll(yes, 1, 0, supply, 3000, 5000)
	require.Equal(t, OutcomePassed, got)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "passed", OutcomePassed.String())
	require.Equal(t, "rejected", OutcomeRejected.String())
	require.Equal(t, "expired", OutcomeExpired.String())
}
