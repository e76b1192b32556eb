package state

import "math/big"

// BpsDenom is the denominator for quorum and threshold fractions,
// expressed in basis points.
const BpsDenom = 10000

type Outcome int

const (
	OutcomePassed Outcome = iota + 1
	OutcomeRejected
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeExpired:
		return "expired"
	}
	return "unknown"
}

// tallyPoll decides a finished poll from its running totals. Quorum
// compares all cast weight (abstain included) against the supply
// snapshot; threshold compares yes against yes+no only. Products are
// taken over big.Int so large supplies cannot overflow.
func tallyPoll(yes, no, abstain, supply uint64, quorumBps, thresholdBps uint64) Outcome {
	tallied := new(big.Int).SetUint64(yes)
	tallied.Add(tallied, new(big.Int).SetUint64(no))
	tallied.Add(tallied, new(big.Int).SetUint64(abstain))

	if supply == 0 {
		return OutcomeExpired
	}

	// tallied/supply < quorum, compared cross-multiplied
	lhs := new(big.Int).Mul(tallied, big.NewInt(BpsDenom))
	rhs := new(big.Int).Mul(new(big.Int).SetUint64(supply), new(big.Int).SetUint64(quorumBps))
	if lhs.Cmp(rhs) < 0 {
		return OutcomeExpired
	}

	decisive := new(big.Int).Add(new(big.Int).SetUint64(yes), new(big.Int).SetUint64(no))
	if decisive.Sign() == 0 {
		return OutcomeRejected
	}

	// yes/(yes+no) >= threshold
	lhs = new(big.Int).Mul(new(big.Int).SetUint64(yes), big.NewInt(BpsDenom))
	rhs = new(big.Int).Mul(decisive, new(big.Int).SetUint64(thresholdBps))
	if lhs.Cmp(rhs) >= 0 {
		return OutcomePassed
	}
	return OutcomeRejected
}
