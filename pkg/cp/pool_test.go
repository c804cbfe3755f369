package cp_test

import (
	"math/big"
	"testing"

	"github.com/pal9000i/arb-engine/pkg/cp"
)

func baseSnapshot() *cp.Snapshot {
	return &cp.Snapshot{
		Reserve0: new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18)), // 1000 ETH, 18 decimals
		Reserve1: new(big.Int).Mul(big.NewInt(2_000_000), big.NewInt(1e6)), // 2M USDC, 6 decimals
		Decimals0: 18,
		Decimals1: 6,
		FeeBps:    30, // 0.3%
	}
}

func TestExactInPositiveAndFeeReducesOutput(t *testing.T) {
	snap := baseSnapshot()
	amountIn := new(big.Int).Mul(big.NewInt(1), big.NewInt(1e18)) // 1 ETH

	out := cp.ExactIn(snap, cp.ZeroForOne, amountIn)
	if out.Sign() <= 0 {
		t.Fatal("expected positive output")
	}

	zeroFee := *snap
	zeroFee.FeeBps = 0
	outNoFee := cp.ExactIn(&zeroFee, cp.ZeroForOne, amountIn)
	if out.Cmp(outNoFee) >= 0 {
		t.Fatal("fee should strictly reduce output relative to the zero-fee case")
	}
}

func TestExactInDeadPoolReturnsZero(t *testing.T) {
	snap := &cp.Snapshot{Reserve0: big.NewInt(0), Reserve1: big.NewInt(100), Decimals0: 18, Decimals1: 6, FeeBps: 30}
	out := cp.ExactIn(snap, cp.ZeroForOne, big.NewInt(100))
	if out.Sign() != 0 {
		t.Fatalf("expected 0 output from a dead pool, got %s", out)
	}
}

func TestExactInNonPositiveAmount(t *testing.T) {
	snap := baseSnapshot()
	if out := cp.ExactIn(snap, cp.ZeroForOne, big.NewInt(0)); out.Sign() != 0 {
		t.Fatalf("expected 0 for zero input, got %s", out)
	}
	if out := cp.ExactIn(snap, cp.ZeroForOne, big.NewInt(-5)); out.Sign() != 0 {
		t.Fatalf("expected 0 for negative input, got %s", out)
	}
}

func TestApplySwapToReservesConservesInvariantDirection(t *testing.T) {
	snap := baseSnapshot()
	amountIn := new(big.Int).Mul(big.NewInt(1), big.NewInt(1e18))
	amountOut := cp.ExactIn(snap, cp.ZeroForOne, amountIn)

	next := cp.ApplySwapToReserves(snap, cp.ZeroForOne, amountIn, amountOut)
	if next.Reserve0.Cmp(snap.Reserve0) <= 0 {
		t.Fatal("reserve0 should have grown")
	}
	if next.Reserve1.Cmp(snap.Reserve1) >= 0 {
		t.Fatal("reserve1 should have shrunk")
	}
	// original snapshot must be untouched
	if snap.Reserve0.Cmp(new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))) != 0 {
		t.Fatal("ApplySwapToReserves mutated the input snapshot")
	}
}

func TestExactOutRoundTripsWithinBounds(t *testing.T) {
	snap := baseSnapshot()
	target := new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e6)) // want 1000 USDC out

	res, err := cp.ExactOut(snap, cp.ZeroForOne, target)
	if err != nil {
		t.Fatalf("ExactOut: %v", err)
	}
	if res.AmountOut.Cmp(target) < 0 {
		t.Fatalf("delivered output %s is less than target %s", res.AmountOut, target)
	}
	if res.AmountIn.Sign() <= 0 {
		t.Fatal("expected positive amount in")
	}
	if res.Iterations <= 0 || res.Iterations > 64 {
		t.Fatalf("iterations out of expected bisection bound: %d", res.Iterations)
	}

	// feeding the solved input back through ExactIn should deliver
	// at least the target (bisection picks the ceiling of the bracket).
	got := cp.ExactIn(snap, cp.ZeroForOne, res.AmountIn)
	if got.Cmp(target) < 0 {
		t.Fatalf("re-simulated output %s fell short of target %s", got, target)
	}
}

func TestExactOutRejectsTargetAtOrAboveReserve(t *testing.T) {
	snap := baseSnapshot()
	_, err := cp.ExactOut(snap, cp.ZeroForOne, snap.Reserve1)
	if err != cp.ErrBisectionDidNotConverge {
		t.Fatalf("expected ErrBisectionDidNotConverge for a target at the full reserve, got %v", err)
	}
}

func TestExactOutRejectsNonPositiveTarget(t *testing.T) {
	snap := baseSnapshot()
	if _, err := cp.ExactOut(snap, cp.ZeroForOne, big.NewInt(0)); err != cp.ErrNonPositiveAmount {
		t.Fatalf("expected ErrNonPositiveAmount, got %v", err)
	}
}
