package cp

import "math/big"

// FeeBpsDenominator is the basis-points denominator CP pool fees are
// expressed in.
const FeeBpsDenominator = 10000

// maxBisectionIterations bounds the exact-output search.
const maxBisectionIterations = 64

// bisectionUpperBoundCap is the hard ceiling (in raw units) placed on the
// bisection's initial upper bound, to prevent runaway growth against a
// degenerate (near-zero) reserve.
var bisectionUpperBoundCap = new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)

// Snapshot is an immutable read of a constant-product pool's reserves and
// fee at a point in time.
type Snapshot struct {
	Token0, Token1     [20]byte
	Reserve0, Reserve1 *big.Int // raw, non-negative
	Decimals0          uint8
	Decimals1          uint8
	FeeBps             uint32 // 0..9999
}

// isDead reports whether the pool has no reserves; a dead pool's swaps
// always return zero.
func (s *Snapshot) isDead() bool {
	return s.Reserve0.Sign() == 0 || s.Reserve1.Sign() == 0
}

func (s *Snapshot) reservesFor(dir Direction) (reserveIn, reserveOut *big.Int, decIn, decOut uint8) {
	if dir == ZeroForOne {
		return s.Reserve0, s.Reserve1, s.Decimals0, s.Decimals1
	}
	return s.Reserve1, s.Reserve0, s.Decimals1, s.Decimals0
}

// ExactIn returns the raw output amount for a raw input amount, using the
// fee-adjusted constant-product formula:
//
//	out = amountIn*(10000-fee)*reserveOut / (reserveIn*10000 + amountIn*(10000-fee))
//
// Returns 0 for a dead pool or non-positive input.
func ExactIn(snap *Snapshot, dir Direction, amountIn *big.Int) *big.Int {
	if snap.isDead() || amountIn == nil || amountIn.Sign() <= 0 {
		return big.NewInt(0)
	}

	reserveIn, reserveOut, _, _ := snap.reservesFor(dir)
	gamma := big.NewInt(int64(FeeBpsDenominator - snap.FeeBps))

	amountInWithFee := new(big.Int).Mul(amountIn, gamma)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, big.NewInt(FeeBpsDenominator))
	denominator.Add(denominator, amountInWithFee)

	return numerator.Div(numerator, denominator)
}

// ApplySwapToReserves returns a new Snapshot reflecting amountIn entering
// and amountOut leaving the pool along dir. The input snapshot is never
// mutated.
func ApplySwapToReserves(snap *Snapshot, dir Direction, amountIn, amountOut *big.Int) *Snapshot {
	next := *snap
	if dir == ZeroForOne {
		next.Reserve0 = new(big.Int).Add(snap.Reserve0, amountIn)
		next.Reserve1 = new(big.Int).Sub(snap.Reserve1, amountOut)
	} else {
		next.Reserve1 = new(big.Int).Add(snap.Reserve1, amountIn)
		next.Reserve0 = new(big.Int).Sub(snap.Reserve0, amountOut)
	}
	return &next
}

// ExactOutResult is the outcome of bisecting for a target output.
type ExactOutResult struct {
	AmountIn     *big.Int
	AmountOut    *big.Int // actual delivered output, >= target
	Iterations   int
}

// ExactOut solves for the raw input amount that delivers at least
// targetOut, by bisection over ExactIn. The initial upper bound is
// 4*target/spot (computed in exact integer arithmetic from reserves and
// decimals, never floating point), clamped to 1e30 raw units. The search
// runs at most 64 iterations and stops once the bracket width is within
// one basis point of the upper bound.
func ExactOut(snap *Snapshot, dir Direction, targetOut *big.Int) (ExactOutResult, error) {
	if snap.isDead() || targetOut == nil || targetOut.Sign() <= 0 {
		return ExactOutResult{}, ErrNonPositiveAmount
	}

	reserveIn, reserveOut, decIn, decOut := snap.reservesFor(dir)
	if targetOut.Cmp(reserveOut) >= 0 {
		return ExactOutResult{}, ErrBisectionDidNotConverge
	}

	// upperBound = 4*target*reserveIn*10^decOut / (reserveOut*10^decIn)
	scaleOut := pow10(decOut)
	scaleIn := pow10(decIn)

	upper := new(big.Int).Mul(big.NewInt(4), targetOut)
	upper.Mul(upper, reserveIn)
	upper.Mul(upper, scaleOut)
	denom := new(big.Int).Mul(reserveOut, scaleIn)
	if denom.Sign() == 0 {
		return ExactOutResult{}, ErrBisectionDidNotConverge
	}
	upper.Div(upper, denom)
	if upper.Sign() <= 0 {
		upper = big.NewInt(1)
	}
	if upper.Cmp(bisectionUpperBoundCap) > 0 {
		upper = new(big.Int).Set(bisectionUpperBoundCap)
	}

	for ExactIn(snap, dir, upper).Cmp(targetOut) < 0 {
		if upper.Cmp(bisectionUpperBoundCap) >= 0 {
			return ExactOutResult{}, ErrBisectionDidNotConverge
		}
		upper = new(big.Int).Mul(upper, big.NewInt(2))
		if upper.Cmp(bisectionUpperBoundCap) > 0 {
			upper = new(big.Int).Set(bisectionUpperBoundCap)
		}
	}

	lo := big.NewInt(0)
	hi := upper
	iterations := 0

	onePercentBp := new(big.Int).Div(upper, big.NewInt(10000))
	if onePercentBp.Sign() == 0 {
		onePercentBp = big.NewInt(1)
	}

	for iterations < maxBisectionIterations {
		width := new(big.Int).Sub(hi, lo)
		if width.Cmp(onePercentBp) <= 0 {
			break
		}

		mid := new(big.Int).Add(lo, hi)
		mid.Div(mid, big.NewInt(2))

		out := ExactIn(snap, dir, mid)
		if out.Cmp(targetOut) >= 0 {
			hi = mid
		} else {
			lo = mid
		}
		iterations++
	}

	return ExactOutResult{
		AmountIn:   hi,
		AmountOut:  ExactIn(snap, dir, hi),
		Iterations: iterations,
	}, nil
}

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
