package pricing

import "math/big"

const maxBisectionIterations = 64

// bisectionUpperBoundCap mirrors pkg/cp's cap: a hard ceiling on the
// bisection's initial upper bound so a degenerate spot proxy cannot cause
// runaway growth.
var bisectionUpperBoundCap = new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)

// errBisectionDidNotConverge is returned when the generic exact-output
// search exhausts its iteration budget without bracketing the target.
var errBisectionDidNotConverge = errBisection("pricing: exact-output bisection did not converge")

type errBisection string

func (e errBisection) Error() string { return string(e) }

// bisectExactOut finds the smallest input amount (to within one basis
// point of the search's upper bound) such that exactIn(input) >= target,
// using a tiny-trade spot proxy (proxyOut raw output for proxyIn raw
// input) to seed the initial upper bound at 4*target*proxyIn/proxyOut, the
// same bound shape used by the CP simulator's own bisection. All
// arithmetic is exact integer arithmetic; exactIn is the venue's own
// exact-input simulator.
func bisectExactOut(exactIn func(amountIn *big.Int) *big.Int, target, proxyIn, proxyOut *big.Int) (amountIn, delivered *big.Int, iterations int, err error) {
	if target == nil || target.Sign() <= 0 {
		return nil, nil, 0, errBisectionDidNotConverge
	}
	if proxyOut == nil || proxyOut.Sign() <= 0 {
		return nil, nil, 0, errBisectionDidNotConverge
	}

	upper := new(big.Int).Mul(big.NewInt(4), target)
	upper.Mul(upper, proxyIn)
	upper.Div(upper, proxyOut)
	if upper.Sign() <= 0 {
		upper = big.NewInt(1)
	}
	if upper.Cmp(bisectionUpperBoundCap) > 0 {
		upper = new(big.Int).Set(bisectionUpperBoundCap)
	}

	for exactIn(upper).Cmp(target) < 0 {
		if upper.Cmp(bisectionUpperBoundCap) >= 0 {
			return nil, nil, 0, errBisectionDidNotConverge
		}
		upper = new(big.Int).Mul(upper, big.NewInt(2))
		if upper.Cmp(bisectionUpperBoundCap) > 0 {
			upper = new(big.Int).Set(bisectionUpperBoundCap)
		}
	}

	lo := big.NewInt(0)
	hi := upper
	iterations = 0

	oneBp := new(big.Int).Div(upper, big.NewInt(10000))
	if oneBp.Sign() == 0 {
		oneBp = big.NewInt(1)
	}

	for iterations < maxBisectionIterations {
		width := new(big.Int).Sub(hi, lo)
		if width.Cmp(oneBp) <= 0 {
			break
		}

		mid := new(big.Int).Add(lo, hi)
		mid.Div(mid, big.NewInt(2))

		out := exactIn(mid)
		if out.Cmp(target) >= 0 {
			hi = mid
		} else {
			lo = mid
		}
		iterations++
	}

	return hi, exactIn(hi), iterations, nil
}
