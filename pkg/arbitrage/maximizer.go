package arbitrage

import "math"

// goldenRatio is the ratio the search uses, literally as specified:
// (sqrt(3)+1)/2 rather than the conventional golden ratio (1+sqrt(5))/2.
// Both converge; kept as specified rather than "corrected".
var goldenRatio = (math.Sqrt(3) + 1) / 2

const (
	minHintETH        = 1e-9
	maxDoublings      = 16
	goldenIterations  = 24
	relativeWidthStop = 1e-3
)

// MaximizeResult is the outcome of a one-dimensional profit search over
// trade size.
type MaximizeResult struct {
	Best  Result
	Found bool // true if any evaluation succeeded
}

// tracker keeps the best (size, result) pair seen across every evaluation,
// since golden-section search alone only guarantees local optimality on the
// final bracket, not across the whole growth phase.
type tracker struct {
	best  Result
	found bool
}

func (t *tracker) consider(r Result) {
	if !t.found || r.NetUSD > t.best.NetUSD {
		t.best = r
		t.found = true
	}
}

func evalAt(eval Evaluator, x float64, t *tracker) (Result, bool) {
	r, err := eval.Evaluate(x)
	if err != nil {
		return Result{}, false
	}
	t.consider(r)
	return r, true
}

// Maximize searches for the trade size in (0, cap] that maximizes
// eval.Evaluate, starting from the hint x0 (clamped to >= 1e-9 ETH). It
// first grows a bracket by doubling until the profit function decreases or
// the cap is reached (at most 16 doublings), then refines the bracket with
// a golden-section search (terminating at a relative interval width of
// 1e-3 or after 24 iterations).
func Maximize(eval Evaluator, x0, cap float64) MaximizeResult {
	t := &tracker{}

	if x0 < minHintETH {
		x0 = minHintETH
	}
	if cap < x0 {
		cap = x0
	}

	prevX := x0
	prevR, ok := evalAt(eval, prevX, t)
	if !ok {
		return MaximizeResult{Found: false}
	}

	lowerX := minHintETH
	bracketLo, bracketHi := prevX, prevX
	found := false

	cur := prevX
	for i := 0; i < maxDoublings; i++ {
		cur = math.Min(cur*2, cap)
		curR, ok := evalAt(eval, cur, t)
		if !ok {
			break
		}

		if curR.NetUSD < prevR.NetUSD {
			bracketLo, bracketHi = lowerX, cur
			found = true
			break
		}

		lowerX, prevX, prevR = prevX, cur, curR
		if cur >= cap {
			break
		}
	}

	if !found {
		// Cap reached without a decrease: bracket around the best seen so
		// far, per the spec's (best/2, min(2*best, cap)) rule.
		bestX := t.best.SizeETH
		bracketLo = bestX / 2
		bracketHi = math.Min(2*bestX, cap)
		if bracketLo >= bracketHi {
			bracketLo = math.Max(minHintETH, bracketHi/4)
		}
	}

	a, b := bracketLo, bracketHi
	invR := 1 / goldenRatio

	for iter := 0; iter < goldenIterations; iter++ {
		width := b - a
		mid := (a + b) / 2
		if mid == 0 {
			mid = 1e-12
		}
		if math.Abs(width/mid) <= relativeWidthStop {
			break
		}

		c := b - (b-a)*invR
		d := a + (b-a)*invR
		fc, okC := evalAt(eval, c, t)
		fd, okD := evalAt(eval, d, t)
		if okC && (!okD || fc.NetUSD > fd.NetUSD) {
			b = d
		} else {
			a = c
		}
	}

	return MaximizeResult{Best: t.best, Found: t.found}
}

// SelectDirection evaluates the maximum for both trade directions and
// returns whichever has the greater net profit. ok is false if both
// maxima are <= 0 ("no opportunity") or neither direction produced a
// finite evaluation.
func SelectDirection(sellL2BuyL1, sellL1BuyL2 Evaluator, x0, cap float64) (dir Direction, result MaximizeResult, ok bool) {
	r1 := Maximize(sellL2BuyL1, x0, cap)
	r2 := Maximize(sellL1BuyL2, x0, cap)

	switch {
	case r1.Found && r2.Found:
		if r1.Best.NetUSD >= r2.Best.NetUSD {
			dir, result = SellL2BuyL1, r1
		} else {
			dir, result = SellL1BuyL2, r2
		}
	case r1.Found:
		dir, result = SellL2BuyL1, r1
	case r2.Found:
		dir, result = SellL1BuyL2, r2
	default:
		return SellL2BuyL1, MaximizeResult{}, false
	}

	return dir, result, result.Best.NetUSD > 0
}
