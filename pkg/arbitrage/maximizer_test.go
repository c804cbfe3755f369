package arbitrage_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/pal9000i/arb-engine/pkg/arbitrage"
)

// slippageLeg models a venue whose marginal price worsens linearly with
// size (like an AMM near its current price), giving the profit curve a
// single interior maximum instead of an unbounded linear slope — the
// shape Maximize is actually meant to search.
func slippageLeg(priceUSDCPerETH, slippagePerETH float64, widensPrice bool) arbitrage.QuoteFunc {
	return func(sizeWei *big.Int) (*big.Int, error) {
		sizeETH, _ := new(big.Float).Quo(new(big.Float).SetInt(sizeWei), big.NewFloat(1e18)).Float64()
		factor := 1 - slippagePerETH*sizeETH
		if widensPrice {
			factor = 1 + slippagePerETH*sizeETH
		}
		usd := priceUSDCPerETH * sizeETH * factor
		if usd < 0 {
			usd = 0
		}
		raw := new(big.Float).Mul(big.NewFloat(usd), big.NewFloat(1e6))
		out, _ := raw.Int(nil)
		return out, nil
	}
}

func TestMaximizeFindsInteriorOptimum(t *testing.T) {
	eval := arbitrage.Evaluator{
		SellLeg:  slippageLeg(3100, 0.01, false), // sell price erodes with size
		BuyLeg:   slippageLeg(3000, 0.01, true),  // buy price worsens with size
		GasL1USD: 5,
		GasL2USD: 1,
	}

	res := arbitrage.Maximize(eval, 1.0, 100.0)
	if !res.Found {
		t.Fatal("expected Maximize to find a profitable size")
	}
	if res.Best.SizeETH <= 0 || res.Best.SizeETH > 100 {
		t.Fatalf("optimal size out of bounds: %f", res.Best.SizeETH)
	}

	// Brute-force grid search as an independent cross-check: Maximize's
	// result should not be far below the best grid point's profit.
	bestGrid := math.Inf(-1)
	for x := 0.1; x <= 100; x += 0.1 {
		r, err := eval.Evaluate(x)
		if err != nil {
			continue
		}
		if r.NetUSD > bestGrid {
			bestGrid = r.NetUSD
		}
	}
	if res.Best.NetUSD < bestGrid*0.95 {
		t.Fatalf("Maximize found %f, grid search found %f; too far apart", res.Best.NetUSD, bestGrid)
	}
}

func TestMaximizeNoOpportunityWhenAlwaysUnprofitable(t *testing.T) {
	eval := arbitrage.Evaluator{
		SellLeg:  slippageLeg(2900, 0.01, false),
		BuyLeg:   slippageLeg(3000, 0.01, true),
		GasL1USD: 5,
		GasL2USD: 1,
	}
	res := arbitrage.Maximize(eval, 1.0, 100.0)
	if res.Found && res.Best.NetUSD > 0 {
		t.Fatalf("expected no profitable size, got net %f at size %f", res.Best.NetUSD, res.Best.SizeETH)
	}
}

func TestSelectDirectionPicksGreaterOpportunity(t *testing.T) {
	good := arbitrage.Evaluator{
		SellLeg:  slippageLeg(3100, 0.01, false),
		BuyLeg:   slippageLeg(3000, 0.01, true),
		GasL1USD: 5,
		GasL2USD: 1,
	}
	bad := arbitrage.Evaluator{
		SellLeg:  slippageLeg(3000, 0.01, false),
		BuyLeg:   slippageLeg(3100, 0.01, true),
		GasL1USD: 5,
		GasL2USD: 1,
	}

	dir, result, ok := arbitrage.SelectDirection(bad, good, 1.0, 100.0)
	if !ok {
		t.Fatal("expected a profitable direction to be found")
	}
	if dir != arbitrage.SellL1BuyL2 {
		t.Fatalf("expected the profitable direction SellL1BuyL2, got %s", dir)
	}
	if result.Best.NetUSD <= 0 {
		t.Fatalf("expected positive net profit, got %f", result.Best.NetUSD)
	}
}

func TestSelectDirectionNoneProfitable(t *testing.T) {
	flat := arbitrage.Evaluator{
		SellLeg:  slippageLeg(3000, 0.01, false),
		BuyLeg:   slippageLeg(3000, 0.01, true),
		GasL1USD: 5,
		GasL2USD: 1,
	}
	_, _, ok := arbitrage.SelectDirection(flat, flat, 1.0, 100.0)
	if ok {
		t.Fatal("expected no profitable direction")
	}
}
