package orchestrator

import (
	"context"

	"github.com/pal9000i/arb-engine/pkg/arbitrage"
	"github.com/pal9000i/arb-engine/pkg/pricing"
)

// OptimizeResult is the full report for an optimal-size search, per §6's
// /optimize response.
type OptimizeResult struct {
	Direction arbitrage.Direction
	Best      arbitrage.Result

	CLPQuotes pricing.VenueQuotes
	CPQuotes  pricing.VenueQuotes

	GasL1USD      float64
	GasL2USD      float64
	BridgeCostUSD float64

	RecommendedAction string
	Diagnostic        string
}

// Optimize implements §4.6's optimization pipeline: the same snapshot and
// gas fan-out as Analyze, followed by a bracket-growth/golden-section
// search over both directions using a zero bridge-cost placeholder, then
// a live bridge-fee lookup for the chosen direction to recompute the
// final net profit.
func (e *Engine) Optimize(ctx context.Context, maxSizeETH float64) (OptimizeResult, error) {
	snaps, err := e.loadSnapshots(ctx)
	if err != nil {
		return OptimizeResult{}, err
	}

	gasL1USD, gasL2USD, err := e.estimateGasUSD(ctx, snaps.refPrice)
	if err != nil {
		return OptimizeResult{}, err
	}

	sellL2BuyL1Eval, sellL1BuyL2Eval := e.evaluators(snaps, gasL1USD, gasL2USD, 0, 0)

	hintETH := maxSizeETH / 10
	dir, maxResult, found := arbitrage.SelectDirection(sellL2BuyL1Eval, sellL1BuyL2Eval, hintETH, maxSizeETH)

	if !found {
		clpQuotes, cpQuotes, qerr := e.probeQuotes(snaps)
		if qerr != nil {
			return OptimizeResult{}, qerr
		}
		return OptimizeResult{
			Direction:         dir,
			CLPQuotes:         clpQuotes,
			CPQuotes:          cpQuotes,
			GasL1USD:          gasL1USD,
			GasL2USD:          gasL2USD,
			RecommendedAction: actionNoOpportunity,
			Diagnostic:        snaps.clp.Diagnostic,
		}, nil
	}

	notionalRaw := ethToWei(maxResult.Best.SizeETH)
	liveBridgeUSD := e.bridgeCostUSD(ctx, dir, notionalRaw)

	var eval arbitrage.Evaluator
	if dir == arbitrage.SellL2BuyL1 {
		eval = sellL2BuyL1Eval
	} else {
		eval = sellL1BuyL2Eval
	}
	eval.BridgeCostUSD = liveBridgeUSD

	finalResult, err := eval.Evaluate(maxResult.Best.SizeETH)
	if err != nil {
		return OptimizeResult{}, err
	}

	action := actionNoProfitableArbitrage
	if finalResult.NetUSD > 0 {
		action = actionProfitableFound
	}

	clpQuotes, cpQuotes, err := e.probeQuotesAtSize(snaps, finalResult.SizeETH)
	if err != nil {
		return OptimizeResult{}, err
	}

	return OptimizeResult{
		Direction:         dir,
		Best:              finalResult,
		CLPQuotes:         clpQuotes,
		CPQuotes:          cpQuotes,
		GasL1USD:          gasL1USD,
		GasL2USD:          gasL2USD,
		BridgeCostUSD:     liveBridgeUSD,
		RecommendedAction: action,
		Diagnostic:        snaps.clp.Diagnostic,
	}, nil
}

// probeQuotes reports market prices at the 0.01 ETH probe size when the
// maximizer finds no opportunity, so the response still carries finite
// prices.
func (e *Engine) probeQuotes(snaps snapshots) (pricing.VenueQuotes, pricing.VenueQuotes, error) {
	return e.probeQuotesAtSize(snaps, probeSizeETH)
}

func (e *Engine) probeQuotesAtSize(snaps snapshots, sizeETH float64) (pricing.VenueQuotes, pricing.VenueQuotes, error) {
	clpQuotes, err := pricing.QuoteCLPBoth(snaps.clp, e.Market.CLPEthIsCurrency0, ethToWei(sizeETH), nil)
	if err != nil {
		return pricing.VenueQuotes{}, pricing.VenueQuotes{}, err
	}
	cpQuotes, err := pricing.QuoteCPBoth(snaps.cp, e.Market.CPEthIsToken0, ethToWei(sizeETH))
	if err != nil {
		return pricing.VenueQuotes{}, pricing.VenueQuotes{}, err
	}
	return clpQuotes, cpQuotes, nil
}
