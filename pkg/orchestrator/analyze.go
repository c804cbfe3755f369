package orchestrator

import (
	"context"

	"github.com/pal9000i/arb-engine/pkg/arbitrage"
	"github.com/pal9000i/arb-engine/pkg/pricing"
)

// AnalyzeResult is the full report for a single requested trade size, per
// §6's /analyze response.
type AnalyzeResult struct {
	CLPQuotes pricing.VenueQuotes
	CPQuotes  pricing.VenueQuotes

	GasL1USD float64
	GasL2USD float64

	SellL2BuyL1 arbitrage.Result
	SellL1BuyL2 arbitrage.Result

	BestDirection arbitrage.Direction
	BestNetUSD    float64

	RecommendedAction string
	Diagnostic        string
}

const (
	actionArbitrageDetected = "ARBITRAGE_DETECTED"
	actionNoArbitrage       = "NO_ARBITRAGE"

	actionProfitableFound       = "PROFITABLE_ARBITRAGE_FOUND"
	actionNoProfitableArbitrage = "NO_PROFITABLE_ARBITRAGE"
	actionNoOpportunity         = "NO_ARBITRAGE_OPPORTUNITY"
)

// Analyze implements §4.6's analysis pipeline for a single requested
// trade size: parallel snapshot load, sequential gas estimate, per-venue
// pricing, both directions' spreads, and a live bridge-fee lookup for the
// tentatively better direction.
func (e *Engine) Analyze(ctx context.Context, sizeETH float64) (AnalyzeResult, error) {
	snaps, err := e.loadSnapshots(ctx)
	if err != nil {
		return AnalyzeResult{}, err
	}

	gasL1USD, gasL2USD, err := e.estimateGasUSD(ctx, snaps.refPrice)
	if err != nil {
		return AnalyzeResult{}, err
	}

	clpQuotes, err := pricing.QuoteCLPBoth(snaps.clp, e.Market.CLPEthIsCurrency0, ethToWei(sizeETH), nil)
	if err != nil {
		return AnalyzeResult{}, err
	}
	cpQuotes, err := pricing.QuoteCPBoth(snaps.cp, e.Market.CPEthIsToken0, ethToWei(sizeETH))
	if err != nil {
		return AnalyzeResult{}, err
	}

	sellL2BuyL1Eval, sellL1BuyL2Eval := e.evaluators(snaps, gasL1USD, gasL2USD, 0, 0)

	sellL2BuyL1, err := sellL2BuyL1Eval.Evaluate(sizeETH)
	if err != nil {
		return AnalyzeResult{}, err
	}
	sellL1BuyL2, err := sellL1BuyL2Eval.Evaluate(sizeETH)
	if err != nil {
		return AnalyzeResult{}, err
	}

	tentativeDir := arbitrage.SellL2BuyL1
	tentativeBest := sellL2BuyL1
	if sellL1BuyL2.NetUSD > sellL2BuyL1.NetUSD {
		tentativeDir = arbitrage.SellL1BuyL2
		tentativeBest = sellL1BuyL2
	}

	notionalRaw := ethToWei(sizeETH)
	liveBridgeUSD := e.bridgeCostUSD(ctx, tentativeDir, notionalRaw)

	if tentativeDir == arbitrage.SellL2BuyL1 {
		sellL2BuyL1Eval.BridgeCostUSD = liveBridgeUSD
		sellL2BuyL1, err = sellL2BuyL1Eval.Evaluate(sizeETH)
	} else {
		sellL1BuyL2Eval.BridgeCostUSD = liveBridgeUSD
		sellL1BuyL2, err = sellL1BuyL2Eval.Evaluate(sizeETH)
	}
	if err != nil {
		return AnalyzeResult{}, err
	}

	tentativeBest = sellL2BuyL1
	bestDir := arbitrage.SellL2BuyL1
	if tentativeDir == arbitrage.SellL1BuyL2 {
		tentativeBest = sellL1BuyL2
		bestDir = arbitrage.SellL1BuyL2
	}

	action := actionNoArbitrage
	if tentativeBest.NetUSD > 0 {
		action = actionArbitrageDetected
	}

	return AnalyzeResult{
		CLPQuotes:         clpQuotes,
		CPQuotes:          cpQuotes,
		GasL1USD:          gasL1USD,
		GasL2USD:          gasL2USD,
		SellL2BuyL1:       sellL2BuyL1,
		SellL1BuyL2:       sellL1BuyL2,
		BestDirection:     bestDir,
		BestNetUSD:        tentativeBest.NetUSD,
		RecommendedAction: action,
		Diagnostic:        snaps.clp.Diagnostic,
	}, nil
}
