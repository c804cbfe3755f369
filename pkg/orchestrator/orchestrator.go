// Package orchestrator wires the CLP/CP simulators, the pricing façade,
// and the profit evaluator/maximizer into the two request-scoped
// pipelines behind the HTTP API: /analyze (report prices and spreads at a
// given size) and /optimize (search for the most profitable size).
package orchestrator

import (
	"context"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/pal9000i/arb-engine/pkg/arbitrage"
	"github.com/pal9000i/arb-engine/pkg/clp"
	"github.com/pal9000i/arb-engine/pkg/collab"
	"github.com/pal9000i/arb-engine/pkg/cp"
	"github.com/pal9000i/arb-engine/pkg/pricing"
)

// Market names the fixed pool identifiers and gas/bridge parameters the
// engine needs to resolve a request; it is established once at startup
// from configuration and never mutated.
type Market struct {
	CLPKey            clp.PoolKey
	CLPTickSpacing    int32
	CLPEthIsCurrency0 bool

	CPTokenA, CPTokenB common.Address
	CPStable           bool
	CPPoolOverride     common.Address
	CPEthIsToken0      bool
	CPDecimalsA        uint8
	CPDecimalsB        uint8

	L1GasLimit     uint64
	L2GasLimit     uint64
	SampleCalldata []byte

	// BridgeAssets maps each direction to the two candidate rebalance
	// assets that accumulate on the wrong side of that direction.
	BridgeAssets map[arbitrage.Direction][2]common.Address
}

// Engine bundles the collaborators and market parameters needed to run
// one analysis or optimization request.
type Engine struct {
	CLPReader collab.CLPChainReader
	CPReader  collab.CPChainReader
	Gas       collab.GasOracle
	Bridge    collab.BridgeFeeOracle
	RefPrice  collab.ReferencePriceSource
	Market    Market
}

const probeSizeETH = 0.01

type snapshots struct {
	clp      *clp.Snapshot
	cp       *cp.Snapshot
	refPrice float64
}

// loadSnapshots runs the three-way fan-out described in §4.6 step 1: the
// reference price, the CLP snapshot, and the CP snapshot, joined with an
// all-must-finish combinator.
func (e *Engine) loadSnapshots(ctx context.Context) (snapshots, error) {
	var out snapshots

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.refPrice, err = e.RefPrice.SpotPriceUSDCPerETH(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.clp, err = LoadCLPSnapshot(gctx, e.CLPReader, e.Market.CLPKey, e.Market.CLPTickSpacing)
		return err
	})
	g.Go(func() error {
		var err error
		out.cp, err = LoadCPSnapshot(gctx, e.CPReader, e.Market.CPTokenA, e.Market.CPTokenB, e.Market.CPStable, e.Market.CPPoolOverride, e.Market.CPDecimalsA, e.Market.CPDecimalsB)
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshots{}, err
	}
	return out, nil
}

// estimateGasUSD runs the two chain gas reads concurrently and converts
// both to USD using refPriceUSDPerETH, per §4.6 step 2.
func (e *Engine) estimateGasUSD(ctx context.Context, refPriceUSDPerETH float64) (gasL1USD, gasL2USD float64, err error) {
	g, gctx := errgroup.WithContext(ctx)
	var l1Wei, l2Wei *big.Int

	g.Go(func() error {
		wei, err := e.Gas.EstimateL1Wei(gctx, e.Market.L1GasLimit)
		if err != nil {
			return err
		}
		l1Wei = wei
		return nil
	})
	g.Go(func() error {
		wei, err := e.Gas.EstimateL2Wei(gctx, e.Market.L2GasLimit, e.Market.SampleCalldata)
		if err != nil {
			return err
		}
		l2Wei = wei
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	gasL1USD = weiToUSD(l1Wei, refPriceUSDPerETH)
	gasL2USD = weiToUSD(l2Wei, refPriceUSDPerETH)
	return gasL1USD, gasL2USD, nil
}

// evaluators builds the two directional profit evaluators for the given
// snapshots and a fixed bridge cost placeholder.
func (e *Engine) evaluators(snaps snapshots, gasL1USD, gasL2USD, bridgeCostSellL2BuyL1, bridgeCostSellL1BuyL2 float64) (sellL2BuyL1, sellL1BuyL2 arbitrage.Evaluator) {
	clpSnap, cpSnap := snaps.clp, snaps.cp
	clpEth0, cpEth0 := e.Market.CLPEthIsCurrency0, e.Market.CPEthIsToken0

	sellL2BuyL1 = arbitrage.Evaluator{
		SellLeg: func(sizeWei *big.Int) (*big.Int, error) {
			return pricing.SellCP(cpSnap, cpEth0, sizeWei), nil
		},
		BuyLeg: func(sizeWei *big.Int) (*big.Int, error) {
			in, _, err := pricing.BuyCLP(clpSnap, clpEth0, sizeWei, nil)
			return in, err
		},
		GasL1USD:      gasL1USD,
		GasL2USD:      gasL2USD,
		BridgeCostUSD: bridgeCostSellL2BuyL1,
	}

	sellL1BuyL2 = arbitrage.Evaluator{
		SellLeg: func(sizeWei *big.Int) (*big.Int, error) {
			return pricing.SellCLP(clpSnap, clpEth0, sizeWei, nil)
		},
		BuyLeg: func(sizeWei *big.Int) (*big.Int, error) {
			in, _, err := pricing.BuyCP(cpSnap, cpEth0, sizeWei)
			return in, err
		},
		GasL1USD:      gasL1USD,
		GasL2USD:      gasL2USD,
		BridgeCostUSD: bridgeCostSellL1BuyL2,
	}

	return sellL2BuyL1, sellL1BuyL2
}

// bridgeCostUSD queries both candidate rebalance assets for dir in
// parallel and returns the cheaper quote; if both fail it returns +Inf,
// which the maximizer and the evaluator both treat as unprofitable.
func (e *Engine) bridgeCostUSD(ctx context.Context, dir arbitrage.Direction, notionalRaw *big.Int) float64 {
	assets, ok := e.Market.BridgeAssets[dir]
	if !ok {
		return math.Inf(1)
	}

	costs := make([]float64, 2)
	g, gctx := errgroup.WithContext(ctx)
	for i, asset := range assets {
		i, asset := i, asset
		g.Go(func() error {
			cost, err := e.Bridge.QuoteUSD(gctx, asset, notionalRaw)
			if err != nil {
				costs[i] = math.Inf(1)
				return nil
			}
			costs[i] = cost
			return nil
		})
	}
	_ = g.Wait()

	best := math.Inf(1)
	for _, c := range costs {
		if c < best {
			best = c
		}
	}
	return best
}
