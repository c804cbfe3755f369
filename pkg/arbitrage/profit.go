// Package arbitrage evaluates and maximizes net profit across the two
// trade directions connecting the CLP and CP venues, and searches for the
// trade size that maximizes it.
package arbitrage

import (
	"errors"
	"math"
	"math/big"
)

// Direction identifies which venue sells the ETH-equivalent leg and which
// buys it.
type Direction int

const (
	// SellL2BuyL1 sells ETH on the CP (L2) venue and buys it back on the
	// CLP (L1) venue.
	SellL2BuyL1 Direction = iota
	// SellL1BuyL2 is the mirror: sell on the CLP venue, buy on the CP venue.
	SellL1BuyL2
)

func (d Direction) String() string {
	if d == SellL2BuyL1 {
		return "SELL_L2_BUY_L1"
	}
	return "SELL_L1_BUY_L2"
}

// ErrUndefined is returned for non-positive or non-finite trade sizes.
var ErrUndefined = errors.New("arbitrage: profit undefined for this size")

var weiPerETH = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
var usdcScale = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(6), nil))

func ethToWei(sizeETH float64) *big.Int {
	f := new(big.Float).Mul(big.NewFloat(sizeETH), weiPerETH)
	out, _ := f.Int(nil)
	return out
}

func usdcToFloat(raw *big.Int) float64 {
	f := new(big.Float).Quo(new(big.Float).SetInt(raw), usdcScale)
	out, _ := f.Float64()
	return out
}

// QuoteFunc simulates one leg of a trade: given a raw ETH-equivalent
// amount, it returns the raw USDC amount on the other side (proceeds for a
// sell leg, required input for a buy leg).
type QuoteFunc func(sizeWei *big.Int) (*big.Int, error)

// Evaluator bundles the two venue legs and the fixed USD costs (gas on
// both chains, bridge rebalancing) for one trade direction.
type Evaluator struct {
	SellLeg       QuoteFunc
	BuyLeg        QuoteFunc
	GasL1USD      float64
	GasL2USD      float64
	BridgeCostUSD float64
}

// Result is the profit evaluator's full output at one trade size.
type Result struct {
	SizeETH            float64
	NetUSD             float64
	ProceedsUSD        float64
	CostUSD            float64
	EffectiveSellPrice float64
	EffectiveBuyPrice  float64
}

// Evaluate computes P(x) = proceeds - cost - gasL1 - gasL2 - bridgeCost for
// a trade of sizeETH, per the two-leg model in §4.4: the sell leg's
// exact-in proceeds minus the buy leg's exact-out cost to receive the same
// ETH-equivalent amount.
func (e Evaluator) Evaluate(sizeETH float64) (Result, error) {
	if sizeETH <= 0 || math.IsNaN(sizeETH) || math.IsInf(sizeETH, 0) {
		return Result{}, ErrUndefined
	}

	sizeWei := ethToWei(sizeETH)

	proceedsRaw, err := e.SellLeg(sizeWei)
	if err != nil {
		return Result{}, err
	}
	costRaw, err := e.BuyLeg(sizeWei)
	if err != nil {
		return Result{}, err
	}

	proceedsUSD := usdcToFloat(proceedsRaw)
	costUSD := usdcToFloat(costRaw)

	if math.IsNaN(proceedsUSD) || math.IsInf(proceedsUSD, 0) ||
		math.IsNaN(costUSD) || math.IsInf(costUSD, 0) {
		return Result{}, ErrUndefined
	}

	net := proceedsUSD - costUSD - e.GasL1USD - e.GasL2USD - e.BridgeCostUSD

	return Result{
		SizeETH:            sizeETH,
		NetUSD:             net,
		ProceedsUSD:        proceedsUSD,
		CostUSD:            costUSD,
		EffectiveSellPrice: proceedsUSD / sizeETH,
		EffectiveBuyPrice:  costUSD / sizeETH,
	}, nil
}
