// Package pricing implements the per-venue buy/sell/spot/impact façade
// described by the engine's pricing layer: given a simulator snapshot and a
// trade size in ETH-equivalent units, it reports the effective execution
// price on each side of a trade, plus the sell-side price impact relative
// to a tiny-trade spot proxy.
package pricing

import "math/big"

// WeiPerETH is the number of raw units in one ETH-equivalent token (18
// decimals), used to scale ETH-denominated trade sizes into raw units.
var WeiPerETH = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// USDCDecimals is USDC's raw-unit decimal count.
const USDCDecimals = 6

// SpotProxySizeWei is the tiny trade size (in raw ETH-equivalent units) used to
// approximate the mid price, matching the engine's 0.0001 ETH convention.
var SpotProxySizeWei = weiFraction(1, 10000) // 0.0001 ETH

func weiFraction(numerator, denominator int64) *big.Int {
	n := new(big.Int).Mul(WeiPerETH, big.NewInt(numerator))
	return n.Div(n, big.NewInt(denominator))
}

// SideQuote is one side (sell or buy) of a venue's execution price at a
// given trade size.
type SideQuote struct {
	PriceUSDCPerETH float64
	RawAmountOther  *big.Int // raw USDC amount on the opposite side of the ETH leg
}

// VenueQuotes bundles both directions of a per-venue quote.
type VenueQuotes struct {
	Sell SideQuote
	Buy  SideQuote
	// ImpactPercent is the sell-side price impact relative to the spot
	// proxy, expressed as a percentage. Per the engine's design, only the
	// sell side is populated; there is no buy-side impact field.
	ImpactPercent float64
}

// rawToFloat converts a raw integer amount with the given decimal count to
// a float64, for reporting only — never used inside a simulator's inner
// loop.
func rawToFloat(raw *big.Int, decimals uint8) float64 {
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	f := new(big.Float).SetInt(raw)
	f.Quo(f, scale)
	out, _ := f.Float64()
	return out
}
