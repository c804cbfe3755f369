package pricing

import (
	"math/big"

	"github.com/pal9000i/arb-engine/pkg/cp"
)

func cpSellDirection(ethIsToken0 bool) cp.Direction {
	if ethIsToken0 {
		return cp.ZeroForOne
	}
	return cp.OneForZero
}

func cpBuyDirection(ethIsToken0 bool) cp.Direction {
	if ethIsToken0 {
		return cp.OneForZero
	}
	return cp.ZeroForOne
}

// SellCP sells amountInWei of the ETH-equivalent leg into snap, returning
// the raw USDC received.
func SellCP(snap *cp.Snapshot, ethIsToken0 bool, amountInWei *big.Int) *big.Int {
	return cp.ExactIn(snap, cpSellDirection(ethIsToken0), amountInWei)
}

// BuyCP solves for the raw USDC input required to receive at least
// targetETHWei of the ETH-equivalent leg from snap, using the CP
// simulator's own bisection.
func BuyCP(snap *cp.Snapshot, ethIsToken0 bool, targetETHWei *big.Int) (*big.Int, int, error) {
	res, err := cp.ExactOut(snap, cpBuyDirection(ethIsToken0), targetETHWei)
	if err != nil {
		return nil, 0, err
	}
	return res.AmountIn, res.Iterations, nil
}

// spotProxyCP runs a tiny exact-in sell of SpotProxySizeWei and returns the
// resulting USDC-per-ETH price.
func spotProxyCP(snap *cp.Snapshot, ethIsToken0 bool) float64 {
	usdcOut := SellCP(snap, ethIsToken0, SpotProxySizeWei)
	return rawToFloat(usdcOut, USDCDecimals) / rawToFloat(SpotProxySizeWei, 18)
}

// QuoteCPBoth computes the sell and buy side quotes for the CP venue at the
// given ETH-equivalent trade size, plus the sell-side price impact relative
// to the spot proxy.
func QuoteCPBoth(snap *cp.Snapshot, ethIsToken0 bool, sizeWei *big.Int) (VenueQuotes, error) {
	spot := spotProxyCP(snap, ethIsToken0)

	usdcOut := SellCP(snap, ethIsToken0, sizeWei)
	sellPrice := rawToFloat(usdcOut, USDCDecimals) / rawToFloat(sizeWei, 18)

	usdcIn, _, err := BuyCP(snap, ethIsToken0, sizeWei)
	if err != nil {
		return VenueQuotes{}, err
	}
	buyPrice := rawToFloat(usdcIn, USDCDecimals) / rawToFloat(sizeWei, 18)

	impact := 0.0
	if spot != 0 {
		impact = (sellPrice - spot) / spot * 100
	}

	return VenueQuotes{
		Sell:          SideQuote{PriceUSDCPerETH: sellPrice, RawAmountOther: usdcOut},
		Buy:           SideQuote{PriceUSDCPerETH: buyPrice, RawAmountOther: usdcIn},
		ImpactPercent: impact,
	}, nil
}
