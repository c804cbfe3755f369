package pricing

import (
	"math/big"

	"github.com/pal9000i/arb-engine/pkg/clp"
)

func clpSellDirection(ethIsCurrency0 bool) clp.Direction {
	if ethIsCurrency0 {
		return clp.ZeroForOne
	}
	return clp.OneForZero
}

func clpBuyDirection(ethIsCurrency0 bool) clp.Direction {
	if ethIsCurrency0 {
		return clp.OneForZero
	}
	return clp.ZeroForOne
}

// ethLegAmount extracts the signed ETH-side amount from a CLP swap result.
func ethLegAmount(res clp.SwapResult, ethIsCurrency0 bool) *big.Int {
	if ethIsCurrency0 {
		return res.Amount0
	}
	return res.Amount1
}

// usdcLegAmount extracts the signed USDC-side amount from a CLP swap result.
func usdcLegAmount(res clp.SwapResult, ethIsCurrency0 bool) *big.Int {
	if ethIsCurrency0 {
		return res.Amount1
	}
	return res.Amount0
}

// SellCLP sells amountInWei of the ETH-equivalent leg into snap, returning
// the raw USDC received.
func SellCLP(snap *clp.Snapshot, ethIsCurrency0 bool, amountInWei *big.Int, feeOverride *uint32) (*big.Int, error) {
	res, err := clp.ExactIn(snap, clp.SwapParams{
		Direction:      clpSellDirection(ethIsCurrency0),
		AmountIn:       amountInWei,
		FeeOverridePpm: feeOverride,
	})
	if err != nil {
		return nil, err
	}
	return usdcLegAmount(res, ethIsCurrency0), nil
}

// clpExactInUSDCForETH runs an exact-in swap selling USDC for the
// ETH-equivalent leg and returns the ETH raw amount received, for use as
// the callable inside the generic bisection helper.
func clpExactInUSDCForETH(snap *clp.Snapshot, ethIsCurrency0 bool, feeOverride *uint32) func(*big.Int) *big.Int {
	return func(usdcIn *big.Int) *big.Int {
		if usdcIn.Sign() <= 0 {
			return big.NewInt(0)
		}
		res, err := clp.ExactIn(snap, clp.SwapParams{
			Direction:      clpBuyDirection(ethIsCurrency0),
			AmountIn:       usdcIn,
			FeeOverridePpm: feeOverride,
		})
		if err != nil {
			return big.NewInt(0)
		}
		return ethLegAmount(res, ethIsCurrency0)
	}
}

// BuyCLP solves for the raw USDC input required to receive at least
// targetETHWei of the ETH-equivalent leg from snap, by bisection over the
// exact-input simulator, seeded from a tiny-trade spot proxy: the proxy
// sell's USDC proceeds are taken as the USDC input that buys back roughly
// SpotProxySizeWei.
func BuyCLP(snap *clp.Snapshot, ethIsCurrency0 bool, targetETHWei *big.Int, feeOverride *uint32) (*big.Int, int, error) {
	_, proxyOutRaw, err := spotProxyCLP(snap, ethIsCurrency0, feeOverride)
	if err != nil {
		return nil, 0, err
	}

	usdcIn, _, iterations, err := bisectExactOut(
		clpExactInUSDCForETH(snap, ethIsCurrency0, feeOverride),
		targetETHWei,
		proxyOutRaw,
		SpotProxySizeWei,
	)
	if err != nil {
		return nil, 0, err
	}
	return usdcIn, iterations, nil
}

// spotProxyCLP runs a tiny exact-in sell of SpotProxySizeWei and returns
// the resulting USDC-per-ETH price plus the raw USDC proceeds (for reuse
// as a bisection seed).
func spotProxyCLP(snap *clp.Snapshot, ethIsCurrency0 bool, feeOverride *uint32) (float64, *big.Int, error) {
	usdcOut, err := SellCLP(snap, ethIsCurrency0, SpotProxySizeWei, feeOverride)
	if err != nil {
		return 0, nil, err
	}
	price := rawToFloat(usdcOut, USDCDecimals) / rawToFloat(SpotProxySizeWei, 18)
	return price, usdcOut, nil
}

// QuoteCLPBoth computes the sell and buy side quotes for the CLP venue at
// the given ETH-equivalent trade size, plus the sell-side price impact
// relative to the spot proxy.
func QuoteCLPBoth(snap *clp.Snapshot, ethIsCurrency0 bool, sizeWei *big.Int, feeOverride *uint32) (VenueQuotes, error) {
	spot, _, err := spotProxyCLP(snap, ethIsCurrency0, feeOverride)
	if err != nil {
		return VenueQuotes{}, err
	}

	usdcOut, err := SellCLP(snap, ethIsCurrency0, sizeWei, feeOverride)
	if err != nil {
		return VenueQuotes{}, err
	}
	sellPrice := rawToFloat(usdcOut, USDCDecimals) / rawToFloat(sizeWei, 18)

	usdcIn, _, err := BuyCLP(snap, ethIsCurrency0, sizeWei, feeOverride)
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
