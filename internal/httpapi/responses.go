package httpapi

import (
	"math"

	"github.com/pal9000i/arb-engine/pkg/primitives"
)

// roundUSD presents a computed USD value at the reporting boundary with
// cent precision, via exact decimal arithmetic rather than float64's
// binary rounding. A non-finite value (an unreachable bridge quote
// collapses internal profit math to +/-Inf, per the engine's
// error-handling policy) renders as 0 instead: JSON has no representation
// for infinity, and the recommended_action tag already carries the
// bridge-unavailable outcome, so numeric fields stay present and valid.
func roundUSD(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return primitives.NewDecimalFromFloat(f).Round(2).Float64()
}

// VenueQuoteJSON is one venue's sell/buy/impact report.
type VenueQuoteJSON struct {
	SellPriceUSDCPerETH float64 `json:"sell_price_usdc_per_eth"`
	BuyPriceUSDCPerETH  float64 `json:"buy_price_usdc_per_eth"`
	ImpactPercent       float64 `json:"price_impact_percent"`
}

// DirectionResultJSON reports one direction's spread and net profit at a
// given size.
type DirectionResultJSON struct {
	ProceedsUSD        float64 `json:"proceeds_usd"`
	CostUSD            float64 `json:"cost_usd"`
	NetProfitUSD       float64 `json:"net_profit_usd"`
	EffectiveSellPrice float64 `json:"effective_sell_price"`
	EffectiveBuyPrice  float64 `json:"effective_buy_price"`
}

// AnalyzeResponse is the /analyze response body, per §6.
type AnalyzeResponse struct {
	TradeSizeETH float64        `json:"trade_size_eth"`
	CLP          VenueQuoteJSON `json:"clp"`
	CP           VenueQuoteJSON `json:"cp"`

	GasL1USD float64 `json:"gas_l1_usd"`
	GasL2USD float64 `json:"gas_l2_usd"`

	SellL2BuyL1 DirectionResultJSON `json:"sell_l2_buy_l1"`
	SellL1BuyL2 DirectionResultJSON `json:"sell_l1_buy_l2"`

	BestDirection string  `json:"best_direction"`
	BestNetUSD    float64 `json:"best_net_profit_usd"`

	RecommendedAction string `json:"recommended_action"`
	Diagnostic        string `json:"diagnostic,omitempty"`
}

// OptimizeResponse is the /optimize response body, per §6.
type OptimizeResponse struct {
	MaxSizeETH float64 `json:"max_size_eth"`

	OptimalSizeETH float64 `json:"optimal_size_eth"`
	Direction      string  `json:"direction"`

	ProceedsUSD        float64 `json:"proceeds_usd"`
	CostUSD            float64 `json:"cost_usd"`
	EffectiveSellPrice float64 `json:"effective_sell_price"`
	EffectiveBuyPrice  float64 `json:"effective_buy_price"`

	GasL1USD      float64 `json:"gas_l1_usd"`
	GasL2USD      float64 `json:"gas_l2_usd"`
	BridgeCostUSD float64 `json:"bridge_cost_usd"`

	NetProfitUSD float64 `json:"net_profit_usd"`

	CLP VenueQuoteJSON `json:"clp"`
	CP  VenueQuoteJSON `json:"cp"`

	RecommendedAction string `json:"recommended_action"`
	Diagnostic        string `json:"diagnostic,omitempty"`
}

func venueQuoteJSON(sell, buy float64, impact float64) VenueQuoteJSON {
	return VenueQuoteJSON{
		SellPriceUSDCPerETH: roundUSD(sell),
		BuyPriceUSDCPerETH:  roundUSD(buy),
		ImpactPercent:       primitives.NewDecimalFromFloat(impact).Round(4).Float64(),
	}
}
