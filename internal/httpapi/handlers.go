package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/pal9000i/arb-engine/pkg/orchestrator"
)

// Dependencies bundles the engine and logger the HTTP handlers need.
type Dependencies struct {
	Engine *orchestrator.Engine
	Logger *zap.Logger
}

func parseFloatQuery(r *http.Request, key string, def, min, max float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// the body is already partially written; nothing more to do but
		// let the connection close uncleanly.
		return
	}
}

// AnalyzeHandler serves GET /analyze, per §6.
func AnalyzeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sizeETH := parseFloatQuery(r, "trade_size_eth", 10.0, 0, 10_000)

		result, err := deps.Engine.Analyze(r.Context(), sizeETH)
		if err != nil {
			deps.Logger.Warn("analyze failed", zap.Error(err), zap.Float64("trade_size_eth", sizeETH))
			requestsTotal.WithLabelValues("analyze", "error").Inc()
			writeJSON(w, AnalyzeResponse{
				TradeSizeETH:      sizeETH,
				RecommendedAction: "ERROR: " + err.Error(),
			})
			return
		}

		lastNetProfitUSD.Set(result.BestNetUSD)
		requestsTotal.WithLabelValues("analyze", result.RecommendedAction).Inc()

		writeJSON(w, AnalyzeResponse{
			TradeSizeETH: sizeETH,
			CLP:          venueQuoteJSON(result.CLPQuotes.Sell.PriceUSDCPerETH, result.CLPQuotes.Buy.PriceUSDCPerETH, result.CLPQuotes.ImpactPercent),
			CP:           venueQuoteJSON(result.CPQuotes.Sell.PriceUSDCPerETH, result.CPQuotes.Buy.PriceUSDCPerETH, result.CPQuotes.ImpactPercent),
			GasL1USD:     roundUSD(result.GasL1USD),
			GasL2USD:     roundUSD(result.GasL2USD),
			SellL2BuyL1: DirectionResultJSON{
				ProceedsUSD:        roundUSD(result.SellL2BuyL1.ProceedsUSD),
				CostUSD:            roundUSD(result.SellL2BuyL1.CostUSD),
				NetProfitUSD:       roundUSD(result.SellL2BuyL1.NetUSD),
				EffectiveSellPrice: roundUSD(result.SellL2BuyL1.EffectiveSellPrice),
				EffectiveBuyPrice:  roundUSD(result.SellL2BuyL1.EffectiveBuyPrice),
			},
			SellL1BuyL2: DirectionResultJSON{
				ProceedsUSD:        roundUSD(result.SellL1BuyL2.ProceedsUSD),
				CostUSD:            roundUSD(result.SellL1BuyL2.CostUSD),
				NetProfitUSD:       roundUSD(result.SellL1BuyL2.NetUSD),
				EffectiveSellPrice: roundUSD(result.SellL1BuyL2.EffectiveSellPrice),
				EffectiveBuyPrice:  roundUSD(result.SellL1BuyL2.EffectiveBuyPrice),
			},
			BestDirection:     result.BestDirection.String(),
			BestNetUSD:        roundUSD(result.BestNetUSD),
			RecommendedAction: result.RecommendedAction,
			Diagnostic:        result.Diagnostic,
		})
	}
}

// OptimizeHandler serves GET /optimize, per §6.
func OptimizeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxSizeETH := parseFloatQuery(r, "max_size_eth", 100.0, 0.1, 1000)

		result, err := deps.Engine.Optimize(r.Context(), maxSizeETH)
		if err != nil {
			deps.Logger.Warn("optimize failed", zap.Error(err), zap.Float64("max_size_eth", maxSizeETH))
			requestsTotal.WithLabelValues("optimize", "error").Inc()
			writeJSON(w, OptimizeResponse{
				MaxSizeETH:        maxSizeETH,
				RecommendedAction: "ERROR: " + err.Error(),
			})
			return
		}

		lastOptimalSizeETH.Set(result.Best.SizeETH)
		lastNetProfitUSD.Set(result.Best.NetUSD)
		requestsTotal.WithLabelValues("optimize", result.RecommendedAction).Inc()

		writeJSON(w, OptimizeResponse{
			MaxSizeETH:         maxSizeETH,
			OptimalSizeETH:     result.Best.SizeETH,
			Direction:          result.Direction.String(),
			ProceedsUSD:        roundUSD(result.Best.ProceedsUSD),
			CostUSD:            roundUSD(result.Best.CostUSD),
			EffectiveSellPrice: roundUSD(result.Best.EffectiveSellPrice),
			EffectiveBuyPrice:  roundUSD(result.Best.EffectiveBuyPrice),
			GasL1USD:           roundUSD(result.GasL1USD),
			GasL2USD:           roundUSD(result.GasL2USD),
			BridgeCostUSD:      roundUSD(result.BridgeCostUSD),
			NetProfitUSD:       roundUSD(result.Best.NetUSD),
			CLP:                venueQuoteJSON(result.CLPQuotes.Sell.PriceUSDCPerETH, result.CLPQuotes.Buy.PriceUSDCPerETH, result.CLPQuotes.ImpactPercent),
			CP:                 venueQuoteJSON(result.CPQuotes.Sell.PriceUSDCPerETH, result.CPQuotes.Buy.PriceUSDCPerETH, result.CPQuotes.ImpactPercent),
			RecommendedAction:  result.RecommendedAction,
			Diagnostic:         result.Diagnostic,
		})
	}
}
