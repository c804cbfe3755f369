package pricing_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pal9000i/arb-engine/pkg/clp"
	"github.com/pal9000i/arb-engine/pkg/clpmath"
	"github.com/pal9000i/arb-engine/pkg/pricing"
)

func syntheticCLPSnapshot(t *testing.T) *clp.Snapshot {
	t.Helper()
	key := clp.PoolKey{Currency0: common.HexToAddress("0x1"), Currency1: common.HexToAddress("0x2"), Fee: 500, TickSpacing: 10}
	sqrtPriceX96, err := clpmath.GetSqrtRatioAtTick(0)
	if err != nil {
		t.Fatal(err)
	}
	return clp.NewSyntheticSnapshot(key, sqrtPriceX96, 0, new(big.Int).Mul(big.NewInt(1e18), big.NewInt(10_000)))
}

func TestQuoteCLPBothSellBelowBuy(t *testing.T) {
	snap := syntheticCLPSnapshot(t)
	sizeWei := new(big.Int).Mul(big.NewInt(1), big.NewInt(1e18)) // 1 ETH-equivalent

	quotes, err := pricing.QuoteCLPBoth(snap, true, sizeWei, nil)
	if err != nil {
		t.Fatalf("QuoteCLPBoth: %v", err)
	}
	if quotes.Sell.PriceUSDCPerETH <= 0 {
		t.Fatal("expected positive sell price")
	}
	if quotes.Buy.PriceUSDCPerETH <= 0 {
		t.Fatal("expected positive buy price")
	}
	// a real pool with a fee charges more to buy than it pays to sell at
	// the same size, once fees and slippage are accounted for.
	if quotes.Buy.PriceUSDCPerETH < quotes.Sell.PriceUSDCPerETH {
		t.Fatalf("expected buy price >= sell price, got buy=%f sell=%f", quotes.Buy.PriceUSDCPerETH, quotes.Sell.PriceUSDCPerETH)
	}
}

func TestQuoteCLPBothLargerSizeWorsensImpact(t *testing.T) {
	snap := syntheticCLPSnapshot(t)
	small := new(big.Int).Mul(big.NewInt(1), big.NewInt(1e18))
	large := new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))

	smallQuotes, err := pricing.QuoteCLPBoth(snap, true, small, nil)
	if err != nil {
		t.Fatal(err)
	}
	largeQuotes, err := pricing.QuoteCLPBoth(snap, true, large, nil)
	if err != nil {
		t.Fatal(err)
	}
	// ImpactPercent is (sell - spot)/spot, so a worse impact is more negative.
	if largeQuotes.ImpactPercent >= smallQuotes.ImpactPercent {
		t.Fatalf("expected larger trade to have worse impact: small=%f large=%f", smallQuotes.ImpactPercent, largeQuotes.ImpactPercent)
	}
}

func TestBuyCLPRecoversApproximateTargetOnSell(t *testing.T) {
	snap := syntheticCLPSnapshot(t)
	targetETH := new(big.Int).Mul(big.NewInt(5), big.NewInt(1e18))

	usdcIn, iterations, err := pricing.BuyCLP(snap, true, targetETH, nil)
	if err != nil {
		t.Fatalf("BuyCLP: %v", err)
	}
	if usdcIn.Sign() <= 0 {
		t.Fatal("expected positive usdc input")
	}
	if iterations <= 0 {
		t.Fatalf("expected bisection to run at least one iteration, got %d", iterations)
	}
}
