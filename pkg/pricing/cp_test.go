package pricing_test

import (
	"math/big"
	"testing"

	"github.com/pal9000i/arb-engine/pkg/cp"
	"github.com/pal9000i/arb-engine/pkg/pricing"
)

func syntheticCPSnapshot() *cp.Snapshot {
	return &cp.Snapshot{
		Reserve0:  new(big.Int).Mul(big.NewInt(10000), big.NewInt(1e18)),
		Reserve1:  new(big.Int).Mul(big.NewInt(30_000_000), big.NewInt(1e6)),
		Decimals0: 18,
		Decimals1: 6,
		FeeBps:    30,
	}
}

func TestQuoteCPBothSellBelowBuy(t *testing.T) {
	snap := syntheticCPSnapshot()
	sizeWei := new(big.Int).Mul(big.NewInt(1), big.NewInt(1e18))

	quotes, err := pricing.QuoteCPBoth(snap, true, sizeWei)
	if err != nil {
		t.Fatalf("QuoteCPBoth: %v", err)
	}
	if quotes.Sell.PriceUSDCPerETH <= 0 || quotes.Buy.PriceUSDCPerETH <= 0 {
		t.Fatal("expected positive prices on both sides")
	}
	if quotes.Buy.PriceUSDCPerETH < quotes.Sell.PriceUSDCPerETH {
		t.Fatalf("expected buy price >= sell price, got buy=%f sell=%f", quotes.Buy.PriceUSDCPerETH, quotes.Sell.PriceUSDCPerETH)
	}
}

func TestBuyCPRejectsOversizedTarget(t *testing.T) {
	snap := syntheticCPSnapshot()
	// requesting the entire reserve out must fail to converge
	if _, _, err := pricing.BuyCP(snap, true, snap.Reserve1); err == nil {
		t.Fatal("expected an error for a target at the full reserve")
	}
}
