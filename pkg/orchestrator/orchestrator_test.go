package orchestrator_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/pal9000i/arb-engine/pkg/arbitrage"
	"github.com/pal9000i/arb-engine/pkg/clp"
	"github.com/pal9000i/arb-engine/pkg/clpmath"
	"github.com/pal9000i/arb-engine/pkg/orchestrator"
)

// fakeRefPrice is a fixed off-chain reference price.
type fakeRefPrice struct{ price float64 }

func (f fakeRefPrice) SpotPriceUSDCPerETH(ctx context.Context) (float64, error) {
	return f.price, nil
}

// fakeCLPReader reports a flat slot0/liquidity and an all-zero tick
// bitmap, so LoadCLPSnapshot falls back to a synthetic wide-range
// snapshot without needing a hand-encoded bitmap.
type fakeCLPReader struct {
	sqrtPriceX96 *big.Int
	tick         int32
	liquidity    *big.Int
}

func (f fakeCLPReader) Slot0(ctx context.Context, poolID [32]byte) (*big.Int, int32, error) {
	return f.sqrtPriceX96, f.tick, nil
}

func (f fakeCLPReader) Liquidity(ctx context.Context, poolID [32]byte) (*big.Int, error) {
	return f.liquidity, nil
}

func (f fakeCLPReader) TickBitmap(ctx context.Context, poolID [32]byte, wordPos int16) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (f fakeCLPReader) TickInfo(ctx context.Context, poolID [32]byte, tick int32) (*big.Int, *big.Int, error) {
	return big.NewInt(0), big.NewInt(0), nil
}

// fakeCPReader reports fixed reserves for whatever pool address the
// market's override names; Pool is never called when the override is set.
type fakeCPReader struct {
	token0, token1     common.Address
	reserve0, reserve1 *big.Int
	feeBps             uint32
}

func (f fakeCPReader) Pool(ctx context.Context, tokenA, tokenB common.Address, stable bool) (common.Address, error) {
	return common.Address{}, errNotResolved
}

func (f fakeCPReader) Fee(ctx context.Context, pool common.Address, stable bool) (uint32, error) {
	return f.feeBps, nil
}

func (f fakeCPReader) Tokens(ctx context.Context, pool common.Address) (common.Address, common.Address, error) {
	return f.token0, f.token1, nil
}

func (f fakeCPReader) Reserves(ctx context.Context, pool common.Address) (*big.Int, *big.Int, error) {
	return f.reserve0, f.reserve1, nil
}

var errNotResolved = errUnreachable{}

type errUnreachable struct{}

func (errUnreachable) Error() string { return "orchestrator_test: Pool() should not be called when CPPoolOverride is set" }

type fakeGasOracle struct {
	l1Wei, l2Wei *big.Int
}

func (f fakeGasOracle) EstimateL1Wei(ctx context.Context, gasLimit uint64) (*big.Int, error) {
	return f.l1Wei, nil
}

func (f fakeGasOracle) EstimateL2Wei(ctx context.Context, gasLimit uint64, sampleCalldata []byte) (*big.Int, error) {
	return f.l2Wei, nil
}

// fakeBridgeOracle returns a fixed USD cost regardless of asset.
type fakeBridgeOracle struct{ costUSD float64 }

func (f fakeBridgeOracle) QuoteUSD(ctx context.Context, asset common.Address, amountRaw *big.Int) (float64, error) {
	return f.costUSD, nil
}

func weth() common.Address { return common.HexToAddress("0x1") }
func usdc() common.Address { return common.HexToAddress("0x2") }

// newTestEngine builds an Engine whose CLP venue prices ETH noticeably
// below its CP venue, so a SellL2BuyL1-direction arbitrage exists when the
// bridge cost is small.
func newTestEngine(bridgeCostUSD float64) *orchestrator.Engine {
	clpKey := clp.PoolKey{
		Currency0:   weth(),
		Currency1:   usdc(),
		Fee:         500,
		TickSpacing: 10,
	}

	// A CLP pool trading ~3000 USDC/ETH, currency0=WETH (18 decimals),
	// currency1=USDC (6 decimals): the raw price is 3000 * 10^(6-18) =
	// 3e-9, so the tick is floor(log_1.0001(3e-9)) = -196257 and
	// sqrtPriceX96 is that tick's sqrt ratio. The synthetic fallback
	// snapshot centres its liquidity range on this tick.
	clpTick := int32(-196257)
	sqrtPriceX96, _ := clpmath.GetSqrtRatioAtTick(clpTick)

	clpReader := fakeCLPReader{
		sqrtPriceX96: sqrtPriceX96,
		tick:         clpTick,
		liquidity:    big.NewInt(1_000_000_000_000_000_000),
	}

	cpReader := fakeCPReader{
		token0:   weth(),
		token1:   usdc(),
		reserve0: new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18)),
		reserve1: new(big.Int).Mul(big.NewInt(3_100_000), big.NewInt(1e6)),
		feeBps:   30,
	}

	market := orchestrator.Market{
		CLPKey:            clpKey,
		CLPTickSpacing:    10,
		CLPEthIsCurrency0: true,

		CPTokenA:       weth(),
		CPTokenB:       usdc(),
		CPPoolOverride: common.HexToAddress("0xabcdef"),
		CPEthIsToken0:  true,
		CPDecimalsA:    18,
		CPDecimalsB:    6,

		L1GasLimit: 160_000,
		L2GasLimit: 200_000,

		BridgeAssets: map[arbitrage.Direction][2]common.Address{
			arbitrage.SellL2BuyL1: {usdc(), weth()},
			arbitrage.SellL1BuyL2: {usdc(), weth()},
		},
	}

	return &orchestrator.Engine{
		CLPReader: clpReader,
		CPReader:  cpReader,
		Gas:       fakeGasOracle{l1Wei: big.NewInt(1e15), l2Wei: big.NewInt(1e13)},
		Bridge:    fakeBridgeOracle{costUSD: bridgeCostUSD},
		RefPrice:  fakeRefPrice{price: 3100},
		Market:    market,
	}
}

func TestAnalyzePopulatesBothDirectionsWithoutError(t *testing.T) {
	engine := newTestEngine(1.0)

	res, err := engine.Analyze(context.Background(), 1.0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.SellL2BuyL1.SizeETH != 1.0 || res.SellL1BuyL2.SizeETH != 1.0 {
		t.Fatalf("expected both directions evaluated at the requested size, got %+v / %+v", res.SellL2BuyL1, res.SellL1BuyL2)
	}
	if res.CLPQuotes.Sell.PriceUSDCPerETH <= 0 || res.CPQuotes.Sell.PriceUSDCPerETH <= 0 {
		t.Fatalf("expected positive venue prices, got CLP=%+v CP=%+v", res.CLPQuotes, res.CPQuotes)
	}
	if res.RecommendedAction != "ARBITRAGE_DETECTED" && res.RecommendedAction != "NO_ARBITRAGE" {
		t.Fatalf("unexpected RecommendedAction: %q", res.RecommendedAction)
	}
}

func TestAnalyzeNoArbitrageWhenBridgeCostDominates(t *testing.T) {
	engine := newTestEngine(1_000_000)

	res, err := engine.Analyze(context.Background(), 1.0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.RecommendedAction != "NO_ARBITRAGE" {
		t.Fatalf("RecommendedAction = %q, want NO_ARBITRAGE with a dominating bridge cost", res.RecommendedAction)
	}
	if res.BestNetUSD >= 0 {
		t.Fatalf("BestNetUSD = %v, want negative", res.BestNetUSD)
	}
}

func TestOptimizeFindsAnOpportunityWithCheapBridging(t *testing.T) {
	engine := newTestEngine(0.5)

	res, err := engine.Optimize(context.Background(), 50.0)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	switch res.RecommendedAction {
	case "PROFITABLE_ARBITRAGE_FOUND":
		if res.Best.NetUSD <= 0 {
			t.Fatalf("PROFITABLE_ARBITRAGE_FOUND but NetUSD = %v", res.Best.NetUSD)
		}
		if res.Best.SizeETH <= 0 {
			t.Fatalf("expected a positive optimal size, got %v", res.Best.SizeETH)
		}
	case "NO_PROFITABLE_ARBITRAGE", "NO_ARBITRAGE_OPPORTUNITY":
		// A cheap-but-nonzero spread at this fixture's reserves may still
		// not clear gas costs; both venue quote sets must still be populated.
		if res.CLPQuotes.Sell.PriceUSDCPerETH <= 0 || res.CPQuotes.Sell.PriceUSDCPerETH <= 0 {
			t.Fatalf("expected populated probe quotes even with no opportunity, got CLP=%+v CP=%+v", res.CLPQuotes, res.CPQuotes)
		}
	default:
		t.Fatalf("unexpected RecommendedAction: %q", res.RecommendedAction)
	}
}

func TestLoadCLPSnapshotFallsBackToSyntheticOnEmptyBitmap(t *testing.T) {
	engine := newTestEngine(1.0)

	res, err := engine.Analyze(context.Background(), 0.01)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Diagnostic == "" {
		t.Fatal("expected a non-empty diagnostic marking the synthetic-snapshot fallback")
	}
}
