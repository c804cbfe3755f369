package clp_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pal9000i/arb-engine/pkg/clp"
	"github.com/pal9000i/arb-engine/pkg/clpmath"
)

func syntheticSnapshot(t *testing.T) *clp.Snapshot {
	t.Helper()
	key := clp.PoolKey{
		Currency0:   common.HexToAddress("0x1"),
		Currency1:   common.HexToAddress("0x2"),
		Fee:         3000,
		TickSpacing: 60,
	}
	sqrtPriceX96, err := clpmath.GetSqrtRatioAtTick(0)
	if err != nil {
		t.Fatal(err)
	}
	return clp.NewSyntheticSnapshot(key, sqrtPriceX96, 0, big.NewInt(1_000_000_000_000_000_000))
}

func TestExactInZeroForOneMovesPriceDown(t *testing.T) {
	snap := syntheticSnapshot(t)
	res, err := clp.ExactIn(snap, clp.SwapParams{
		Direction: clp.ZeroForOne,
		AmountIn:  big.NewInt(1_000_000),
	})
	if err != nil {
		t.Fatalf("ExactIn: %v", err)
	}
	if res.Amount0.Sign() >= 0 {
		t.Fatal("expected amount0 to be negative (token0 sold)")
	}
	if res.Amount1.Sign() <= 0 {
		t.Fatal("expected amount1 to be positive (token1 received)")
	}
	if res.SqrtPriceX96After.Cmp(snap.SqrtPriceX96) >= 0 {
		t.Fatal("price should have moved down for ZeroForOne")
	}
}

func TestExactInOneForZeroMovesPriceUp(t *testing.T) {
	snap := syntheticSnapshot(t)
	res, err := clp.ExactIn(snap, clp.SwapParams{
		Direction: clp.OneForZero,
		AmountIn:  big.NewInt(1_000_000),
	})
	if err != nil {
		t.Fatalf("ExactIn: %v", err)
	}
	if res.Amount1.Sign() >= 0 {
		t.Fatal("expected amount1 to be negative (token1 sold)")
	}
	if res.Amount0.Sign() <= 0 {
		t.Fatal("expected amount0 to be positive (token0 received)")
	}
	if res.SqrtPriceX96After.Cmp(snap.SqrtPriceX96) <= 0 {
		t.Fatal("price should have moved up for OneForZero")
	}
}

func TestExactInRejectsNonPositiveAmount(t *testing.T) {
	snap := syntheticSnapshot(t)
	if _, err := clp.ExactIn(snap, clp.SwapParams{Direction: clp.ZeroForOne, AmountIn: big.NewInt(0)}); err != clp.ErrNonPositiveAmount {
		t.Fatalf("expected ErrNonPositiveAmount, got %v", err)
	}
	if _, err := clp.ExactIn(snap, clp.SwapParams{Direction: clp.ZeroForOne, AmountIn: big.NewInt(-5)}); err != clp.ErrNonPositiveAmount {
		t.Fatalf("expected ErrNonPositiveAmount, got %v", err)
	}
}

func TestExactInRejectsPriceLimitOnWrongSide(t *testing.T) {
	snap := syntheticSnapshot(t)
	// for ZeroForOne the limit must be strictly below the current price
	badLimit := new(big.Int).Add(snap.SqrtPriceX96, big.NewInt(1))
	_, err := clp.ExactIn(snap, clp.SwapParams{
		Direction:         clp.ZeroForOne,
		AmountIn:          big.NewInt(1_000_000),
		SqrtPriceLimitX96: badLimit,
	})
	if err != clp.ErrInvalidPriceLimit {
		t.Fatalf("expected ErrInvalidPriceLimit, got %v", err)
	}
}

func TestExactInRejectsEmptyTickTable(t *testing.T) {
	snap := syntheticSnapshot(t)
	snap.Ticks = clp.NewTickTable(map[int32]clp.TickInfo{})

	_, err := clp.ExactIn(snap, clp.SwapParams{Direction: clp.ZeroForOne, AmountIn: big.NewInt(1_000_000)})
	if err != clp.ErrEmptyTicks {
		t.Fatalf("expected ErrEmptyTicks, got %v", err)
	}
}

func TestExactInRejectsZeroLiquidity(t *testing.T) {
	snap := syntheticSnapshot(t)
	snap.Liquidity = big.NewInt(0)

	_, err := clp.ExactIn(snap, clp.SwapParams{Direction: clp.ZeroForOne, AmountIn: big.NewInt(1_000_000)})
	if err != clp.ErrZeroLiquidity {
		t.Fatalf("expected ErrZeroLiquidity, got %v", err)
	}
}

func TestExactInReturnsZeroLiquidityWhenRangeIsExhaustedMidSwap(t *testing.T) {
	snap := syntheticSnapshot(t)
	// A trade far larger than the synthetic range's liquidity can absorb
	// before running off the edge of the fabricated tick range.
	_, err := clp.ExactIn(snap, clp.SwapParams{
		Direction: clp.ZeroForOne,
		AmountIn:  new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil),
	})
	if err != clp.ErrZeroLiquidity {
		t.Fatalf("expected ErrZeroLiquidity once the range runs out of liquidity, got %v", err)
	}
}

func TestExactInLargerTradeCrossesAtLeastAsManyTicks(t *testing.T) {
	snap := syntheticSnapshot(t)
	small, err := clp.ExactIn(snap, clp.SwapParams{Direction: clp.ZeroForOne, AmountIn: big.NewInt(1_000)})
	if err != nil {
		t.Fatal(err)
	}
	large, err := clp.ExactIn(snap, clp.SwapParams{Direction: clp.ZeroForOne, AmountIn: big.NewInt(1_000_000_000_000)})
	if err != nil {
		t.Fatal(err)
	}
	if large.TicksCrossed < small.TicksCrossed {
		t.Fatalf("expected a larger trade to cross at least as many ticks: small=%d large=%d", small.TicksCrossed, large.TicksCrossed)
	}
}
