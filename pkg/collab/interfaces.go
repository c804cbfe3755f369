// Package collab defines the narrow collaborator interfaces the
// orchestrator depends on — chain readers, a reference price source, a
// gas oracle, and a bridge fee oracle — plus the typed error the engine
// uses to carry failure context across those boundaries.
package collab

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ReferencePriceSource returns an off-chain reference price for the
// ETH-equivalent asset in USDC, used to convert gas estimates from wei to
// USD.
type ReferencePriceSource interface {
	SpotPriceUSDCPerETH(ctx context.Context) (float64, error)
}

// CLPChainReader reads the state-view contract backing a concentrated
// liquidity pool: slot0, total liquidity, and the tick bitmap/info needed
// to reconstruct the in-range tick set.
type CLPChainReader interface {
	// Slot0 returns the pool's current sqrt price (Q64.96) and tick.
	Slot0(ctx context.Context, poolID [32]byte) (sqrtPriceX96 *big.Int, tick int32, err error)
	// Liquidity returns the pool's current in-range liquidity.
	Liquidity(ctx context.Context, poolID [32]byte) (*big.Int, error)
	// TickBitmap returns the 256-bit initialized-tick bitmap word at
	// wordPos.
	TickBitmap(ctx context.Context, poolID [32]byte, wordPos int16) (*big.Int, error)
	// TickInfo returns the gross and net liquidity deltas at tick.
	TickInfo(ctx context.Context, poolID [32]byte, tick int32) (liquidityGross, liquidityNet *big.Int, err error)
}

// CPChainReader reads a constant-product factory and pool: token
// identities, reserves, and the pool's fee tier.
type CPChainReader interface {
	// Pool resolves the pool address for a token pair, optionally
	// restricted to the stable-curve variant.
	Pool(ctx context.Context, tokenA, tokenB common.Address, stable bool) (common.Address, error)
	// Fee returns the pool's fee in basis points.
	Fee(ctx context.Context, pool common.Address, stable bool) (uint32, error)
	// Tokens returns the pool's token0/token1 addresses.
	Tokens(ctx context.Context, pool common.Address) (token0, token1 common.Address, err error)
	// Reserves returns the pool's current reserves.
	Reserves(ctx context.Context, pool common.Address) (reserve0, reserve1 *big.Int, err error)
}

// GasOracle estimates the wei cost of a swap on each chain; the
// orchestrator converts the result to USD using the reference price
// fetched earlier in the same request.
type GasOracle interface {
	// EstimateL1Wei returns gasPrice * gasLimit.
	EstimateL1Wei(ctx context.Context, gasLimit uint64) (*big.Int, error)
	// EstimateL2Wei returns the OP-Stack execution cost plus the
	// predeploy oracle's L1 data fee for sampleCalldata.
	EstimateL2Wei(ctx context.Context, gasLimit uint64, sampleCalldata []byte) (*big.Int, error)
}

// BridgeFeeOracle quotes the USD cost of rebalancing amountRaw of asset
// across chains.
type BridgeFeeOracle interface {
	QuoteUSD(ctx context.Context, asset common.Address, amountRaw *big.Int) (float64, error)
}
