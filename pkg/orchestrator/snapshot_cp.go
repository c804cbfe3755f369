package orchestrator

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/pal9000i/arb-engine/pkg/collab"
	"github.com/pal9000i/arb-engine/pkg/cp"
)

// LoadCPSnapshot resolves the pool address via the factory when
// poolOverride is the zero address, then reads token0/token1/reserves/fee
// in parallel.
func LoadCPSnapshot(ctx context.Context, reader collab.CPChainReader, tokenA, tokenB common.Address, stable bool, poolOverride common.Address, decimalsA, decimalsB uint8) (*cp.Snapshot, error) {
	pool := poolOverride
	if (pool == common.Address{}) {
		resolved, err := reader.Pool(ctx, tokenA, tokenB, stable)
		if err != nil {
			return nil, err
		}
		pool = resolved
	}

	var token0, token1 common.Address
	var reserve0, reserve1 *big.Int
	var feeBps uint32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		token0, token1, err = reader.Tokens(gctx, pool)
		return err
	})
	g.Go(func() error {
		var err error
		reserve0, reserve1, err = reader.Reserves(gctx, pool)
		return err
	})
	g.Go(func() error {
		var err error
		feeBps, err = reader.Fee(gctx, pool, stable)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	decimals0, decimals1 := decimalsA, decimalsB
	if token0 != tokenA {
		decimals0, decimals1 = decimalsB, decimalsA
	}

	return &cp.Snapshot{
		Token0:    [20]byte(token0),
		Token1:    [20]byte(token1),
		Reserve0:  reserve0,
		Reserve1:  reserve1,
		Decimals0: decimals0,
		Decimals1: decimals1,
		FeeBps:    feeBps,
	}, nil
}
