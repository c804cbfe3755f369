package chainio

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/pal9000i/arb-engine/pkg/collab"
)

// CLPClient reads the concentrated-liquidity state-view contract over a
// live L1 RPC endpoint.
type CLPClient struct {
	ethc      *ethclient.Client
	stateView common.Address
}

// NewCLPClient wraps an already-dialed ethclient against the given
// state-view contract address.
func NewCLPClient(ethc *ethclient.Client, stateView common.Address) *CLPClient {
	return &CLPClient{ethc: ethc, stateView: stateView}
}

var _ collab.CLPChainReader = (*CLPClient)(nil)

func (c *CLPClient) Slot0(ctx context.Context, poolID [32]byte) (*big.Int, int32, error) {
	data, err := pack("getSlot0(bytes32)", []string{"bytes32"}, poolID)
	if err != nil {
		return nil, 0, err
	}
	raw, err := call(ctx, c.ethc, c.stateView, data)
	if err != nil {
		return nil, 0, collab.NewEngineError(collab.KindTransportFailure, "getSlot0 call failed", err)
	}
	values, err := unpack([]string{"uint160", "int24", "uint24", "uint24"}, raw)
	if err != nil {
		return nil, 0, collab.NewEngineError(collab.KindParseFailure, "getSlot0 decode failed", err)
	}
	sqrtPriceX96 := values[0].(*big.Int)
	tick := int32(values[1].(*big.Int).Int64())
	return sqrtPriceX96, tick, nil
}

func (c *CLPClient) Liquidity(ctx context.Context, poolID [32]byte) (*big.Int, error) {
	data, err := pack("getLiquidity(bytes32)", []string{"bytes32"}, poolID)
	if err != nil {
		return nil, err
	}
	raw, err := call(ctx, c.ethc, c.stateView, data)
	if err != nil {
		return nil, collab.NewEngineError(collab.KindTransportFailure, "getLiquidity call failed", err)
	}
	values, err := unpack([]string{"uint128"}, raw)
	if err != nil {
		return nil, collab.NewEngineError(collab.KindParseFailure, "getLiquidity decode failed", err)
	}
	return values[0].(*big.Int), nil
}

func (c *CLPClient) TickBitmap(ctx context.Context, poolID [32]byte, wordPos int16) (*big.Int, error) {
	data, err := pack("getTickBitmap(bytes32,int16)", []string{"bytes32", "int16"}, poolID, wordPos)
	if err != nil {
		return nil, err
	}
	raw, err := call(ctx, c.ethc, c.stateView, data)
	if err != nil {
		return nil, collab.NewEngineError(collab.KindTransportFailure, "getTickBitmap call failed", err)
	}
	values, err := unpack([]string{"uint256"}, raw)
	if err != nil {
		return nil, collab.NewEngineError(collab.KindParseFailure, "getTickBitmap decode failed", err)
	}
	return values[0].(*big.Int), nil
}

func (c *CLPClient) TickInfo(ctx context.Context, poolID [32]byte, tick int32) (*big.Int, *big.Int, error) {
	data, err := pack("getTickInfo(bytes32,int24)", []string{"bytes32", "int24"}, poolID, big.NewInt(int64(tick)))
	if err != nil {
		return nil, nil, err
	}
	raw, err := call(ctx, c.ethc, c.stateView, data)
	if err != nil {
		return nil, nil, collab.NewEngineError(collab.KindTransportFailure, "getTickInfo call failed", err)
	}
	values, err := unpack([]string{"uint128", "int128", "uint256", "uint256"}, raw)
	if err != nil {
		return nil, nil, collab.NewEngineError(collab.KindParseFailure, "getTickInfo decode failed", err)
	}
	return values[0].(*big.Int), values[1].(*big.Int), nil
}
