package chainio

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/pal9000i/arb-engine/pkg/collab"
)

// CPClient reads a Solidly/Aerodrome-style constant-product factory and
// pool over a live L2 RPC endpoint.
type CPClient struct {
	ethc    *ethclient.Client
	factory common.Address
}

// NewCPClient wraps an already-dialed ethclient against the given factory
// contract address.
func NewCPClient(ethc *ethclient.Client, factory common.Address) *CPClient {
	return &CPClient{ethc: ethc, factory: factory}
}

var _ collab.CPChainReader = (*CPClient)(nil)

func (c *CPClient) Pool(ctx context.Context, tokenA, tokenB common.Address, stable bool) (common.Address, error) {
	data, err := pack("getPool(address,address,bool)", []string{"address", "address", "bool"}, tokenA, tokenB, stable)
	if err != nil {
		return common.Address{}, err
	}
	raw, err := call(ctx, c.ethc, c.factory, data)
	if err != nil {
		return common.Address{}, collab.NewEngineError(collab.KindTransportFailure, "getPool call failed", err)
	}
	values, err := unpack([]string{"address"}, raw)
	if err != nil {
		return common.Address{}, collab.NewEngineError(collab.KindParseFailure, "getPool decode failed", err)
	}
	return values[0].(common.Address), nil
}

func (c *CPClient) Fee(ctx context.Context, pool common.Address, stable bool) (uint32, error) {
	data, err := pack("getFee(address,bool)", []string{"address", "bool"}, pool, stable)
	if err != nil {
		return 0, err
	}
	raw, err := call(ctx, c.ethc, c.factory, data)
	if err != nil {
		return 0, collab.NewEngineError(collab.KindTransportFailure, "getFee call failed", err)
	}
	values, err := unpack([]string{"uint256"}, raw)
	if err != nil {
		return 0, collab.NewEngineError(collab.KindParseFailure, "getFee decode failed", err)
	}
	return uint32(values[0].(*big.Int).Uint64()), nil
}

func (c *CPClient) Tokens(ctx context.Context, pool common.Address) (common.Address, common.Address, error) {
	token0Data, err := pack("token0()", nil)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	token1Data, err := pack("token1()", nil)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}

	raw0, err := call(ctx, c.ethc, pool, token0Data)
	if err != nil {
		return common.Address{}, common.Address{}, collab.NewEngineError(collab.KindTransportFailure, "token0 call failed", err)
	}
	raw1, err := call(ctx, c.ethc, pool, token1Data)
	if err != nil {
		return common.Address{}, common.Address{}, collab.NewEngineError(collab.KindTransportFailure, "token1 call failed", err)
	}

	v0, err := unpack([]string{"address"}, raw0)
	if err != nil {
		return common.Address{}, common.Address{}, collab.NewEngineError(collab.KindParseFailure, "token0 decode failed", err)
	}
	v1, err := unpack([]string{"address"}, raw1)
	if err != nil {
		return common.Address{}, common.Address{}, collab.NewEngineError(collab.KindParseFailure, "token1 decode failed", err)
	}

	return v0[0].(common.Address), v1[0].(common.Address), nil
}

func (c *CPClient) Reserves(ctx context.Context, pool common.Address) (*big.Int, *big.Int, error) {
	data, err := pack("getReserves()", nil)
	if err != nil {
		return nil, nil, err
	}
	raw, err := call(ctx, c.ethc, pool, data)
	if err != nil {
		return nil, nil, collab.NewEngineError(collab.KindTransportFailure, "getReserves call failed", err)
	}
	values, err := unpack([]string{"uint256", "uint256", "uint256"}, raw)
	if err != nil {
		return nil, nil, collab.NewEngineError(collab.KindParseFailure, "getReserves decode failed", err)
	}
	return values[0].(*big.Int), values[1].(*big.Int), nil
}
