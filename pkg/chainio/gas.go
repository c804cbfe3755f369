package chainio

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/pal9000i/arb-engine/pkg/collab"
)

// gasPriceOracleAddress is the OP-Stack GasPriceOracle predeploy, fixed
// across every OP-Stack chain.
var gasPriceOracleAddress = common.HexToAddress("0x420000000000000000000000000000000000000F")

// GasClient estimates transaction cost in wei on both chains: a plain
// gasPrice*gasLimit read on L1, and gasPrice*gasLimit plus the L1 data fee
// reported by the L2's GasPriceOracle predeploy.
type GasClient struct {
	l1 *ethclient.Client
	l2 *ethclient.Client
}

// NewGasClient wraps the already-dialed L1 and L2 clients.
func NewGasClient(l1, l2 *ethclient.Client) *GasClient {
	return &GasClient{l1: l1, l2: l2}
}

var _ collab.GasOracle = (*GasClient)(nil)

func (g *GasClient) EstimateL1Wei(ctx context.Context, gasLimit uint64) (*big.Int, error) {
	gasPrice, err := g.l1.SuggestGasPrice(ctx)
	if err != nil {
		return nil, collab.NewEngineError(collab.KindTransportFailure, "l1 suggest gas price failed", err)
	}
	return new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit)), nil
}

func (g *GasClient) EstimateL2Wei(ctx context.Context, gasLimit uint64, sampleCalldata []byte) (*big.Int, error) {
	gasPrice, err := g.l2.SuggestGasPrice(ctx)
	if err != nil {
		return nil, collab.NewEngineError(collab.KindTransportFailure, "l2 suggest gas price failed", err)
	}

	data, err := pack("getL1Fee(bytes)", []string{"bytes"}, sampleCalldata)
	if err != nil {
		return nil, err
	}
	raw, err := call(ctx, g.l2, gasPriceOracleAddress, data)
	if err != nil {
		return nil, collab.NewEngineError(collab.KindTransportFailure, "getL1Fee call failed", err)
	}
	values, err := unpack([]string{"uint256"}, raw)
	if err != nil {
		return nil, collab.NewEngineError(collab.KindParseFailure, "getL1Fee decode failed", err)
	}
	l1DataFee := values[0].(*big.Int)

	l2Exec := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))
	return new(big.Int).Add(l2Exec, l1DataFee), nil
}
