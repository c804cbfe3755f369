package chainio

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/pal9000i/arb-engine/pkg/collab"
)

// BridgeClient queries an HTTP bridge-quote API for the USD cost of
// rebalancing a raw token amount across chains.
type BridgeClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewBridgeClient wraps apiURL with the configured per-request timeout
// (default 10s per §6).
func NewBridgeClient(apiURL string, timeout time.Duration) *BridgeClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BridgeClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ collab.BridgeFeeOracle = (*BridgeClient)(nil)

type bridgeQuoteResponse struct {
	FeeUSD float64 `json:"fee_usd"`
}

func (b *BridgeClient) QuoteUSD(ctx context.Context, asset common.Address, amountRaw *big.Int) (float64, error) {
	if b.apiURL == "" {
		return 0, collab.NewEngineError(collab.KindBridgeUnavailable, "bridge api url not configured", nil)
	}

	url := fmt.Sprintf("%s?asset=%s&amount=%s", b.apiURL, asset.Hex(), amountRaw.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, collab.NewEngineError(collab.KindTransportFailure, "build bridge quote request failed", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return 0, collab.NewEngineError(collab.KindTransportFailure, "bridge quote request failed", err)
	}
	defer resp.Body.Close()

	var parsed bridgeQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, collab.NewEngineError(collab.KindParseFailure, "bridge quote decode failed", err)
	}

	return parsed.FeeUSD, nil
}
