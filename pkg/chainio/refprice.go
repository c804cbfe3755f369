package chainio

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pal9000i/arb-engine/pkg/collab"
)

// CEXPriceSource fetches a reference spot price from a well-known
// centralized-exchange rates endpoint (Coinbase-shaped by default: a
// JSON body under data.amount).
type CEXPriceSource struct {
	apiURL     string
	httpClient *http.Client
}

// NewCEXPriceSource wraps apiURL with a bounded-timeout HTTP client.
func NewCEXPriceSource(apiURL string) *CEXPriceSource {
	return &CEXPriceSource{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ collab.ReferencePriceSource = (*CEXPriceSource)(nil)

type cexSpotResponse struct {
	Data struct {
		Amount string `json:"amount"`
	} `json:"data"`
}

func (c *CEXPriceSource) SpotPriceUSDCPerETH(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return 0, collab.NewEngineError(collab.KindTransportFailure, "build cex price request failed", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, collab.NewEngineError(collab.KindTransportFailure, "cex price request failed", err)
	}
	defer resp.Body.Close()

	var parsed cexSpotResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, collab.NewEngineError(collab.KindParseFailure, "cex price decode failed", err)
	}

	price, err := strconv.ParseFloat(parsed.Data.Amount, 64)
	if err != nil {
		return 0, collab.NewEngineError(collab.KindParseFailure, "cex price not numeric", err)
	}
	return price, nil
}
