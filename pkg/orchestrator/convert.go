package orchestrator

import "math/big"

var weiPerETHFloat = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// weiToUSD converts a raw wei amount to USD using usdPerETH, at the
// reporting boundary only.
func weiToUSD(wei *big.Int, usdPerETH float64) float64 {
	if wei == nil {
		return 0
	}
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerETHFloat)
	ethF, _ := eth.Float64()
	return ethF * usdPerETH
}

// ethToWei scales an ETH-denominated float into raw 18-decimal units.
func ethToWei(sizeETH float64) *big.Int {
	f := new(big.Float).Mul(big.NewFloat(sizeETH), weiPerETHFloat)
	out, _ := f.Int(nil)
	return out
}
