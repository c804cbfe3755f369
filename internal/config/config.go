// Package config loads the engine's process-wide configuration from
// environment variables once at startup into a single immutable record.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Addresses groups the token and protocol addresses the engine needs on
// both chains.
type Addresses struct {
	L1WETH            common.Address
	L1USDC            common.Address
	L2WETH            common.Address
	L2USDC            common.Address
	UniversalRouterL1 common.Address
	FactoryL2         common.Address
	CPPoolOverride    common.Address // zero value means "resolve via factory"
}

// GasUnits holds the fixed gas-unit constants used to estimate swap cost
// on each chain.
type GasUnits struct {
	CLPSwapBase           uint64
	CLPSettleTakeOverhead uint64
	CLPHookOverhead       uint64
	CPSwap                uint64
}

// PoolParams names the fixed identity of the single configured pool pair
// on each venue: the CLP pool's fee tier, tick spacing, and hook contract
// (a v4 pool's identity is its PoolKey, not an address), and whether the
// CP venue treats token pairs as the stable-invariant curve (always false
// here — stable-invariant pools are out of scope).
type PoolParams struct {
	CLPFeePPM      uint32
	CLPTickSpacing int32
	CLPHooks       common.Address
	CPStable       bool
}

// L1GasLimit is the sum of the three CLP gas-unit constants, per §6.
func (g GasUnits) L1GasLimit() uint64 {
	return g.CLPSwapBase + g.CLPSettleTakeOverhead + g.CLPHookOverhead
}

// Config is the engine's full process configuration, loaded once at
// startup and never mutated afterward.
type Config struct {
	L1RPCURL       string
	L2RPCURL       string
	CLPStateView   common.Address
	CEXAPIURL      string
	Port           int
	Addresses      Addresses
	Gas            GasUnits
	Pool           PoolParams
	BridgeAPIURL   string
	BridgeTimeout  time.Duration
}

// Load reads Config from the environment, returning an error naming every
// missing required variable. It never mutates process state beyond
// reading env vars.
func Load() (*Config, error) {
	var missing []string
	requireEnv := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	l1RPC := requireEnv("L1_RPC_URL")
	l2RPC := requireEnv("L2_RPC_URL")
	stateViewStr := requireEnv("CLP_STATE_VIEW")

	l1WETH := requireEnv("L1_WETH_ADDRESS")
	l1USDC := requireEnv("L1_USDC_ADDRESS")
	l2WETH := requireEnv("L2_WETH_ADDRESS")
	l2USDC := requireEnv("L2_USDC_ADDRESS")
	universalRouter := requireEnv("L1_UNIVERSAL_ROUTER")
	factoryL2 := requireEnv("L2_FACTORY_ADDRESS")

	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required environment variables: %v", missing)
	}
	if !common.IsHexAddress(stateViewStr) {
		return nil, fmt.Errorf("config: CLP_STATE_VIEW is not a valid address: %q", stateViewStr)
	}

	cfg := &Config{
		L1RPCURL:     l1RPC,
		L2RPCURL:     l2RPC,
		CLPStateView: common.HexToAddress(stateViewStr),
		CEXAPIURL:    getEnv("CEX_API_URL", "https://api.coinbase.com/v2/prices/ETH-USD/spot"),
		Port:         getEnvAsInt("PORT", 8000),
		Addresses: Addresses{
			L1WETH:            common.HexToAddress(l1WETH),
			L1USDC:            common.HexToAddress(l1USDC),
			L2WETH:            common.HexToAddress(l2WETH),
			L2USDC:            common.HexToAddress(l2USDC),
			UniversalRouterL1: common.HexToAddress(universalRouter),
			FactoryL2:         common.HexToAddress(factoryL2),
			CPPoolOverride:    common.HexToAddress(getEnv("L2_CP_POOL_ADDRESS", "")),
		},
		Gas: GasUnits{
			CLPSwapBase:           uint64(getEnvAsInt("GAS_CLP_SWAP_BASE", 120_000)),
			CLPSettleTakeOverhead: uint64(getEnvAsInt("GAS_CLP_SETTLE_TAKE_OVERHEAD", 40_000)),
			CLPHookOverhead:       uint64(getEnvAsInt("GAS_CLP_HOOK_OVERHEAD", 0)),
			CPSwap:                uint64(getEnvAsInt("GAS_CP_SWAP", 150_000)),
		},
		Pool: PoolParams{
			CLPFeePPM:      uint32(getEnvAsInt("CLP_POOL_FEE_PPM", 500)),
			CLPTickSpacing: int32(getEnvAsInt("CLP_TICK_SPACING", 10)),
			CLPHooks:       common.HexToAddress(getEnv("CLP_HOOKS_ADDRESS", "")),
			CPStable:       false,
		},
		BridgeAPIURL:  getEnv("BRIDGE_API_URL", ""),
		BridgeTimeout: getEnvAsDuration("BRIDGE_TIMEOUT_SECS", 10*time.Second),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	// BRIDGE_TIMEOUT_SECS is specified as a bare integer count of seconds.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}
