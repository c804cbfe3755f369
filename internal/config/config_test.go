package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/pal9000i/arb-engine/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"L1_RPC_URL":           "https://l1.example/rpc",
		"L2_RPC_URL":           "https://l2.example/rpc",
		"CLP_STATE_VIEW":       "0x0000000000000000000000000000000000000001",
		"L1_WETH_ADDRESS":      "0x0000000000000000000000000000000000000002",
		"L1_USDC_ADDRESS":      "0x0000000000000000000000000000000000000003",
		"L2_WETH_ADDRESS":      "0x0000000000000000000000000000000000000004",
		"L2_USDC_ADDRESS":      "0x0000000000000000000000000000000000000005",
		"L1_UNIVERSAL_ROUTER":  "0x0000000000000000000000000000000000000006",
		"L2_FACTORY_ADDRESS":   "0x0000000000000000000000000000000000000007",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadSucceedsWithRequiredVarsAndDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("default Port = %d, want 8000", cfg.Port)
	}
	if cfg.Gas.L1GasLimit() != 120_000+40_000+0 {
		t.Errorf("L1GasLimit = %d, want %d", cfg.Gas.L1GasLimit(), 160_000)
	}
	if cfg.Pool.CLPFeePPM != 500 || cfg.Pool.CLPTickSpacing != 10 {
		t.Errorf("unexpected default pool params: %+v", cfg.Pool)
	}
	if cfg.BridgeTimeout != 10*time.Second {
		t.Errorf("default BridgeTimeout = %s, want 10s", cfg.BridgeTimeout)
	}
}

func TestLoadMissingRequiredVarsReportsAll(t *testing.T) {
	// deliberately leave everything unset
	_, err := config.Load()
	if err == nil {
		t.Fatal("expected an error when required env vars are missing")
	}
	for _, want := range []string{"L1_RPC_URL", "L2_RPC_URL", "CLP_STATE_VIEW"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected missing-var error to mention %s, got: %v", want, err)
		}
	}
}

func TestLoadRejectsInvalidStateViewAddress(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLP_STATE_VIEW", "not-an-address")

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected an error for an invalid CLP_STATE_VIEW address")
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CLP_POOL_FEE_PPM", "3000")
	t.Setenv("CLP_TICK_SPACING", "60")
	t.Setenv("BRIDGE_TIMEOUT_SECS", "30")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Pool.CLPFeePPM != 3000 || cfg.Pool.CLPTickSpacing != 60 {
		t.Errorf("unexpected overridden pool params: %+v", cfg.Pool)
	}
	if cfg.BridgeTimeout != 30*time.Second {
		t.Errorf("BridgeTimeout = %s, want 30s", cfg.BridgeTimeout)
	}
}

func TestLoadBridgeTimeoutAcceptsGoDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BRIDGE_TIMEOUT_SECS", "1m30s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BridgeTimeout != 90*time.Second {
		t.Errorf("BridgeTimeout = %s, want 1m30s", cfg.BridgeTimeout)
	}
}
