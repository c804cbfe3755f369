// Command server runs the arbitrage pricing/optimization engine as an
// HTTP service: it loads configuration, dials both chains, wires the
// collaborator clients into an orchestrator.Engine, and serves /analyze,
// /optimize, /health, and /metrics until signaled to shut down.
package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/pal9000i/arb-engine/internal/config"
	"github.com/pal9000i/arb-engine/internal/httpapi"
	"github.com/pal9000i/arb-engine/pkg/arbitrage"
	"github.com/pal9000i/arb-engine/pkg/chainio"
	"github.com/pal9000i/arb-engine/pkg/clp"
	"github.com/pal9000i/arb-engine/pkg/orchestrator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	l1Client, err := ethclient.DialContext(ctx, cfg.L1RPCURL)
	if err != nil {
		cancel()
		logger.Fatal("l1 rpc dial failed", zap.Error(err), zap.String("url", cfg.L1RPCURL))
	}
	l2Client, err := ethclient.DialContext(ctx, cfg.L2RPCURL)
	cancel()
	if err != nil {
		logger.Fatal("l2 rpc dial failed", zap.Error(err), zap.String("url", cfg.L2RPCURL))
	}

	market, err := buildMarket(cfg)
	if err != nil {
		logger.Fatal("invalid pool configuration", zap.Error(err))
	}

	engine := &orchestrator.Engine{
		CLPReader: chainio.NewCLPClient(l1Client, cfg.CLPStateView),
		CPReader:  chainio.NewCPClient(l2Client, cfg.Addresses.FactoryL2),
		Gas:       chainio.NewGasClient(l1Client, l2Client),
		Bridge:    chainio.NewBridgeClient(cfg.BridgeAPIURL, cfg.BridgeTimeout),
		RefPrice:  chainio.NewCEXPriceSource(cfg.CEXAPIURL),
		Market:    market,
	}

	deps := &httpapi.Dependencies{Engine: engine, Logger: logger}
	router := httpapi.SetupRoutes(deps)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

// buildMarket derives the fixed pool identity and bridge-asset mapping
// from configuration. Token0/currency0 assignment follows the standard
// lexicographic-address sort both venues use to order a pair.
func buildMarket(cfg *config.Config) (orchestrator.Market, error) {
	addr := cfg.Addresses

	clpEthIsCurrency0 := addressLess(addr.L1WETH, addr.L1USDC)
	clpKey := clp.PoolKey{
		Currency0:   addr.L1WETH,
		Currency1:   addr.L1USDC,
		Fee:         cfg.Pool.CLPFeePPM,
		TickSpacing: cfg.Pool.CLPTickSpacing,
		Hooks:       cfg.Pool.CLPHooks,
	}
	if !clpEthIsCurrency0 {
		clpKey.Currency0, clpKey.Currency1 = addr.L1USDC, addr.L1WETH
	}
	if err := clpKey.ValidateFeeTier(); err != nil {
		return orchestrator.Market{}, err
	}

	cpEthIsToken0 := addressLess(addr.L2WETH, addr.L2USDC)

	sampleCalldata := bytes.Repeat([]byte{0x00}, 68) // a representative swap call's size

	return orchestrator.Market{
		CLPKey:            clpKey,
		CLPTickSpacing:    cfg.Pool.CLPTickSpacing,
		CLPEthIsCurrency0: clpEthIsCurrency0,

		CPTokenA:       addr.L2WETH,
		CPTokenB:       addr.L2USDC,
		CPStable:       cfg.Pool.CPStable,
		CPPoolOverride: addr.CPPoolOverride,
		CPEthIsToken0:  cpEthIsToken0,
		CPDecimalsA:    18,
		CPDecimalsB:    6,

		L1GasLimit:     cfg.Gas.L1GasLimit(),
		L2GasLimit:     cfg.Gas.CPSwap,
		SampleCalldata: sampleCalldata,

		// Each direction's two candidate rebalance assets are the ones
		// that pile up on the wrong chain: selling on L2 and buying on
		// L1 leaves USDC stranded on L2 and WETH stranded on L1, and the
		// mirror direction strands the other pair.
		BridgeAssets: map[arbitrage.Direction][2]common.Address{
			arbitrage.SellL2BuyL1: {addr.L2USDC, addr.L1WETH},
			arbitrage.SellL1BuyL2: {addr.L1USDC, addr.L2WETH},
		},
	}, nil
}

func addressLess(a, b common.Address) bool {
	return bytes.Compare(a.Bytes(), b.Bytes()) < 0
}
