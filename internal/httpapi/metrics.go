package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lastNetProfitUSD = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arb_last_net_profit_usd",
		Help: "Net profit in USD reported by the most recent analysis or optimization request.",
	})
	lastOptimalSizeETH = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arb_last_optimal_size_eth",
		Help: "Optimal trade size in ETH found by the most recent /optimize request.",
	})
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arb_requests_total",
		Help: "Total HTTP requests served, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
)
