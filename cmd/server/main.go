package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ensowner/internal/chain"
	"ensowner/internal/owner"
	"ensowner/internal/platform/config"
	"ensowner/internal/platform/httpserver"
	"ensowner/internal/platform/logger"
	"ensowner/internal/resolve"
	"ensowner/internal/resolve/handler"
	resolvemetrics "ensowner/internal/resolve/metrics"
	"ensowner/internal/subgraph"
	"ensowner/pkg/platform/middleware/requestid"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		log.Error("dialing rpc endpoint", "url", cfg.RPCURL, "error", err)
		os.Exit(1)
	}
	defer client.Close()

	reader, err := chain.NewEthReader(client, cfg.Registry, cfg.Wrapper, cfg.Registrar)
	if err != nil {
		log.Error("building chain reader", "error", err)
		os.Exit(1)
	}

	injector := &resolve.Switch{}
	if cfg.ForceError != "" {
		injector.Set(owner.Kind(cfg.ForceError))
		log.Warn("error injection enabled", "kind", cfg.ForceError)
	}

	opts := []resolve.Option{
		resolve.WithLogger(log),
		resolve.WithMetrics(resolvemetrics.New()),
		resolve.WithInjector(injector),
	}
	if cfg.SubgraphURL != "" {
		opts = append(opts, resolve.WithIndex(subgraph.NewGraphClient(cfg.SubgraphURL, http.DefaultClient)))
	}
	if cfg.RegistrarGrace != 0 {
		opts = append(opts, resolve.WithRegistrarGrace(cfg.RegistrarGrace))
	}

	service, err := resolve.New(reader, cfg.Wrapper, opts...)
	if err != nil {
		log.Error("building resolver", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(requestid.RequestID)
	router.Handle("/metrics", promhttp.Handler())
	handler.New(service, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting ensowner", "addr", cfg.Addr, "rpc", cfg.RPCURL, "index", cfg.SubgraphURL != "")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
