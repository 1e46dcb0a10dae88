// Copyright 2024 The Bramble Authors
// This file is part of the bramble library.
//
// The bramble library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The bramble library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.

// Command bramblenode is the node's own start-up surface: it decodes
// a TOML configuration file, wires the peer map, block intake router,
// mempool, and selection engine together, and serves Prometheus
// metrics until signalled to stop. It does not implement the RPC
// transport (spec.md non-goal); no peers are actually dialed here, and
// no block ever actually flows through the router or selection engine
// without a transport and a leadership path driving them.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	"github.com/bramble-chain/bramble/chain"
	"github.com/bramble-chain/bramble/fragment"
	"github.com/bramble-chain/bramble/fragment/selection"
	"github.com/bramble-chain/bramble/intake"
	"github.com/bramble-chain/bramble/internal/config"
	"github.com/bramble-chain/bramble/internal/xlog"
	"github.com/bramble-chain/bramble/ledger"
	"github.com/bramble-chain/bramble/metrics"
	"github.com/bramble-chain/bramble/network/peermap"
	"github.com/bramble-chain/bramble/topology"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the node's TOML configuration file",
	}
	nodeIDFlag = &cli.StringFlag{
		Name:  "node-id",
		Usage: "this node's identifier, as 40 hex characters",
		Value: "0000000000000000000000000000000000000000",
	}
	metricsAddrFlag = &cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "address the Prometheus /metrics endpoint listens on",
		Value: "127.0.0.1:9100",
	}
)

func main() {
	app := &cli.App{
		Name:   "bramblenode",
		Usage:  "run a bramble peer-to-peer block-production node",
		Flags:  []cli.Flag{configFlag, nodeIDFlag, metricsAddrFlag},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "bramblenode:", err)
		os.Exit(1)
	}
}

// node bundles the wired components spec.md's core is built from,
// plus the Prometheus registry main.go exposes them through.
type node struct {
	log       xlog.Logger
	id        topology.NodeID
	peers     *peermap.Map
	pool      *fragment.Pool
	statusLog *fragment.StatusLog
	router    *intake.Router
	algorithm selection.Algorithm
	metrics   *metrics.Metrics
	registry  *prometheus.Registry
}

func newNode(cfg config.Config, id topology.NodeID, log xlog.Logger) *node {
	peers := peermap.New(log.New("component", "peermap"))
	memChain := chain.NewMemChain(ledger.NewSizeLimited(), ledger.Parameters{MaxBlockContentLen: 1 << 20})
	registry := prometheus.NewRegistry()

	return &node{
		log:       log,
		id:        id,
		peers:     peers,
		pool:      fragment.NewPool(),
		statusLog: fragment.NewStatusLog(),
		router:    intake.New(memChain, peers, nil, log.New("component", "intake")),
		algorithm: newSelectionAlgorithm(cfg),
		metrics:   metrics.NewRegistered(registry),
		registry:  registry,
	}
}

// newSelectionAlgorithm picks the selection.Algorithm named by
// cfg.Selection.Strategy, defaulting to OldestFirst for an empty or
// unrecognized value.
func newSelectionAlgorithm(cfg config.Config) selection.Algorithm {
	switch cfg.Selection.Strategy {
	case "highest-fee-first":
		return selection.NewHighestFeeFirst()
	default:
		return selection.NewOldestFirst()
	}
}

func run(c *cli.Context) error {
	if _, err := maxprocs.Set(); err != nil {
		fmt.Fprintln(os.Stderr, "bramblenode: automaxprocs:", err)
	}

	cfg := config.Default()
	if path := c.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	log := xlog.New(cfg.Log.Level(), os.Stderr, "component", "bramblenode")

	id, err := parseNodeID(c.String(nodeIDFlag.Name))
	if err != nil {
		return fmt.Errorf("bramblenode: node-id: %w", err)
	}

	n := newNode(cfg, id, log)
	n.log.Info("starting node",
		"id", n.id,
		"selection_strategy", cfg.Selection.Strategy,
		"max_per_block", cfg.Selection.MaxPerBlock,
	)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return n.serveMetrics(groupCtx, c.String(metricsAddrFlag.Name)) })
	group.Go(func() error { return waitForSignal(groupCtx) })

	return group.Wait()
}

func parseNodeID(s string) (topology.NodeID, error) {
	var id topology.NodeID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(raw) != len(id) {
		return id, fmt.Errorf("want %d bytes, got %d", len(id), len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// serveMetrics runs the /metrics HTTP endpoint and periodically
// refreshes the node's gauges, until ctx is cancelled.
func (n *node) serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(n.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bramblenode: metrics listener: %w", err)
	}
	n.log.Info("metrics listening", "addr", ln.Addr())

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-groupCtx.Done():
				return nil
			case <-ticker.C:
				n.metrics.Sample(n.peers, n.pool, n.statusLog)
			}
		}
	})
	group.Go(func() error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Serve(ln) }()
		select {
		case <-groupCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		}
	})
	return group.Wait()
}

func waitForSignal(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		return nil
	case <-sigCh:
		return nil
	}
}
