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

// Package metrics exposes the node's Prometheus gauges: connected
// peer count, mempool size, and per-status fragment counts. The
// teacher's own node binaries are well known to expose exactly this
// kind of surface; here it is promoted from an indirect go.mod
// dependency to a concretely wired one.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bramble-chain/bramble/fragment"
	"github.com/bramble-chain/bramble/network/peermap"
)

// Metrics groups the gauges this node updates as it runs. The zero
// value is not usable; construct with NewRegistered.
type Metrics struct {
	ConnectedPeers    prometheus.Gauge
	MempoolSize       prometheus.Gauge
	FragmentsPending  prometheus.Gauge
	FragmentsInBlock  prometheus.Gauge
	FragmentsRejected prometheus.Gauge
}

// NewRegistered constructs a Metrics and registers every gauge on
// reg.
func NewRegistered(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ConnectedPeers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bramble",
			Subsystem: "p2p",
			Name:      "connected_peers",
			Help:      "Number of peers currently registered in the peer map.",
		}),
		MempoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bramble",
			Subsystem: "mempool",
			Name:      "pool_size",
			Help:      "Number of fragments currently resident in the mempool.",
		}),
		FragmentsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bramble",
			Subsystem: "mempool",
			Name:      "fragments_pending",
			Help:      "Number of fragments with Pending status in the status log.",
		}),
		FragmentsInBlock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bramble",
			Subsystem: "mempool",
			Name:      "fragments_in_block",
			Help:      "Number of fragments with InABlock status in the status log.",
		}),
		FragmentsRejected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bramble",
			Subsystem: "mempool",
			Name:      "fragments_rejected",
			Help:      "Number of fragments with Rejected status in the status log.",
		}),
	}
	reg.MustRegister(
		m.ConnectedPeers,
		m.MempoolSize,
		m.FragmentsPending,
		m.FragmentsInBlock,
		m.FragmentsRejected,
	)
	return m
}

// Sample refreshes every gauge from the current state of peers, pool,
// and log. Callers typically invoke this on a timer from main.go.
func (m *Metrics) Sample(peers *peermap.Map, pool *fragment.Pool, log *fragment.StatusLog) {
	m.ConnectedPeers.Set(float64(peers.Len()))
	m.MempoolSize.Set(float64(pool.Len()))
	pending, inABlock, rejected := log.Counts()
	m.FragmentsPending.Set(float64(pending))
	m.FragmentsInBlock.Set(float64(inABlock))
	m.FragmentsRejected.Set(float64(rejected))
}
