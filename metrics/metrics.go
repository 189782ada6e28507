// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wires the ledger core's observable counters into
// Prometheus, grounded on vms/platformvm/metrics/metrics.go's pattern of a
// Metrics struct registered against a caller-supplied Registerer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zorachain/ledger/utils/wrappers"
)

// Metrics holds the gauges and counters the ledger core's LedgerState
// updates as it runs.
type Metrics struct {
	Height          prometheus.Gauge
	PendingTxns     prometheus.Gauge
	CommittedTxns   prometheus.Counter
	RejectedTxns    prometheus.Counter
	BlocksFinalized prometheus.Counter
}

// New builds a Metrics instance and registers it against reg. namespace is
// typically "zorachain".
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "height",
			Help:      "last committed block height",
		}),
		PendingTxns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_txns",
			Help:      "number of transactions buffered in the open block",
		}),
		CommittedTxns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "committed_txns_total",
			Help:      "total number of transactions committed",
		}),
		RejectedTxns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_txns_total",
			Help:      "total number of transactions rejected during apply",
		}),
		BlocksFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_finalized_total",
			Help:      "total number of blocks finalized",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		reg.Register(m.Height),
		reg.Register(m.PendingTxns),
		reg.Register(m.CommittedTxns),
		reg.Register(m.RejectedTxns),
		reg.Register(m.BlocksFinalized),
	)
	if errs.Errored() {
		return nil, errs.Err
	}
	return m, nil
}
