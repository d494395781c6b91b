// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics registers the prometheus gauges and counters the gossip
// and ingress components report through, following the registration
// pattern in engine/chain/poll/set.go.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	errFailedActiveHeadsMetric   = errors.New("failed to register active_heads metric")
	errFailedConnectedPeers      = errors.New("failed to register connected_peers metric")
	errFailedStatementsGossiped  = errors.New("failed to register statements_gossiped metric")
	errFailedStatementsReceived  = errors.New("failed to register statements_received metric")
	errFailedReputationReports   = errors.New("failed to register reputation_reports metric")
)

// Metrics holds the subsystem's prometheus instrumentation.
type Metrics struct {
	ActiveHeads        prometheus.Gauge
	ConnectedPeers     prometheus.Gauge
	StatementsGossiped prometheus.Counter
	StatementsReceived prometheus.Counter
	ReputationReports  *prometheus.CounterVec
}

// New registers and returns the subsystem's metrics against reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	activeHeads := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "statement_distribution_active_heads",
		Help: "Number of relay parents currently tracked",
	})
	if err := reg.Register(activeHeads); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedActiveHeadsMetric, err)
	}

	connectedPeers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "statement_distribution_connected_peers",
		Help: "Number of peers currently connected",
	})
	if err := reg.Register(connectedPeers); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedConnectedPeers, err)
	}

	statementsGossiped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "statement_distribution_statements_gossiped_total",
		Help: "Number of statements circulated to at least one peer",
	})
	if err := reg.Register(statementsGossiped); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedStatementsGossiped, err)
	}

	statementsReceived := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "statement_distribution_statements_received_total",
		Help: "Number of inbound statements accepted from peers",
	})
	if err := reg.Register(statementsReceived); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedStatementsReceived, err)
	}

	reputationReports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_distribution_reputation_reports_total",
		Help: "Number of reputation reports issued, by reason",
	}, []string{"reason"})
	if err := reg.Register(reputationReports); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedReputationReports, err)
	}

	return &Metrics{
		ActiveHeads:        activeHeads,
		ConnectedPeers:     connectedPeers,
		StatementsGossiped: statementsGossiped,
		StatementsReceived: statementsReceived,
		ReputationReports:  reputationReports,
	}, nil
}
