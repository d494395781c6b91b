// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersAllMetrics(t *testing.T) {
	require := require.New(t)
	reg := prometheus.NewRegistry()

	m, err := New(reg)
	require.NoError(err)
	require.NotNil(m)

	families, err := reg.Gather()
	require.NoError(err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(names, "statement_distribution_active_heads")
	require.Contains(names, "statement_distribution_connected_peers")
	require.Contains(names, "statement_distribution_statements_gossiped_total")
	require.Contains(names, "statement_distribution_statements_received_total")
	require.Contains(names, "statement_distribution_reputation_reports_total")
}

func TestNew_DuplicateRegistrationFails(t *testing.T) {
	require := require.New(t)
	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(err)

	_, err = New(reg)
	require.Error(err)
}

func TestReputationReports_LabeledByReason(t *testing.T) {
	require := require.New(t)
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(err)

	m.ReputationReports.WithLabelValues("duplicate statement").Inc()
	m.ReputationReports.WithLabelValues("duplicate statement").Inc()
	m.ReputationReports.WithLabelValues("invalid signature").Inc()

	require.Equal(float64(2), testutil.ToFloat64(m.ReputationReports.WithLabelValues("duplicate statement")))
	require.Equal(float64(1), testutil.ToFloat64(m.ReputationReports.WithLabelValues("invalid signature")))
}
