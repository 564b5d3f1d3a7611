// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	count1 := Counter("count1")
	countVec := CounterVec("countVec1", []string{"zeroOrOne"})
	hist := Histogram("hist1", nil)
	gauge1 := Gauge("gauge1")

	count1.Add(1)
	randCount2 := rand.N(100) + 1
	for range randCount2 {
		Counter("count2").Add(1)
	}

	histTotal := 0
	for i := range rand.N(100) + 2 {
		hist.Observe(int64(i))
		histTotal += i
	}

	totalCountVec := 0
	for i := range rand.N(100) + 2 {
		countVec.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		totalCountVec += i
	}

	gauge1.Set(10)
	gauge1.Add(5)

	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	metrics := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		metrics[mf.GetName()] = mf
	}

	require.Equal(t, float64(1), metrics["rewardpool_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(randCount2), metrics["rewardpool_count2"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(histTotal), metrics["rewardpool_hist1"].Metric[0].GetHistogram().GetSampleSum())
	require.Equal(t, float64(15), metrics["rewardpool_gauge1"].Metric[0].GetGauge().GetValue())

	sumCountVec := float64(0)
	for _, m := range metrics["rewardpool_countVec1"].Metric {
		sumCountVec += m.GetCounter().GetValue()
	}
	require.Equal(t, float64(totalCountVec), sumCountVec)

	require.NotNil(t, HTTPHandler())
}
