/*
 * This file is part of research-engine.
 *
 * research-engine is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * research-engine is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with research-engine.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package pkg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricQueriesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "research_engine_queries_submitted_total",
		Help: "Research queries accepted for processing.",
	})
	metricQueriesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "research_engine_queries_completed_total",
		Help: "Research queries that reached the completed state.",
	})
	metricQueriesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "research_engine_queries_failed_total",
		Help: "Research queries that ended in the failed state.",
	})
	metricQueriesCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "research_engine_queries_cancelled_total",
		Help: "Research queries cancelled before completion.",
	})
	metricProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "research_engine_processing_duration_seconds",
		Help:    "Wall time from submission to completion.",
		Buckets: prometheus.DefBuckets,
	})
	metricConsentUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "research_engine_consent_updates_total",
		Help: "Accepted consent record updates.",
	})
	metricConsentConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "research_engine_consent_conflicts_total",
		Help: "Consent updates rejected on a version conflict.",
	})
)
