// Package metrics defines and registers the custom Prometheus metrics of the
// academy API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry through promauto when the
// package is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "academy"

// ── Claims metrics ────────────────────────────────────────────────────────────

// ReconciliationsTotal counts role reconciliations.
// Label:
//   - result: "changed", "unchanged", "not_found" (no profile) or "error"
var ReconciliationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_reconciliations_total",
		Help:      "Total number of role reconciliations, labelled by result.",
	},
	[]string{"result"},
)

// SessionRevocationsTotal counts per-user session revocations.
// Label:
//   - result: "revoked" or "failed"
var SessionRevocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_revocations_total",
		Help:      "Total number of per-user session revocations, labelled by result.",
	},
	[]string{"result"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// PrivilegedOperationsTotal counts calls to privileged account operations.
// Labels:
//   - operation: e.g. "grant-owner-role", "toggle-owner-status"
//   - outcome: "ok" or the error kind ("permission_denied", "already_exists", …)
var PrivilegedOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "privileged_operations_total",
		Help:      "Total number of privileged account operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// OrphanedIdentitiesTotal counts identity accounts left without a profile
// because the document write after account creation failed.
var OrphanedIdentitiesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphaned_identities_total",
		Help:      "Identity accounts created whose profile write failed afterwards.",
	},
	[]string{"operation"},
)

// ── Routing metrics ───────────────────────────────────────────────────────────

// RouteDecisionsTotal counts page-guard outcomes.
// Label:
//   - decision: "allow", "redirect_login", "redirect_landing", "public"
var RouteDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_decisions_total",
		Help:      "Total number of page routing decisions, by decision.",
	},
	[]string{"decision"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each writer channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events by what happened to them.
// Label:
//   - result: "written", "failed" or "dropped" (queue closed)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, labelled by result.",
	},
	[]string{"result"},
)

// AuditWriteDuration measures how long a single audit append takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of one audit event append.",
		Buckets:   prometheus.DefBuckets,
	},
)
