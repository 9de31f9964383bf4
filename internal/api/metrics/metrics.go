// Package metrics defines the custom Prometheus metrics for the Team Hub
// announcements API. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the default
// registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "teamhub"

// SignupsTotal counts successfully created accounts.
// Label:
//   - role: the role the account was created with ("admin" or "user")
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// SigninsTotal counts signin attempts.
// Label:
//   - result: "success" or "failure"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// AnnouncementOpsTotal counts successful announcement mutations.
// Label:
//   - action: "create", "update", or "delete"
var AnnouncementOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "announcement_ops_total",
		Help:      "Total number of successful announcement operations, by action.",
	},
	[]string{"action"},
)

// RoleUpdatesTotal counts admin role changes.
// Label:
//   - role: the role assigned to the target user
var RoleUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_updates_total",
		Help:      "Total number of user role updates, by assigned role.",
	},
	[]string{"role"},
)
