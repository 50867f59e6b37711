// Package metrics defines all custom Prometheus metrics for the events API.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "events_api"

// RegistrationsTotal counts participant list mutations.
// Label:
//   - action: "join" or "leave"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful event registrations and unregistrations.",
	},
	[]string{"action"},
)

// RegistrationRejectionsTotal counts join attempts refused by the
// registration rules.
// Label:
//   - reason: "full" or "duplicate"
var RegistrationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_rejections_total",
		Help:      "Total number of join attempts rejected by capacity or duplicate checks.",
	},
	[]string{"reason"},
)

// EventsCreatedTotal counts newly created events.
var EventsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created.",
	},
)

// UsersRegisteredTotal counts successful account signups.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// RoleChangesTotal counts persisted role changes (no-op assignments are not
// counted).
// Label:
//   - new_role: the role that was assigned
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of role changes applied by admins.",
	},
	[]string{"new_role"},
)
