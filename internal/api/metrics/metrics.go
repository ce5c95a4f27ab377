// Package metrics defines and registers all custom Prometheus metrics for the
// events API. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "events"

// RegistrationsTotal counts accounts created through the self-hosted flow.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// OTPVerificationsTotal counts one-time-code redemptions.
// Labels:
//   - flow: "registration" or "password_reset"
//   - result: "success" or "failure"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of one-time-code redemption attempts.",
	},
	[]string{"flow", "result"},
)

// LoginsTotal counts password login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "not_verified"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// FederatedAuthTotal counts federated token verifications.
// Label:
//   - result: "resolved" (known identity), "provisioned" (first sight) or "rejected"
var FederatedAuthTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "federated_auth_total",
		Help:      "Total number of federated token verifications, by result.",
	},
	[]string{"result"},
)

// EmailsTotal counts notification outcomes.
// Label:
//   - result: "sent", "error" or "dropped" (queue full)
var EmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_total",
		Help:      "Total number of notification emails, by delivery result.",
	},
	[]string{"result"},
)
