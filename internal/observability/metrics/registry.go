package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistryUsersAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registry_users_added_total",
			Help: "Total number of users added to the registry",
		},
	)

	RegistryUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_users",
			Help: "Number of users currently held by the registry",
		},
	)

	RegistryLoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	RegistryDeletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_deletes_total",
			Help: "Total number of delete requests by result",
		},
		[]string{"result"},
	)
)
