package dto

import (
	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/pure_utils"
)

type APIHealthCheck struct {
	Name      string `json:"name"`
	Healthy   bool   `json:"healthy"`
	LatencyMs int64  `json:"latency_ms"`
}

type APIHealth struct {
	Version string           `json:"version"`
	Healthy bool             `json:"healthy"`
	Checks  []APIHealthCheck `json:"checks"`
}

func AdaptHealthDto(status models.HealthStatus) APIHealth {
	return APIHealth{
		Version: status.Version,
		Healthy: status.Healthy(),
		Checks: pure_utils.Map(status.Checks, func(check models.HealthCheck) APIHealthCheck {
			return APIHealthCheck{
				Name:      string(check.Name),
				Healthy:   check.Healthy,
				LatencyMs: check.Latency.Milliseconds(),
			}
		}),
	}
}
