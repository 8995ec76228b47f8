package models

import "time"

type HealthCheckName string

const (
	HealthCheckDatabase      HealthCheckName = "database"
	HealthCheckCache         HealthCheckName = "cache"
	HealthCheckKnowledgeBase HealthCheckName = "knowledge_base"
)

type HealthCheck struct {
	Name    HealthCheckName
	Healthy bool
	Error   string
	Latency time.Duration
}

func NewHealthCheck(name HealthCheckName, started time.Time, err error) HealthCheck {
	check := HealthCheck{Name: name, Healthy: err == nil, Latency: time.Since(started)}
	if err != nil {
		check.Error = err.Error()
	}
	return check
}

type HealthStatus struct {
	Version string
	Checks  []HealthCheck
}

func (h HealthStatus) Healthy() bool {
	for _, c := range h.Checks {
		if !c.Healthy {
			return false
		}
	}
	return true
}
