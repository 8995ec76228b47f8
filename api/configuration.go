package api

import (
	"time"

	"github.com/storefront/storefront-backend/infra"
)

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	FrontendUrl         string
	RequestLoggingLevel string
	DefaultTimeout      time.Duration
	EnablePrometheus    bool
	RateLimit           infra.RateLimitConfig
}

// maxBodySize caps every request body, the largest payload is a product description.
const maxBodySize = 1 << 20
