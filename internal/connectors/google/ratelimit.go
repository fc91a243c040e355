package google

import (
	"context"

	"golang.org/x/time/rate"
)

// ServiceType identifies a Google API service for pacing and endpoint overrides.
type ServiceType string

const (
	ServiceDrive     ServiceType = "drive"
	ServiceSheets    ServiceType = "sheets"
	ServiceSlides    ServiceType = "slides"
	ServiceChat      ServiceType = "chat"
	ServiceForms     ServiceType = "forms"
	ServiceDirectory ServiceType = "admin.directory"
	ServiceReports   ServiceType = "admin.reports"
	ServiceReseller  ServiceType = "admin.reseller"
	ServiceCalendar  ServiceType = "calendar"
	ServiceGmail     ServiceType = "gmail"
	ServicePeople    ServiceType = "people"
	ServiceClassroom ServiceType = "classroom"
	ServiceTasks     ServiceType = "tasks"
	ServiceDocs      ServiceType = "docs"
	ServiceScript    ServiceType = "script"
	ServiceMeet      ServiceType = "meet"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each Google service.
// These are well below Google's actual limits to avoid hitting quotas.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceGmail:    {RequestsPerSecond: 2.0, BurstSize: 5},  // Conservative for quota units
	ServiceDrive:    {RequestsPerSecond: 8.0, BurstSize: 10}, // Google allows 10/sec/user
	ServiceCalendar: {RequestsPerSecond: 5.0, BurstSize: 10},
	ServiceSheets:   {RequestsPerSecond: 1.0, BurstSize: 5}, // 60 reads/min/user
	ServiceChat:     {RequestsPerSecond: 1.0, BurstSize: 3},
	ServiceReports:  {RequestsPerSecond: 2.0, BurstSize: 5},
}

// RateLimiter paces requests made by pagination loops. It never retries:
// a 429 from the API is returned to the caller as-is.
type RateLimiter struct {
	limiter *rate.Limiter
	service ServiceType
}

// NewRateLimiter creates a new rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		service: service,
	}
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Unlimited returns a limiter that never blocks.
func Unlimited() *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// A nil limiter never blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	if r == nil {
		return true
	}
	return r.limiter.Allow()
}

// Service returns the service this limiter paces.
func (r *RateLimiter) Service() ServiceType {
	return r.service
}
