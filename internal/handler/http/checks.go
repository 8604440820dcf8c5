package http

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"provider-directory/internal/resilience/circuitbreaker"
	"provider-directory/internal/usecase/search"
	"provider-directory/internal/usecase/settings"
)

// BreakerCheck reports a circuit breaker: closed is healthy, half-open is
// degraded and open is unhealthy.
func BreakerCheck(cb *circuitbreaker.CircuitBreaker) HealthCheck {
	return func(context.Context) CheckStatus {
		state := cb.State()
		counts := cb.Counts()
		details := map[string]any{
			"circuit":              cb.Name(),
			"state":                state.String(),
			"requests":             counts.Requests,
			"consecutive_failures": counts.ConsecutiveFailures,
		}
		switch state {
		case gobreaker.StateOpen:
			return CheckStatus{Status: StatusUnhealthy, Message: "circuit open", Details: details}
		case gobreaker.StateHalfOpen:
			return CheckStatus{Status: StatusDegraded, Message: "circuit half-open", Details: details}
		default:
			return CheckStatus{Status: StatusHealthy, Details: details}
		}
	}
}

// SettingsCheck reports the feature flag snapshot. A failed refresh is
// degraded since the last good snapshot or the defaults stay in use.
func SettingsCheck(svc *settings.Service) HealthCheck {
	return func(context.Context) CheckStatus {
		st := svc.Status()
		details := map[string]any{}
		if !st.RefreshedAt.IsZero() {
			details["refreshed_at"] = st.RefreshedAt.UTC().Format(time.RFC3339)
		}
		if st.LastError != nil {
			return CheckStatus{Status: StatusDegraded, Message: st.LastError.Error(), Details: details}
		}
		if st.RefreshedAt.IsZero() {
			return CheckStatus{Status: StatusDegraded, Message: "using default flags", Details: details}
		}
		return CheckStatus{Status: StatusHealthy, Details: details}
	}
}

// SessionsCheck reports the number of live search sessions.
func SessionsCheck(reg *search.Registry) HealthCheck {
	return func(context.Context) CheckStatus {
		return CheckStatus{Status: StatusHealthy, Details: map[string]any{"active": reg.Len()}}
	}
}
