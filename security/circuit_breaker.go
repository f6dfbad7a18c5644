package security

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/kaito2/panopticon/types"
)

// CircuitBreakerState is the operating state of an agent's circuit breaker.
type CircuitBreakerState int

const (
	StateClosed CircuitBreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StateHalfOpen:
		return "HalfOpen"
	default:
		return "Unknown"
	}
}

// CircuitBreaker tracks an individual agent's recent failure history and
// decides whether it may continue executing tasks.
type CircuitBreaker struct {
	State                CircuitBreakerState
	FailureCount         uint32
	Threshold            uint32
	LastFailureAt        *time.Time
	CooldownSecs         int64
	ReputationThreshold  float64
}

func NewCircuitBreaker(threshold uint32, cooldownSecs int64, reputationThreshold float64) *CircuitBreaker {
	return &CircuitBreaker{
		State:               StateClosed,
		Threshold:           threshold,
		CooldownSecs:        cooldownSecs,
		ReputationThreshold: reputationThreshold,
	}
}

// RecordFailure records a failure, tripping the breaker open once the
// failure count reaches Threshold.
func (cb *CircuitBreaker) RecordFailure() {
	cb.FailureCount++
	now := time.Now().UTC()
	cb.LastFailureAt = &now
	if cb.FailureCount >= cb.Threshold {
		cb.State = StateOpen
	}
}

// CheckCooldown transitions Open to HalfOpen once CooldownSecs have
// elapsed since the last failure.
func (cb *CircuitBreaker) CheckCooldown() {
	if cb.State != StateOpen {
		return
	}
	if cb.LastFailureAt == nil {
		return
	}
	elapsed := time.Since(*cb.LastFailureAt)
	if int64(elapsed/time.Second) >= cb.CooldownSecs {
		cb.State = StateHalfOpen
	}
}

// RecordSuccess records a successful task. In HalfOpen it closes the
// breaker and resets the failure count; in Closed it decays the failure
// count; in Open it is a no-op.
func (cb *CircuitBreaker) RecordSuccess() {
	switch cb.State {
	case StateHalfOpen:
		cb.State = StateClosed
		cb.FailureCount = 0
		cb.LastFailureAt = nil
	case StateClosed:
		if cb.FailureCount > 0 {
			cb.FailureCount--
		}
	case StateOpen:
	}
}

// CheckReputation trips the breaker open if the reputation's composite
// score falls below ReputationThreshold.
func (cb *CircuitBreaker) CheckReputation(reputation types.ReputationScore) {
	if reputation.Composite() < cb.ReputationThreshold {
		cb.State = StateOpen
		now := time.Now().UTC()
		cb.LastFailureAt = &now
	}
}

// IsAllowed reports whether the agent may proceed.
func (cb *CircuitBreaker) IsAllowed() bool {
	return cb.State == StateClosed || cb.State == StateHalfOpen
}

// CircuitBreakerRegistry owns a circuit breaker per agent, backed by a
// thread-safe in-memory cache.
type CircuitBreakerRegistry struct {
	breakers                  *gocache.Cache
	defaultThreshold           uint32
	defaultCooldownSecs        int64
	defaultReputationThreshold float64
}

func NewCircuitBreakerRegistry(defaultThreshold uint32, defaultCooldownSecs int64, defaultReputationThreshold float64) *CircuitBreakerRegistry {
	return &CircuitBreakerRegistry{
		breakers:                   gocache.New(gocache.NoExpiration, gocache.NoExpiration),
		defaultThreshold:           defaultThreshold,
		defaultCooldownSecs:        defaultCooldownSecs,
		defaultReputationThreshold: defaultReputationThreshold,
	}
}

func (r *CircuitBreakerRegistry) newDefault() *CircuitBreaker {
	return NewCircuitBreaker(r.defaultThreshold, r.defaultCooldownSecs, r.defaultReputationThreshold)
}

// GetOrCreate returns the agent's circuit breaker, creating a default one
// if none exists yet.
func (r *CircuitBreakerRegistry) GetOrCreate(agentID uuid.UUID) *CircuitBreaker {
	key := agentID.String()
	if v, ok := r.breakers.Get(key); ok {
		return v.(*CircuitBreaker)
	}
	cb := r.newDefault()
	r.breakers.Set(key, cb, gocache.NoExpiration)
	return cb
}

// RecordFailure records a failure for an agent, returning the new state
// if the breaker transitioned Closed/HalfOpen -> Open as a result.
func (r *CircuitBreakerRegistry) RecordFailure(agentID uuid.UUID) *CircuitBreakerState {
	cb := r.GetOrCreate(agentID)
	wasOpen := cb.State == StateOpen
	cb.RecordFailure()
	if !wasOpen && cb.State == StateOpen {
		state := StateOpen
		return &state
	}
	return nil
}

// RecordSuccess records a success for an agent, if a breaker exists.
func (r *CircuitBreakerRegistry) RecordSuccess(agentID uuid.UUID) {
	if v, ok := r.breakers.Get(agentID.String()); ok {
		v.(*CircuitBreaker).RecordSuccess()
	}
}

// CheckReputation checks an agent's reputation and trips the breaker if
// needed, returning the permissions that should be revoked if it trips.
func (r *CircuitBreakerRegistry) CheckReputation(agentID uuid.UUID, reputation types.ReputationScore, permissions types.PermissionSet) *types.PermissionSet {
	cb := r.GetOrCreate(agentID)
	wasOpen := cb.State == StateOpen
	cb.CheckReputation(reputation)
	if !wasOpen && cb.State == StateOpen {
		revoked := permissions
		return &revoked
	}
	return nil
}

// CheckAgent reports whether an agent is currently allowed to proceed,
// applying any pending cooldown transition first.
func (r *CircuitBreakerRegistry) CheckAgent(agentID uuid.UUID) error {
	v, ok := r.breakers.Get(agentID.String())
	if !ok {
		return nil
	}
	cb := v.(*CircuitBreaker)
	cb.CheckCooldown()
	if !cb.IsAllowed() {
		return types.NewCircuitBreakerOpen(agentID)
	}
	return nil
}
