package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker"
)

var (
	// MaxNumOfFailingRequests is the number of requests that must have been
	// observed before the breaker considers tripping.
	MaxNumOfFailingRequests = 10
	// FailingRatio is the failure ratio at which the breaker opens.
	FailingRatio = 0.6
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout = 30 * time.Second
)

// NewCircuitBreaker is a factory function returning a *gobreaker.CircuitBreaker
// for the named remote endpoint. The breaker opens once the overall number of
// requests has reached a tweakable MaxNumOfFailingRequests cap and the failing
// ratio has met the FailingRatio, short-circuiting further calls until
// OpenTimeout elapses.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
	})
}
