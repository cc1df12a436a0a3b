package bonus

import (
	"math/rand"
	"sync"
	"time"

	"empire-builder/internal/pkg/clock"

	"golang.org/x/time/rate"
)

const (
	MinBonus    = 100
	bonusSpread = 500
	issuerBurst = 3
)

// Grant is the issuer's response body.
type Grant struct {
	Message   string `json:"message"`
	Bonus     int    `json:"bonus"`
	Timestamp int64  `json:"timestamp"`
}

// Issuer hands out random bonuses in [100, 600), rate limited per client key.
type Issuer struct {
	Clock clock.Clock
	// IntN defaults to math/rand/v2.IntN.
	IntN  func(n int) int
	every rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewIssuer allows a burst of three claims per key, refilling one per cooldown.
// A non-positive cooldown disables limiting.
func NewIssuer(clk clock.Clock, cooldown time.Duration) *Issuer {
	every := rate.Inf
	if cooldown > 0 {
		every = rate.Every(cooldown)
	}
	return &Issuer{Clock: clk, IntN: rand.Intn, every: every, limiters: make(map[string]*rate.Limiter)}
}

func (i *Issuer) limiter(key string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()
	l, ok := i.limiters[key]
	if !ok {
		l = rate.NewLimiter(i.every, issuerBurst)
		i.limiters[key] = l
	}
	return l
}

// Allow consumes one token for key.
func (i *Issuer) Allow(key string) bool {
	return i.limiter(key).AllowN(i.Clock.Now(), 1)
}

// Issue draws a new grant.
func (i *Issuer) Issue() Grant {
	return Grant{
		Message:   "Bonus claimed",
		Bonus:     MinBonus + i.IntN(bonusSpread),
		Timestamp: i.Clock.Now().UnixMilli(),
	}
}
