package site

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Bound on tracked clients.
const maxLimiterClients = 10000

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type loginLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	size    int
	clients map[string]*limiterEntry
}

func newLoginLimiter(perSecond float64, burst int) *loginLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &loginLimiter{
		limit:   limit,
		burst:   burst,
		size:    maxLimiterClients,
		clients: make(map[string]*limiterEntry),
	}
}

func (l *loginLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= l.size {
			l.evict(now)
		}
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

// evict drops clients whose bucket has refilled, since a fresh limiter
// would behave the same. If none has, the least recently seen goes.
func (l *loginLimiter) evict(now time.Time) {
	var (
		oldest     string
		oldestSeen time.Time
	)
	for k, e := range l.clients {
		if e.limiter.TokensAt(now) >= float64(l.burst) {
			delete(l.clients, k)
			continue
		}
		if oldest == "" || e.lastSeen.Before(oldestSeen) {
			oldest, oldestSeen = k, e.lastSeen
		}
	}
	if len(l.clients) >= l.size && oldest != "" {
		delete(l.clients, oldest)
	}
}
