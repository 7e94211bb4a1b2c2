// Package ratelimit provides token-bucket rate limiting with per-endpoint
// rules.
package ratelimit

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Rule binds a bucket shape to a method and path prefix.
type Rule struct {
	Method     string  // empty matches any method
	PathPrefix string  // empty matches any path
	Capacity   int     // burst size
	RefillRate float64 // tokens per second
}

// Matches reports whether the rule applies to a request.
func (r Rule) Matches(path, method string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	return r.PathPrefix == "" || strings.HasPrefix(path, r.PathPrefix)
}

// DefaultRules limits the model-backed endpoints harder than the rest.
// Rules are evaluated in order; the first match wins.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "POST", PathPrefix: "/api/generate-email", Capacity: 5, RefillRate: 0.2},
		{Method: "POST", PathPrefix: "/api/summarize", Capacity: 10, RefillRate: 0.5},
		{Capacity: 60, RefillRate: 1},
	}
}

// Info describes the limiter state returned alongside each decision.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// bucket is a token bucket for one client under one rule.
type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// Limiter applies per-client token buckets keyed by matched rule.
type Limiter struct {
	rules   []Rule
	mu      sync.Mutex
	buckets map[string]*bucket
	done    chan struct{}
}

// idleEviction is how long an unused bucket survives before cleanup.
const idleEviction = 10 * time.Minute

// NewLimiter creates a Limiter and starts its cleanup goroutine.
func NewLimiter(rules []Rule) *Limiter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	l := &Limiter{
		rules:   rules,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	go l.janitor()
	return l
}

// Allow consumes a token for the client on the first matching rule.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	rule, ruleIdx := l.match(path, method)
	if rule == nil {
		return true, Info{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := fmt.Sprintf("%s|%d", clientID, ruleIdx)
	b, ok := l.buckets[key]
	now := time.Now()
	if !ok {
		b = &bucket{tokens: float64(rule.Capacity), lastRefill: now}
		l.buckets[key] = b
	}
	b.lastSeen = now

	// Refill for elapsed time, capped at capacity.
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = minFloat(float64(rule.Capacity), b.tokens+elapsed*rule.RefillRate)
	b.lastRefill = now

	info := Info{Limit: rule.Capacity}
	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		info.Remaining = int(b.tokens)
		info.ResetTime = resetAt(now, rule, b.tokens)
		return true, info
	}

	info.Remaining = 0
	info.ResetTime = resetAt(now, rule, b.tokens)
	if rule.RefillRate > 0 {
		info.RetryAfter = time.Duration((1.0 - b.tokens) / rule.RefillRate * float64(time.Second))
	}
	return false, info
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.done)
}

func (l *Limiter) match(path, method string) (*Rule, int) {
	for i := range l.rules {
		if l.rules[i].Matches(path, method) {
			return &l.rules[i], i
		}
	}
	return nil, -1
}

func (l *Limiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key, b := range l.buckets {
				if now.Sub(b.lastSeen) > idleEviction {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

func resetAt(now time.Time, rule *Rule, tokens float64) time.Time {
	if tokens >= float64(rule.Capacity) || rule.RefillRate <= 0 {
		return now
	}
	secondsUntilFull := (float64(rule.Capacity) - tokens) / rule.RefillRate
	return now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
