package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_Matches(t *testing.T) {
	rule := Rule{Method: "POST", PathPrefix: "/api/generate-email"}
	assert.True(t, rule.Matches("/api/generate-email", "POST"))
	assert.False(t, rule.Matches("/api/generate-email", "GET"))
	assert.False(t, rule.Matches("/api/summarize", "POST"))

	catchAll := Rule{}
	assert.True(t, catchAll.Matches("/anything", "GET"))
}

func TestAllow_ExhaustsBucket(t *testing.T) {
	l := NewLimiter([]Rule{{Capacity: 3, RefillRate: 0.001}})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("client-1", "/api/x", "GET")
		assert.True(t, allowed, "request %d", i)
		assert.Equal(t, 3, info.Limit)
	}

	allowed, info := l.Allow("client-1", "/api/x", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter.Seconds(), 0.0)
}

func TestAllow_ClientsIndependent(t *testing.T) {
	l := NewLimiter([]Rule{{Capacity: 1, RefillRate: 0.001}})
	defer l.Stop()

	allowed, _ := l.Allow("client-a", "/", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("client-a", "/", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("client-b", "/", "GET")
	assert.True(t, allowed)
}

func TestAllow_FirstMatchingRuleWins(t *testing.T) {
	l := NewLimiter([]Rule{
		{Method: "POST", PathPrefix: "/api/generate-email", Capacity: 1, RefillRate: 0.001},
		{Capacity: 100, RefillRate: 1},
	})
	defer l.Stop()

	// Exhaust the tight rule.
	allowed, _ := l.Allow("c", "/api/generate-email", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/api/generate-email", "POST")
	assert.False(t, allowed)

	// Other endpoints still use the catch-all bucket.
	allowed, info := l.Allow("c", "/health", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestAllow_RemainingDecreases(t *testing.T) {
	l := NewLimiter([]Rule{{Capacity: 5, RefillRate: 0.001}})
	defer l.Stop()

	_, info := l.Allow("c", "/", "GET")
	assert.Equal(t, 4, info.Remaining)
	_, info = l.Allow("c", "/", "GET")
	assert.Equal(t, 3, info.Remaining)
}

func TestDefaultRules_GenerateTightest(t *testing.T) {
	rules := DefaultRules()
	require.NotEmpty(t, rules)
	assert.Equal(t, "/api/generate-email", rules[0].PathPrefix)

	// The catch-all must come last or it would shadow the endpoint rules.
	last := rules[len(rules)-1]
	assert.Empty(t, last.Method)
	assert.Empty(t, last.PathPrefix)
}
