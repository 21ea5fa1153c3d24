package sessions

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)

	token := s.Issue("jane@example.com")
	require.NotEmpty(t, token)

	assert.True(t, s.Validate("jane@example.com", token))
	assert.False(t, s.Validate("jane@example.com", "garbage"))
	assert.False(t, s.Validate("other@example.com", token))
}

func TestValidate_NoTokenIssued(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	assert.False(t, s.Validate("jane@example.com", "anything"))
}

func TestIssue_ReplacesPriorToken(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)

	first := s.Issue("jane@example.com")
	second := s.Issue("jane@example.com")
	require.NotEqual(t, first, second)

	assert.False(t, s.Validate("jane@example.com", first), "old token must stop validating")
	assert.True(t, s.Validate("jane@example.com", second))
}

func TestValidate_ExpiryIsLazy(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)

	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	token := s.Issue("jane@example.com")
	assert.True(t, s.Validate("jane@example.com", token))

	// one second before expiry
	current = current.Add(30*time.Minute - time.Second)
	assert.True(t, s.Validate("jane@example.com", token))

	// exactly at expiry
	current = current.Add(time.Second)
	assert.False(t, s.Validate("jane@example.com", token))
}

func TestIssue_TokensAreUnique(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token := s.Issue("jane@example.com")
		_, dup := seen[token]
		require.False(t, dup, "duplicate token issued")
		seen[token] = struct{}{}
	}
}

func TestConcurrentIssue_OneTokenSurvives(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	const n = 32
	tokens := make([]string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = s.Issue("jane@example.com")
		}(i)
	}
	wg.Wait()

	live := 0
	for _, token := range tokens {
		if s.Validate("jane@example.com", token) {
			live++
		}
	}
	require.Equal(t, 1, live, "exactly one of the racing tokens must stay live")
}

func TestConcurrentValidate(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	token := s.Issue("jane@example.com")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.True(t, s.Validate("jane@example.com", token))
			}
		}()
	}
	wg.Wait()
}
