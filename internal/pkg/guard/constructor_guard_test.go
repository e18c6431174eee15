package guard_test

import (
	"errors"
	"sync"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("store must be created via NewStore")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_supplied_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(errNotConstructed)

		// Then
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInEntity(t *testing.T) {
	type agent struct {
		name  string
		guard guard.ConstructorGuard
	}
	errAgentNotConstructed := errors.New("agent must be created via newAgent")

	newAgent := func(name string) (*agent, error) {
		if name == "" {
			return nil, errors.New("name is required")
		}
		return &agent{name: name, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_entity_passes", func(t *testing.T) {
		a, err := newAgent("Tunde")
		require.NoError(t, err)
		require.NoError(t, a.guard.Validate(errAgentNotConstructed))
	})

	t.Run("literal_entity_fails", func(t *testing.T) {
		a := &agent{name: "Tunde"}
		assert.Equal(t, errAgentNotConstructed, a.guard.Validate(errAgentNotConstructed))
	})

	t.Run("copy_keeps_state", func(t *testing.T) {
		a, err := newAgent("Tunde")
		require.NoError(t, err)
		c := *a
		require.NoError(t, c.guard.Validate(errAgentNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				assert.NoError(t, g.Validate(errNotConstructed))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
