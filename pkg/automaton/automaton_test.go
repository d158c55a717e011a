package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/automaton"
)

func TestAddState(t *testing.T) {
	t.Run("Allocates Dense Ids From Zero", func(t *testing.T) {
		a := automaton.New([]rune("AB"))
		assert.Equal(t, 0, a.NumStates())

		s0, err := a.AddState(false, true)
		require.NoError(t, err)
		assert.Equal(t, automaton.State(0), s0)

		s1, err := a.AddState(true, false)
		require.NoError(t, err)
		assert.Equal(t, automaton.State(1), s1)
		assert.Equal(t, 2, a.NumStates())
	})

	t.Run("Tracks Initial State", func(t *testing.T) {
		a := automaton.New([]rune("AB"))
		_, ok := a.InitialState()
		assert.False(t, ok)

		_, err := a.AddState(false, true)
		require.NoError(t, err)

		initial, ok := a.InitialState()
		assert.True(t, ok)
		assert.Equal(t, automaton.State(0), initial)
	})

	t.Run("Rejects Second Initial State", func(t *testing.T) {
		a := automaton.New([]rune("AB"))
		_, err := a.AddState(false, true)
		require.NoError(t, err)

		_, err = a.AddState(false, true)
		assert.ErrorIs(t, err, automaton.ErrDuplicateInitialState)
	})

	t.Run("Marks Accepting States", func(t *testing.T) {
		a := automaton.New([]rune("AB"))
		_, err := a.AddState(false, true)
		require.NoError(t, err)
		s1, err := a.AddState(true, false)
		require.NoError(t, err)

		accepting, err := a.IsAccepting(s1)
		require.NoError(t, err)
		assert.True(t, accepting)

		accepting, err = a.IsAccepting(0)
		require.NoError(t, err)
		assert.False(t, accepting)
	})
}

func TestAddTransition(t *testing.T) {
	newChain := func(t *testing.T) *automaton.Automaton {
		t.Helper()
		a := automaton.New([]rune("AB"))
		_, err := a.AddState(false, true)
		require.NoError(t, err)
		_, err = a.AddState(true, false)
		require.NoError(t, err)
		return a
	}

	t.Run("Stores Target And Kind", func(t *testing.T) {
		a := newChain(t)
		require.NoError(t, a.AddTransition(0, 'A', 1, automaton.Success))

		to, ok := a.Transition(0, 'A')
		assert.True(t, ok)
		assert.Equal(t, automaton.State(1), to)

		kind, ok := a.TransitionKind(0, 'A')
		assert.True(t, ok)
		assert.Equal(t, automaton.Success, kind)

		assert.True(t, a.HasTransition(0, 'A'))
		assert.False(t, a.HasTransition(0, 'B'))
	})

	t.Run("Absent Transition Is Not An Error", func(t *testing.T) {
		a := newChain(t)
		_, ok := a.Transition(0, 'B')
		assert.False(t, ok)
		_, ok = a.Transition(5, 'A')
		assert.False(t, ok)
	})

	t.Run("Rejects Transition Without States", func(t *testing.T) {
		a := automaton.New([]rune("AB"))
		err := a.AddTransition(0, 'A', 0, automaton.Success)
		assert.ErrorIs(t, err, automaton.ErrInvalidState)
	})

	t.Run("Rejects Out Of Range States", func(t *testing.T) {
		a := newChain(t)
		assert.ErrorIs(t, a.AddTransition(2, 'A', 0, automaton.Success), automaton.ErrInvalidState)
		assert.ErrorIs(t, a.AddTransition(0, 'A', 2, automaton.Success), automaton.ErrInvalidState)
		assert.ErrorIs(t, a.AddTransition(-1, 'A', 0, automaton.Success), automaton.ErrInvalidState)
	})

	t.Run("Rejects Symbol Outside Alphabet", func(t *testing.T) {
		a := newChain(t)
		err := a.AddTransition(0, 'X', 1, automaton.Success)
		assert.ErrorIs(t, err, automaton.ErrInvalidSymbol)
	})

	t.Run("Rejects Duplicate Transition", func(t *testing.T) {
		a := newChain(t)
		require.NoError(t, a.AddTransition(0, 'A', 1, automaton.Success))

		err := a.AddTransition(0, 'A', 0, automaton.Failure)
		assert.ErrorIs(t, err, automaton.ErrDuplicateTransition)

		// The original edge survives.
		to, ok := a.Transition(0, 'A')
		assert.True(t, ok)
		assert.Equal(t, automaton.State(1), to)
	})
}

func TestIsAccepting_OutOfRange(t *testing.T) {
	a := automaton.New([]rune("A"))
	_, err := a.IsAccepting(0)
	assert.ErrorIs(t, err, automaton.ErrInvalidState)

	_, err = a.AddState(false, true)
	require.NoError(t, err)

	_, err = a.IsAccepting(1)
	assert.ErrorIs(t, err, automaton.ErrInvalidState)
	_, err = a.IsAccepting(-1)
	assert.ErrorIs(t, err, automaton.ErrInvalidState)
}

func TestSetAccepting(t *testing.T) {
	a := automaton.New([]rune("A"))
	_, err := a.AddState(false, true)
	require.NoError(t, err)

	require.NoError(t, a.SetAccepting(0, true))
	accepting, err := a.IsAccepting(0)
	require.NoError(t, err)
	assert.True(t, accepting)

	require.NoError(t, a.SetAccepting(0, false))
	accepting, err = a.IsAccepting(0)
	require.NoError(t, err)
	assert.False(t, accepting)

	assert.ErrorIs(t, a.SetAccepting(3, true), automaton.ErrInvalidState)
}

func TestAlphabet(t *testing.T) {
	a := automaton.New([]rune("BACA"))
	assert.Equal(t, []rune("ABC"), a.Alphabet())
	assert.True(t, a.InAlphabet('B'))
	assert.False(t, a.InAlphabet('Z'))
}
