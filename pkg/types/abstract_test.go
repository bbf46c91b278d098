package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentLookups(t *testing.T) {
	a := Assignment{Themes: []Theme{
		{ID: 1, Label: "A", Members: []int{10, 30}},
		{ID: 2, Label: "B", Members: []int{20}},
		{ID: 3, Label: "C"},
	}}

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []int{10, 30}, a.Members(1))
	assert.Empty(t, a.Members(3))
	assert.Nil(t, a.Members(4))

	theme, ok := a.ThemeOf(20)
	require.True(t, ok)
	assert.Equal(t, 2, theme)

	_, ok = a.ThemeOf(40)
	assert.False(t, ok)
}

func TestAbstractHasCandidate(t *testing.T) {
	a := Abstract{ID: 1, Candidates: []int{7, 9}}
	assert.True(t, a.HasCandidate(9))
	assert.False(t, a.HasCandidate(8))
}

func TestInputErrors(t *testing.T) {
	t.Run("invalid input names the abstract", func(t *testing.T) {
		var err error = &InvalidInputError{AbstractID: 42, Reason: "no candidate themes"}
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.False(t, errors.Is(err, ErrDataConsistency))
		assert.Equal(t, "invalid input: abstract 42: no candidate themes", err.Error())

		var target *InvalidInputError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 42, target.AbstractID)
	})

	t.Run("data consistency names line and abstract", func(t *testing.T) {
		var err error = &DataConsistencyError{AbstractID: 7, Line: 3, Reason: "pid does not match"}
		assert.True(t, errors.Is(err, ErrDataConsistency))
		assert.Equal(t, "inconsistent data: line 3: abstract 7: pid does not match", err.Error())
	})

	t.Run("line only", func(t *testing.T) {
		err := &InvalidInputError{Line: 5, Reason: "missing comma"}
		assert.Equal(t, "invalid input: line 5: missing comma", err.Error())
	})
}
