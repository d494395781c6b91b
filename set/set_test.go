// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package set

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_AddContainsRemove(t *testing.T) {
	require := require.New(t)
	s := NewSet[int](0)

	s.Add(1, 2, 3)
	require.True(s.Contains(1))
	require.Equal(3, s.Len())

	s.Remove(2)
	require.False(s.Contains(2))
	require.Equal(2, s.Len())
}

func TestSet_UnionDifference(t *testing.T) {
	require := require.New(t)
	a := Of(1, 2, 3)
	b := Of(3, 4)

	a.Union(b)
	require.Equal(4, a.Len())
	require.True(a.Contains(4))

	a.Difference(b)
	require.Equal(2, a.Len())
	require.False(a.Contains(3))
	require.False(a.Contains(4))
}

func TestSet_Clone(t *testing.T) {
	require := require.New(t)
	a := Of("x", "y")
	b := a.Clone()
	b.Add("z")

	require.Equal(2, a.Len())
	require.Equal(3, b.Len())
}

func TestSet_StringDeterministic(t *testing.T) {
	require := require.New(t)
	a := Of(3, 1, 2)
	b := Of(2, 3, 1)

	require.Equal(a.String(), b.String())
	require.Equal("{1, 2, 3}", a.String())
}
