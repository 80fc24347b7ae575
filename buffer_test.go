// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pollPaths(t *testing.T, b *Buffer, n int) []string {
	t.Helper()
	var paths []string
	for range n {
		ev, state, err := b.Poll()
		require.NoError(t, err)
		require.Equal(t, Ready, state)
		paths = append(paths, ev.Paths...)
	}
	return paths
}

func requireState(t *testing.T, b *Buffer, want State) {
	t.Helper()
	_, state, err := b.Poll()
	require.NoError(t, err)
	require.Equal(t, want, state)
}

func TestBufferFIFO(t *testing.T) {
	b := NewBuffer()
	requireState(t, b, Pending)

	for _, p := range []string{"a", "b", "c"} {
		require.True(t, b.Push(Event{Paths: []string{p}}))
	}
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"a", "b"}, pollPaths(t, b, 2))

	b.Push(Event{Paths: []string{"d"}})
	assert.Equal(t, []string{"c", "d"}, pollPaths(t, b, 2))
	assert.Zero(t, b.Len())
	requireState(t, b, Pending)
}

func TestBufferClose(t *testing.T) {
	b := NewBuffer()
	b.Push(Event{Paths: []string{"a"}})
	b.Close()
	b.CloseWithError(ErrUpstreamOverflow)

	assert.True(t, b.Closed())
	assert.False(t, b.Push(Event{Paths: []string{"b"}}))
	assert.Equal(t, []string{"a"}, pollPaths(t, b, 1))
	for range 3 {
		requireState(t, b, Ended)
	}
}

func TestBufferCloseWithError(t *testing.T) {
	b := NewBuffer()
	b.Push(Event{Paths: []string{"a"}})
	b.Push(Event{Paths: []string{"b"}})
	b.CloseWithError(ErrUpstreamOverflow)
	b.CloseWithError(errors.New("ignored"))

	assert.Equal(t, []string{"a", "b"}, pollPaths(t, b, 2))
	_, state, err := b.Poll()
	assert.Equal(t, Failed, state)
	assert.Equal(t, ErrUpstreamOverflow, err)
	for range 3 {
		requireState(t, b, Ended)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Pending", Pending.String())
	assert.Equal(t, "Failed", Failed.String())
	assert.Equal(t, "State(9)", State(9).String())
	assert.Equal(t, "notify: upstream overflow", ErrUpstreamOverflow.Error())
	assert.True(t, errors.Is(ErrUpstreamOverflow, UpstreamOverflow))
}
