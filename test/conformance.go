// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JekaMas/notify/v2"
)

// Conformance runs the scenarios every notify.Backend is expected to pass
// against backends created with d.
func Conformance(t *testing.T, d notify.Descriptor) {
	t.Run("Descriptor", func(t *testing.T) {
		assert.NotEmpty(t, d.Name)
		assert.NotZero(t, d.Capabilities(), "an inoperable backend should not be tested")
		assert.Equal(t, notify.ContractVersion, d.Version)
		if r, ok := notify.Lookup(d.Name); ok {
			assert.Equal(t, d.Name, r.Name)
		}
	})
	t.Run("Identity", func(t *testing.T) {
		b := B(t, d).Backend
		assert.Equal(t, d.Name, b.Name())
		assert.Equal(t, d.Capabilities(), b.Capabilities())
		assert.NotNil(t, b.Driver())
	})
	t.Run("NonExistent", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing")
		b, err := d.New([]string{missing})
		require.Error(t, err)
		assert.Nil(t, b)

		var w *notify.ErrorWrap
		require.True(t, errors.As(err, &w), "want *notify.ErrorWrap, got %T", err)
		require.NotEmpty(t, w.Errors())
		assert.Equal(t, notify.NonExistent, w.Errors()[0].Kind)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
	t.Run("Idle", func(t *testing.T) {
		b := B(t, d).Backend
		_, state, err := b.Poll()
		require.NoError(t, err)
		assert.Equal(t, notify.Pending, state)
	})
	t.Run("Create", func(t *testing.T) {
		f := B(t, d)
		f.Do(notify.ClassCreate, "file")
		ev := f.Next(notify.EventKind.IsCreate)
		assert.Equal(t, d.Name, ev.Source)
		assert.NotEmpty(t, ev.Paths)
		assert.Equal(t, "file", filepath.Base(ev.Paths[0]))
	})
	t.Run("Related", func(t *testing.T) {
		f := B(t, d)
		f.Do(notify.ClassCreate, "file")
		f.Next(notify.EventKind.IsCreate)
		f.Do(notify.ClassModify, "file")
		f.Do(notify.ClassRemove, "file")

		evs := Next(t, f.Backend, func(ev notify.Event) bool { return ev.Kind.IsRemove() })
		require.NotEmpty(t, evs)
		if f.Backend.Capabilities().Has(notify.TrackRelated) {
			return
		}
		for _, ev := range evs {
			assert.False(t, ev.RelID.Valid, "%v without TrackRelated", ev)
		}
	})
	t.Run("Close", func(t *testing.T) {
		f := B(t, d)
		require.NoError(t, f.Backend.Close())
		_, err := f.Drain()
		require.NoError(t, err)
		for range 3 {
			_, state, err := f.Backend.Poll()
			require.NoError(t, err)
			require.Equal(t, notify.Ended, state)
		}
		require.NoError(t, f.Backend.Close())
		ev, state, err := f.Backend.Poll()
		require.NoError(t, err)
		assert.Equal(t, notify.Ended, state)
		assert.True(t, ev.Equal(notify.Event{}))
	})
}
