// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package inotify_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JekaMas/notify/v2"
	"github.com/JekaMas/notify/v2/inotify"
	"github.com/JekaMas/notify/v2/test"
)

func descriptor(t *testing.T) notify.Descriptor {
	d, ok := notify.Lookup(inotify.Name)
	require.True(t, ok, "inotify backend is not registered")
	return d
}

func TestConformance(t *testing.T) {
	test.Conformance(t, descriptor(t))
}

func TestCapabilities(t *testing.T) {
	d := descriptor(t)
	b, err := inotify.New([]string{t.TempDir()})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, d.Capabilities(), b.Capabilities())
	for _, c := range []notify.Capability{
		notify.EmitOnAccess, notify.FollowSymlinks, notify.TrackRelated,
		notify.WatchFiles, notify.WatchFolders,
	} {
		assert.True(t, b.Capabilities().Has(c), "%v", c)
	}
	assert.False(t, b.Capabilities().Has(notify.WatchRecursively))
	assert.NotEqual(t, notify.InvalidFd, b.Driver().Fd())
}

func is(k notify.EventKind) func(notify.Event) bool {
	return func(ev notify.Event) bool { return ev.Kind == k }
}

func TestCreateRenameRemove(t *testing.T) {
	f := test.B(t, descriptor(t))

	f.Do(notify.ClassCreate, "file")
	evs := test.Next(t, f.Backend, is(notify.Create(notify.CreateFile)))
	created := evs[len(evs)-1]
	assert.Equal(t, []string{"file"}, created.Paths)
	assert.False(t, created.RelID.Valid)

	require.NoError(t, os.Rename(f.Path("file"), f.Path("renamed")))
	evs = test.Next(t, f.Backend, is(notify.Modify(notify.ModifyName(notify.RenameFrom))))
	from := evs[len(evs)-1]
	to := f.Next(func(k notify.EventKind) bool {
		return k == notify.Modify(notify.ModifyName(notify.RenameTo))
	})
	assert.Equal(t, []string{"file"}, from.Paths)
	assert.Equal(t, []string{"renamed"}, to.Paths)
	require.True(t, from.RelID.Valid)
	assert.Equal(t, from.RelID, to.RelID)

	f.Do(notify.ClassRemove, "renamed")
	evs = test.Next(t, f.Backend, is(notify.Remove(notify.RemoveFile)))
	assert.Equal(t, []string{"renamed"}, evs[len(evs)-1].Paths)
}

func TestFolder(t *testing.T) {
	f := test.B(t, descriptor(t))

	require.NoError(t, os.Mkdir(f.Path("sub"), 0o755))
	ev := f.Next(func(k notify.EventKind) bool { return k.IsCreate() })
	assert.Equal(t, notify.Create(notify.CreateFolder), ev.Kind)

	require.NoError(t, os.Remove(f.Path("sub")))
	ev = f.Next(func(k notify.EventKind) bool { return k.IsRemove() })
	assert.Equal(t, notify.Remove(notify.RemoveFolder), ev.Kind)
}

func TestWatchedRemoved(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	b, err := inotify.New([]string{file})
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, os.Remove(file))
	evs, err := test.Drain(t, b)
	require.NoError(t, err)
	require.NotEmpty(t, evs)
	last := evs[len(evs)-1]
	assert.Equal(t, notify.Remove(notify.RemoveFile), last.Kind)
	assert.Empty(t, last.Paths)
}

func maxQueuedEvents(t *testing.T) int {
	p, err := os.ReadFile("/proc/sys/fs/inotify/max_queued_events")
	if err != nil {
		t.Skipf("unable to read the inotify queue limit: %v", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(p)))
	if err != nil || n > 1<<17 {
		t.Skipf("inotify queue limit %q is too large", p)
	}
	return n
}

func TestOverflow(t *testing.T) {
	limit := maxQueuedEvents(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	b, err := inotify.New([]string{dir})
	require.NoError(t, err)
	defer b.Close()

	// Each iteration queues an open and a close event.
	for range limit/2 + 1 {
		f, err := os.Open(file)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	evs, err := test.Drain(t, b)
	require.True(t, errors.Is(err, notify.ErrUpstreamOverflow), "got %v", err)
	require.NotEmpty(t, evs)
	assert.Equal(t, notify.Access(notify.AccessOpen(notify.ModeAny)), evs[0].Kind)
	assert.LessOrEqual(t, len(evs), limit)
	for i := 0; i+1 < len(evs); i += 2 {
		assert.Equal(t, notify.Access(notify.AccessOpen(notify.ModeAny)), evs[i].Kind, "%d", i)
		assert.Equal(t, notify.Access(notify.AccessClose(notify.ModeRead)), evs[i+1].Kind, "%d", i+1)
	}

	_, state, err := b.Poll()
	assert.NoError(t, err)
	assert.Equal(t, notify.Ended, state)
}

func TestNewErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	_, err := inotify.New([]string{dir, missing})
	var w *notify.ErrorWrap
	require.ErrorAs(t, err, &w)
	assert.Equal(t, notify.WrapSingle, w.Kind)
	assert.Equal(t, []string{missing}, w.Paths())
	assert.Equal(t, notify.NonExistent, w.Errors()[0].Kind)

	nul := dir + "/bad\x00name"
	_, err = inotify.New([]string{missing, dir, nul})
	require.ErrorAs(t, err, &w)
	assert.Equal(t, notify.WrapMultiple, w.Kind)
	require.Len(t, w.Causes, 2)
	assert.Equal(t, notify.NonExistent, w.Causes[0].Err.Kind)
	assert.Equal(t, []string{missing}, w.Causes[0].Paths)
	assert.Equal(t, notify.FfiNul, w.Causes[1].Err.Kind)
	assert.Equal(t, []string{nul}, w.Causes[1].Paths)
}

func TestClose(t *testing.T) {
	f := test.B(t, descriptor(t))
	f.Do(notify.ClassCreate, "file")
	f.Next(func(k notify.EventKind) bool { return k.IsCreate() })

	require.NoError(t, f.Backend.Close())
	assert.Equal(t, notify.InvalidFd, f.Backend.Driver().Fd())
	assert.NoError(t, f.Backend.Driver().Wait(t.Context()))
	_, err := f.Drain()
	assert.NoError(t, err)
	require.NoError(t, f.Backend.Close())
}
