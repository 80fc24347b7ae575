// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsOrder(t *testing.T) {
	c1 := Cause{Err: NonExistentError("/a"), Paths: []string{"/a"}}
	c2 := Cause{Err: CapabilityError(WatchRecursively), Paths: []string{"/b", "/c"}}
	c3 := Cause{Err: IOError(errors.New("boom"))}

	errs := Multiple(c1, c2, c3).Errors()
	require.Len(t, errs, 3)
	assert.Same(t, c1.Err, errs[0])
	assert.Same(t, c2.Err, errs[1])
	assert.Same(t, c3.Err, errs[2])

	e := UnavailableError("")
	for _, w := range []*ErrorWrap{General(e), All(e), Single(e, "/a", "/b")} {
		errs := w.Errors()
		require.Len(t, errs, 1, "%v", w.Kind)
		assert.Same(t, e, errs[0], "%v", w.Kind)
	}
}

func TestErrorWrapPaths(t *testing.T) {
	w := Multiple(
		Cause{Err: NonExistentError("/a"), Paths: []string{"/a", "/b"}},
		Cause{Err: NotImplementedError()},
		Cause{Err: NulError("/c\x00"), Paths: []string{"/b", "/c\x00"}},
	)
	assert.Equal(t, []string{"/a", "/b", "/c\x00"}, w.Paths())
	assert.Empty(t, General(NotImplementedError()).Paths())
}

func TestJoin(t *testing.T) {
	assert.Nil(t, Join())

	c1 := Cause{Err: NonExistentError("/a"), Paths: []string{"/a"}}
	w := Join(c1)
	assert.Equal(t, WrapSingle, w.Kind)
	assert.Equal(t, []Cause{c1}, w.Causes)

	c2 := Cause{Err: NulError("\x00"), Paths: []string{"\x00"}}
	w = Join(c1, c2)
	assert.Equal(t, WrapMultiple, w.Kind)
	assert.Equal(t, []Cause{c1, c2}, w.Causes)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil))

	single := Single(NonExistentError("/a"), "/a")
	assert.Same(t, single, Wrap(fmt.Errorf("open: %w", single)))

	e := UnavailableError("no kernel support")
	w := Wrap(e)
	assert.Equal(t, WrapGeneral, w.Kind)
	assert.Same(t, e, w.Errors()[0])

	w = Wrap(syscall.EACCES)
	assert.Equal(t, IO, w.Errors()[0].Kind)
	assert.ErrorIs(t, w, syscall.EACCES)
}

func TestIOError(t *testing.T) {
	e := IOError(&os.PathError{Op: "open", Path: "/a", Err: syscall.ENOENT})
	assert.Equal(t, NonExistent, e.Kind)
	assert.Empty(t, e.Paths)
	assert.ErrorIs(t, e, fs.ErrNotExist)

	e = IOError(syscall.EPERM)
	assert.Equal(t, IO, e.Kind)
	assert.ErrorIs(t, e, syscall.EPERM)
	assert.NotErrorIs(t, e, fs.ErrNotExist)
}

func TestErrorString(t *testing.T) {
	cases := []struct {
		err *Error
		str string
	}{
		{GenericError("bad %s", "thing"), "bad thing"},
		{IOError(errors.New("disk on fire")), "i/o error: disk on fire"},
		{NotImplementedError(), "backend not implemented"},
		{UnavailableError(""), "backend unavailable"},
		{UnavailableError("no inotify"), "backend unavailable: no inotify"},
		{NonExistentError(), "path does not exist"},
		{NonExistentError("/a", "/b"), "paths do not exist: /a, /b"},
		{CapabilityError(WatchRecursively), "capability not supported: WatchRecursively"},
		{NulError("ab\x00c"), "string conversion (ffi nul): nul byte found in provided data at position: 2"},
		{IntoStringError([]byte("ok\xffno")), "string conversion (ffi into string): invalid utf-8 sequence from index 2"},
		{FromBytesError([]byte("abc")), "string conversion (ffi from bytes): data provided is not nul terminated"},
		{FromBytesError([]byte("a\x00bc\x00")), "string conversion (ffi from bytes): data provided contains an interior nul byte at pos 1"},
		{&Error{Kind: IO}, "i/o error"},
	}
	for _, cas := range cases {
		assert.Equal(t, cas.str, cas.err.Error())
	}
}

func TestErrorWrapString(t *testing.T) {
	w := Multiple(
		Cause{Err: NonExistentError("/a"), Paths: []string{"/a"}},
		Cause{Err: NotImplementedError()},
	)
	assert.Equal(t, "notify: paths do not exist: /a (/a); backend not implemented", w.Error())
	assert.Equal(t, "notify: all paths: backend unavailable", All(UnavailableError("")).Error())
}

func TestErrorWrapNilCause(t *testing.T) {
	w := Multiple(Cause{Paths: []string{"/a"}}, Cause{Err: NotImplementedError()})
	assert.Equal(t, "notify: unknown error (/a); backend not implemented", w.Error())
	require.Len(t, w.Errors(), 2)
	assert.Equal(t, Generic, w.Errors()[0].Kind)
	assert.Equal(t, NotImplemented, w.Errors()[1].Kind)
	assert.Equal(t, []string{"/a"}, w.Paths())
	assert.False(t, errors.Is(w, fs.ErrNotExist))

	w = General(nil)
	assert.Equal(t, "notify: unknown error", w.Error())
}
