// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package fsnotify implements a portable notify backend on top of the
// github.com/fsnotify/fsnotify package, available on every platform that
// package supports. Importing the package registers the backend under the
// name "fsnotify".
//
// Events carry full paths and the native operation as a notify.Info
// attribute. Renames only report the old name, thus they are all translated
// to Modify(Name(From)). When the native queue overflows, the events read
// before are delivered, followed by notify.ErrUpstreamOverflow.
package fsnotify

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	rntm "runtime"
	"strings"

	fsnotifyv1 "github.com/fsnotify/fsnotify"

	"github.com/JekaMas/notify/v2"
)

// Name is the name the backend is registered under.
const Name = "fsnotify"

// Capabilities lists what the backend natively supports.
const Capabilities = notify.WatchFiles | notify.WatchFolders

// batch is the maximum number of native events read by a single Poll.
const batch = 200

func init() {
	notify.Register(notify.Descriptor{
		Name:         Name,
		Capabilities: func() notify.Capability { return Capabilities },
		New: func(paths []string) (notify.Backend, error) {
			b, err := New(paths)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		Version: notify.ContractVersion,
	})
}

// Backend is a notify.Backend over a single fsnotify watcher.
type Backend struct {
	w      *fsnotifyv1.Watcher
	buffer *notify.Buffer
	driver driver
	closed bool
}

var _ notify.Backend = (*Backend)(nil)

// New creates a watcher over paths.
//
// Every path is attempted. If any of them fails, the watcher is closed and
// the failures are returned as a single *notify.ErrorWrap attributing each
// cause to its path.
func New(paths []string) (*Backend, error) {
	w, err := fsnotifyv1.NewWatcher()
	if err != nil {
		return nil, notify.General(notify.IOError(err))
	}
	var causes []notify.Cause
	for _, path := range paths {
		if err := add(w, path); err != nil {
			causes = append(causes, notify.Cause{Err: err, Paths: []string{path}})
		}
	}
	if len(causes) != 0 {
		w.Close()
		return nil, notify.Join(causes...)
	}
	b := newBackend(w)
	rntm.SetFinalizer(b, (*Backend).Close)
	return b, nil
}

func newBackend(w *fsnotifyv1.Watcher) *Backend {
	b := &Backend{w: w, buffer: notify.NewBuffer()}
	b.driver.b = b
	return b
}

func add(w *fsnotifyv1.Watcher, path string) *notify.Error {
	if strings.IndexByte(path, 0) != -1 {
		return notify.NulError(path)
	}
	err := w.Add(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return notify.NonExistentError(path)
	case err != nil:
		return notify.IOError(&os.PathError{Op: "add", Path: path, Err: err})
	}
	notify.Logger().Debug("watch added", "backend", Name, "path", path)
	return nil
}

// Name implements notify.Backend interface.
func (b *Backend) Name() string { return Name }

// Capabilities implements notify.Backend interface.
func (b *Backend) Capabilities() notify.Capability { return Capabilities }

// Driver implements notify.Backend interface. It has no native descriptor;
// waiting receives from the watcher's channels instead.
func (b *Backend) Driver() notify.Driver { return &b.driver }

// Poll implements notify.Backend interface.
//
// The watcher's channels are read only once all previously read events were
// consumed.
func (b *Backend) Poll() (notify.Event, notify.State, error) {
	if !b.buffer.Closed() && b.buffer.Len() == 0 {
		b.read()
	}
	return b.buffer.Poll()
}

func (b *Backend) read() {
	for range batch {
		select {
		case ev, ok := <-b.w.Events:
			b.stage(ev, ok)
		case err, ok := <-b.w.Errors:
			b.fail(err, ok)
		default:
			return
		}
		if b.buffer.Closed() {
			return
		}
	}
}

func (b *Backend) stage(ev fsnotifyv1.Event, ok bool) {
	if !ok {
		b.buffer.Close()
		return
	}
	b.buffer.Push(translate(ev))
}

// fail handles a native error. Every error ends the stream; an overflow is
// reported as notify.ErrUpstreamOverflow after the buffered events.
func (b *Backend) fail(err error, ok bool) {
	switch {
	case !ok:
		b.buffer.Close()
	case errors.Is(err, fsnotifyv1.ErrEventOverflow):
		notify.Logger().Debug("queue overflow", "backend", Name, "buffered", b.buffer.Len())
		b.buffer.CloseWithError(notify.ErrUpstreamOverflow)
	default:
		notify.Logger().Debug("watcher failed", "backend", Name, "err", err)
		b.buffer.CloseWithError(fmt.Errorf("fsnotify: %w", err))
	}
}

// Close implements notify.Backend interface. Events already read are still
// returned by Poll.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.buffer.Close()
	rntm.SetFinalizer(b, nil)
	return b.w.Close()
}

type driver struct {
	b *Backend
}

// Fd implements notify.Driver interface.
func (d *driver) Fd() uintptr { return notify.InvalidFd }

// Wait implements notify.Driver interface. What it receives is buffered for
// the next Poll.
func (d *driver) Wait(ctx context.Context) error {
	b := d.b
	if b.closed || b.buffer.Len() != 0 || b.buffer.Closed() {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case ev, ok := <-b.w.Events:
		b.stage(ev, ok)
	case err, ok := <-b.w.Errors:
		b.fail(err, ok)
	}
	return nil
}

// translate converts a native event.
func translate(ev fsnotifyv1.Event) notify.Event {
	e := notify.NewEvent()
	e.Kind = kind(ev)
	e.Paths = append(e.Paths, ev.Name)
	notify.SetAttr(&e.Attrs, notify.Info(ev.Op.String()))
	e.Source = Name
	return e
}

// kind translates the native operations, the first one set in the order
// create, remove, rename, write and chmod wins.
func kind(ev fsnotifyv1.Event) notify.EventKind {
	switch {
	case ev.Has(fsnotifyv1.Create):
		fi, err := os.Lstat(ev.Name)
		switch {
		case err != nil:
			return notify.Create(notify.CreateAny)
		case fi.IsDir():
			return notify.Create(notify.CreateFolder)
		default:
			return notify.Create(notify.CreateFile)
		}
	case ev.Has(fsnotifyv1.Remove):
		return notify.Remove(notify.RemoveAny)
	case ev.Has(fsnotifyv1.Rename):
		return notify.Modify(notify.ModifyName(notify.RenameFrom))
	case ev.Has(fsnotifyv1.Write):
		return notify.Modify(notify.ModifyData(notify.DataAny))
	case ev.Has(fsnotifyv1.Chmod):
		return notify.Modify(notify.ModifyMetadata(notify.MetadataAny))
	}
	return notify.Any
}
