// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package inotify

import (
	"errors"
	"fmt"
	"os"
	rntm "runtime"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/JekaMas/notify/v2"
)

// Name is the name the backend is registered under.
const Name = "inotify"

// Capabilities lists what the backend natively supports.
const Capabilities = notify.EmitOnAccess | notify.FollowSymlinks |
	notify.TrackRelated | notify.WatchFiles | notify.WatchFolders

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

// Backend is a notify.Backend over a single inotify instance.
type Backend struct {
	fd     int
	buffer *notify.Buffer
	driver driver
	buf    [bufferSize]byte
}

var _ notify.Backend = (*Backend)(nil)

// New creates an inotify instance watching paths, each with all events.
//
// Every path is attempted. If any of them fails, the instance is closed and
// the failures are returned as a single *notify.ErrorWrap attributing each
// cause to its path.
func New(paths []string) (*Backend, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		if errors.Is(err, unix.ENOSYS) {
			return nil, notify.General(notify.UnavailableError("inotify is not supported by the kernel"))
		}
		return nil, notify.General(notify.IOError(os.NewSyscallError("inotify_init1", err)))
	}
	var causes []notify.Cause
	for _, path := range paths {
		if err := addWatch(fd, path); err != nil {
			causes = append(causes, notify.Cause{Err: err, Paths: []string{path}})
		}
	}
	if len(causes) != 0 {
		unix.Close(fd)
		return nil, notify.Join(causes...)
	}
	b := newBackend(fd)
	rntm.SetFinalizer(b, (*Backend).Close)
	return b, nil
}

func newBackend(fd int) *Backend {
	b := &Backend{fd: fd, buffer: notify.NewBuffer()}
	b.driver.b = b
	return b
}

func addWatch(fd int, path string) *notify.Error {
	if strings.IndexByte(path, 0) != -1 {
		return notify.NulError(path)
	}
	wd, err := unix.InotifyAddWatch(fd, path, unix.IN_ALL_EVENTS)
	switch {
	case errors.Is(err, unix.ENOENT):
		return notify.NonExistentError(path)
	case err != nil:
		return notify.IOError(&os.PathError{Op: "inotify_add_watch", Path: path, Err: err})
	}
	notify.Logger().Debug("watch added", "backend", Name, "path", path, "wd", wd)
	return nil
}

// Name implements notify.Backend interface.
func (b *Backend) Name() string { return Name }

// Capabilities implements notify.Backend interface.
func (b *Backend) Capabilities() notify.Capability { return Capabilities }

// Driver implements notify.Backend interface. Its descriptor is the inotify
// instance itself.
func (b *Backend) Driver() notify.Driver { return &b.driver }

// Poll implements notify.Backend interface.
//
// The instance is read only once all previously read events were consumed,
// leaving the rest queued in the kernel. A failed read ends the stream.
func (b *Backend) Poll() (notify.Event, notify.State, error) {
	if !b.buffer.Closed() && b.buffer.Len() == 0 {
		if err := b.read(); err != nil {
			notify.Logger().Debug("read failed", "backend", Name, "err", err)
			b.buffer.CloseWithError(err)
		}
	}
	return b.buffer.Poll()
}

func (b *Backend) read() error {
	n, err := unix.Read(b.fd, b.buf[:])
	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return nil
	case err != nil:
		return fmt.Errorf("inotify: %w", os.NewSyscallError("read", err))
	}
	b.process(b.buf[:n])
	return nil
}

// process translates a batch of native records into the buffer. An overflow
// or a removed watch closes the buffer and the rest of the batch is dropped.
func (b *Backend) process(buf []byte) {
	decode(buf, func(r record) bool {
		switch {
		case r.mask&unix.IN_Q_OVERFLOW != 0:
			notify.Logger().Debug("queue overflow", "backend", Name, "buffered", b.buffer.Len())
			b.buffer.CloseWithError(notify.ErrUpstreamOverflow)
			return false
		case r.mask&unix.IN_IGNORED != 0:
			notify.Logger().Debug("watch removed", "backend", Name, "wd", r.wd)
			b.buffer.Close()
			return false
		}
		b.buffer.Push(r.event())
		return true
	})
}

// Close implements notify.Backend interface. It closes the inotify instance;
// events already read are still returned by Poll.
func (b *Backend) Close() error {
	if b.fd == -1 {
		return nil
	}
	err := unix.Close(b.fd)
	b.fd = -1
	b.buffer.Close()
	rntm.SetFinalizer(b, nil)
	if err != nil {
		return os.NewSyscallError("close", err)
	}
	return nil
}
