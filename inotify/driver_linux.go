// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package inotify

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sys/unix"

	"github.com/JekaMas/notify/v2"
)

// waitSlice is the longest single poll(2) call in milliseconds, which bounds
// how late Wait notices a cancelled context.
const waitSlice = 100

type driver struct {
	b *Backend
}

// Fd implements notify.Driver interface.
func (d *driver) Fd() uintptr {
	if d.b.fd == -1 {
		return notify.InvalidFd
	}
	return uintptr(d.b.fd)
}

// Wait implements notify.Driver interface. It returns right away when Poll
// has something to return without reading the instance.
func (d *driver) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.b.fd == -1 || d.b.buffer.Len() != 0 || d.b.buffer.Closed() {
			return nil
		}
		fds := []unix.PollFd{{Fd: int32(d.b.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, waitSlice)
		switch {
		case errors.Is(err, unix.EINTR):
		case err != nil:
			return os.NewSyscallError("poll", err)
		case n > 0:
			return nil
		}
	}
}
