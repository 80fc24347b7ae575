// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"context"
	"errors"
)

// Drive runs the pull protocol of b until its stream ends, passing each event
// to fn. When nothing is available it waits on the backend's driver instead of
// busy polling.
//
// An UpstreamOverflow failure does not stop Drive: the stream is drained to
// its end and the failure is returned afterwards. Any other stream failure, an
// error from fn or from waiting (e.g. ctx being done) is returned right away.
// Drive does not close b.
func Drive(ctx context.Context, b Backend, fn func(Event) error) error {
	var (
		d       = b.Driver()
		failure error
	)
	for {
		ev, state, err := b.Poll()
		switch state {
		case Ready:
			if err := fn(ev); err != nil {
				return err
			}
		case Pending:
			if err := d.Wait(ctx); err != nil {
				return err
			}
		case Failed:
			if !errors.Is(err, ErrUpstreamOverflow) {
				return err
			}
			Logger().Debug("stream failed, draining", "backend", b.Name(), "err", err)
			if failure == nil {
				failure = err
			}
		case Ended:
			return failure
		}
	}
}
