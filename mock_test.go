// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import "context"

type Type string

const (
	TypePoll  = Type("Poll")
	TypeWait  = Type("Wait")
	TypeClose = Type("Close")
)

// Step is a single result replayed by Spy.Poll.
type Step struct {
	Event Event
	State State
	Err   error
}

// Spy is a backend replaying fixed Poll results and recording the calls made
// to it. Once the steps run out it is Ended.
type Spy struct {
	Steps []Step
	Calls []Type
	Paths []string
	Caps  Capability

	// WaitErr is returned by every Wait call.
	WaitErr error
}

func (s *Spy) Name() string             { return "spy" }
func (s *Spy) Capabilities() Capability { return s.Caps }
func (s *Spy) Driver() Driver           { return s }
func (s *Spy) Fd() uintptr              { return InvalidFd }

func (s *Spy) Poll() (Event, State, error) {
	s.Calls = append(s.Calls, TypePoll)
	if len(s.Steps) == 0 {
		return Event{}, Ended, nil
	}
	st := s.Steps[0]
	s.Steps = s.Steps[1:]
	return st.Event, st.State, st.Err
}

func (s *Spy) Wait(ctx context.Context) error {
	s.Calls = append(s.Calls, TypeWait)
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.WaitErr
}

func (s *Spy) Close() error {
	s.Calls = append(s.Calls, TypeClose)
	return nil
}

func ready(k EventKind, paths ...string) Step {
	return Step{Event: Event{Kind: k, Paths: paths, Source: "spy"}, State: Ready}
}

var pending = Step{State: Pending}

func failed(err error) Step {
	return Step{State: Failed, Err: err}
}

// spyDescriptor gives a descriptor creating Spy backends which replay steps.
func spyDescriptor(name string, caps Capability, steps ...Step) Descriptor {
	return Descriptor{
		Name:         name,
		Capabilities: func() Capability { return caps },
		New: func(paths []string) (Backend, error) {
			for _, p := range paths {
				if p == "" {
					return nil, Single(NonExistentError(p), p)
				}
			}
			return &Spy{Steps: steps, Caps: caps, Paths: paths}, nil
		},
	}
}
