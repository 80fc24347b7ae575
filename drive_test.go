// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(evs *[]string) func(Event) error {
	return func(ev Event) error {
		*evs = append(*evs, ev.Paths...)
		return nil
	}
}

func TestDrive(t *testing.T) {
	s := &Spy{Steps: []Step{
		ready(Create(CreateFile), "a"),
		pending,
		ready(Modify(ModifyData(DataAny)), "a"),
		ready(Remove(RemoveFile), "a"),
	}}
	var evs []string
	require.NoError(t, Drive(context.Background(), s, collect(&evs)))
	assert.Equal(t, []string{"a", "a", "a"}, evs)
	assert.Equal(t, []Type{TypePoll, TypePoll, TypeWait, TypePoll, TypePoll, TypePoll}, s.Calls)
}

func TestDriveOverflow(t *testing.T) {
	s := &Spy{Steps: []Step{
		ready(Create(CreateFile), "a"),
		ready(Create(CreateFile), "b"),
		failed(ErrUpstreamOverflow),
	}}
	var evs []string
	err := Drive(context.Background(), s, collect(&evs))
	assert.ErrorIs(t, err, ErrUpstreamOverflow)
	assert.Equal(t, []string{"a", "b"}, evs)
	assert.Equal(t, TypePoll, s.Calls[len(s.Calls)-1])
}

func TestDriveFailure(t *testing.T) {
	boom := errors.New("boom")
	s := &Spy{Steps: []Step{
		ready(Create(CreateFile), "a"),
		failed(boom),
		ready(Create(CreateFile), "b"),
	}}
	var evs []string
	assert.Equal(t, boom, Drive(context.Background(), s, collect(&evs)))
	assert.Equal(t, []string{"a"}, evs)
	assert.Len(t, s.Steps, 1)
}

func TestDriveHandlerError(t *testing.T) {
	stop := errors.New("stop")
	s := &Spy{Steps: []Step{
		ready(Create(CreateFile), "a"),
		ready(Create(CreateFile), "b"),
	}}
	err := Drive(context.Background(), s, func(Event) error { return stop })
	assert.Equal(t, stop, err)
	assert.Len(t, s.Steps, 1)
}

func TestDriveContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Spy{Steps: []Step{pending, ready(Create(CreateFile), "a")}}
	err := Drive(ctx, s, func(Event) error {
		t.Fatal("unexpected event")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []Type{TypePoll, TypeWait}, s.Calls)
}
