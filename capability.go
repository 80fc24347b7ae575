// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"math/bits"
	"strings"
)

// Capability is a set of native abilities of a backend, used by consumers
// for feature negotiation. Single capabilities are bit flags.
type Capability uint32

// Capabilities a backend may declare.
const (
	// EmitOnAccess means the backend emits Access events.
	EmitOnAccess Capability = 1 << iota

	// FollowSymlinks means watching a symlink watches its target.
	FollowSymlinks

	// TrackRelated means the backend tags related events with a RelID.
	TrackRelated

	// WatchEntireFilesystem means the backend can watch a whole filesystem.
	WatchEntireFilesystem

	// WatchFiles means the backend can watch individual files.
	WatchFiles

	// WatchFolders means the backend can watch folders, non-recursively.
	WatchFolders

	// WatchNetworkedFilesystems means the backend reports changes on network
	// mounts.
	WatchNetworkedFilesystems

	// WatchRecursively means the backend can watch folders recursively.
	WatchRecursively
)

var capstr = []struct {
	c Capability
	s string
}{
	{EmitOnAccess, "EmitOnAccess"},
	{FollowSymlinks, "FollowSymlinks"},
	{TrackRelated, "TrackRelated"},
	{WatchEntireFilesystem, "WatchEntireFilesystem"},
	{WatchFiles, "WatchFiles"},
	{WatchFolders, "WatchFolders"},
	{WatchNetworkedFilesystems, "WatchNetworkedFilesystems"},
	{WatchRecursively, "WatchRecursively"},
}

// Has reports whether c contains every capability in other.
func (c Capability) Has(other Capability) bool { return c&other == other }

// Len gives the number of capabilities in c.
func (c Capability) Len() int { return bits.OnesCount32(uint32(c)) }

// List splits c into single capabilities, in declaration order.
func (c Capability) List() []Capability {
	var l []Capability
	for _, cs := range capstr {
		if c&cs.c != 0 {
			l = append(l, cs.c)
		}
	}
	return l
}

// String implements fmt.Stringer interface.
func (c Capability) String() string {
	var s []string
	for _, cs := range capstr {
		if c&cs.c != 0 {
			s = append(s, cs.s)
		}
	}
	if len(s) == 0 {
		return "None"
	}
	return strings.Join(s, "|")
}
