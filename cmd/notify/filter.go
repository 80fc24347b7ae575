// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/JekaMas/notify/v2"
)

// Filter drops events whose paths all match one of the ignore patterns.
type Filter []glob.Glob

// NewFilter compiles the given patterns. A '*' does not cross path
// separators, '**' does.
func NewFilter(patterns []string) (Filter, error) {
	f := make(Filter, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		f = append(f, g)
	}
	return f, nil
}

func (f Filter) match(path string) bool {
	path = filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, g := range f {
		if g.Match(path) || g.Match(base) {
			return true
		}
	}
	return false
}

// Ignored reports whether ev should be dropped. Events without paths are never
// ignored.
func (f Filter) Ignored(ev notify.Event) bool {
	if len(f) == 0 || len(ev.Paths) == 0 {
		return false
	}
	for _, p := range ev.Paths {
		if !f.match(p) {
			return false
		}
	}
	return true
}
