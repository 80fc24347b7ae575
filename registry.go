// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"sort"
	"sync"
)

var registry = struct {
	sync.RWMutex
	m map[string]Descriptor
}{m: make(map[string]Descriptor)}

// Register makes a backend available by its name. It is meant to be called
// from the init function of the package implementing the backend.
//
// Register panics if the name is empty, the descriptor is incomplete or a
// backend with the same name is already registered.
func Register(d Descriptor) {
	if d.Name == "" {
		panic("notify: Register with empty backend name")
	}
	if d.New == nil || d.Capabilities == nil {
		panic("notify: Register of incomplete backend " + d.Name)
	}
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.m[d.Name]; ok {
		panic("notify: Register called twice for backend " + d.Name)
	}
	if d.Version == "" {
		d.Version = ContractVersion
	}
	registry.m[d.Name] = d
	Logger().Debug("registered backend", "backend", d.Name, "version", d.Version)
}

func unregister(name string) {
	registry.Lock()
	delete(registry.m, name)
	registry.Unlock()
}

// Lookup gives the backend registered under name.
func Lookup(name string) (Descriptor, bool) {
	registry.RLock()
	d, ok := registry.m[name]
	registry.RUnlock()
	return d, ok
}

// Descriptors gives all registered backends sorted by name.
func Descriptors() []Descriptor {
	registry.RLock()
	ds := make([]Descriptor, 0, len(registry.m))
	for _, d := range registry.m {
		ds = append(ds, d)
	}
	registry.RUnlock()
	sort.Slice(ds, func(i, j int) bool { return ds[i].Name < ds[j].Name })
	return ds
}

// Best gives the registered backend which currently declares the most
// capabilities. Ties are broken by name. Backends declaring none are skipped.
func Best() (Descriptor, bool) {
	var best Descriptor
	n := 0
	for _, d := range Descriptors() {
		if c := d.Capabilities().Len(); c > n {
			best, n = d, c
		}
	}
	return best, n > 0
}

// Open creates the backend registered under name over the given paths.
// Duplicate paths are dropped, keeping the first occurrence.
//
// The returned error is always an *ErrorWrap. A backend which declares no
// capabilities is treated as inoperable and fails with an Unavailable error.
func Open(name string, paths []string) (Backend, error) {
	d, ok := Lookup(name)
	if !ok {
		return nil, General(GenericError("notify: unknown backend %q", name))
	}
	if d.Capabilities() == 0 {
		return nil, General(UnavailableError(d.Name + " declares no capabilities"))
	}
	b, err := d.New(uniq(paths))
	if err != nil {
		return nil, Wrap(err)
	}
	Logger().Debug("opened backend", "backend", d.Name, "paths", len(paths))
	return b, nil
}

func uniq(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	u := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		u = append(u, p)
	}
	return u
}
