// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package test provides utility functions and fixtures for testing notify
// backends.
//
// The package consists of two parts:
//
//   - test.go implementing B() which is a fixture for a single notify.Backend
//   - conformance.go implementing Conformance() which checks a backend
//     against the notify.Backend contract
//
// Each fixture watches its own temporary folder. A fixture instance defines a
// test life-time, which determines when the backend is closed and the folder
// removed.
//
// # Fixture scoping
//
// Helpers called on the same fixture share its backend, thus they depend on
// each other:
//
//	func TestRename(t *testing.T) {
//		fixture := test.B(t, descriptor)
//		fixture.Do(notify.ClassCreate, "file")
//		fixture.Next(notify.EventKind.IsCreate)
//		fixture.Do(notify.ClassModify, "file")
//		fixture.Next(notify.EventKind.IsModify)
//	}
//
// Every backend package is expected to run the shared scenarios as well:
//
//	func TestConformance(t *testing.T) {
//		test.Conformance(t, descriptor)
//	}
package test
