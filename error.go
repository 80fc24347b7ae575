// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"
)

// ErrorKind tells what went wrong while initialising a backend.
type ErrorKind uint8

// Error kinds.
const (
	// Generic is an error represented by an arbitrary message.
	Generic ErrorKind = iota

	// IO is an I/O error.
	IO

	// NotImplemented means the backend implementation is incomplete.
	NotImplemented

	// Unavailable means the backend, or its native API, is inoperable. An
	// optional reason may be given.
	Unavailable

	// NonExistent means one or more paths passed to the backend do not exist.
	// Paths are checked by the caller beforehand, so this covers lost races
	// against the filesystem.
	NonExistent

	// NotSupported means a path needs a capability the backend lacks.
	NotSupported

	// FfiNul means a string passed to a native API contains a NUL byte.
	FfiNul

	// FfiIntoString means a string returned by a native API is not valid
	// UTF-8.
	FfiIntoString

	// FfiFromBytes means a native C string buffer has a NUL byte too early, or
	// none at all.
	FfiFromBytes
)

var errkindstr = [...]string{
	Generic:        "generic",
	IO:             "i/o",
	NotImplemented: "not implemented",
	Unavailable:    "unavailable",
	NonExistent:    "non-existent",
	NotSupported:   "not supported",
	FfiNul:         "ffi nul",
	FfiIntoString:  "ffi into string",
	FfiFromBytes:   "ffi from bytes",
}

// String implements fmt.Stringer interface.
func (k ErrorKind) String() string {
	if int(k) < len(errkindstr) {
		return errkindstr[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is a single cause of a backend initialisation failure.
type Error struct {
	Kind ErrorKind

	// Message is the message of a Generic error, or the optional reason of an
	// Unavailable one.
	Message string

	// Paths lists the non-existent paths of a NonExistent error. It is empty
	// when they are not known.
	Paths []string

	// Capability is the capability missing for a NotSupported error.
	Capability Capability

	// Err is the underlying error of IO and Ffi* errors.
	Err error
}

// GenericError gives a Generic error with a formatted message.
func GenericError(format string, args ...any) *Error {
	return &Error{Kind: Generic, Message: fmt.Sprintf(format, args...)}
}

// IOError converts err into an Error. Errors matching fs.ErrNotExist become
// NonExistent errors with no paths, everything else becomes an IO error.
//
// The conversion loses the path information, thus whenever the failing paths
// are known, NonExistentError should be used instead.
func IOError(err error) *Error {
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: NonExistent}
	}
	return &Error{Kind: IO, Err: err}
}

// NotImplementedError gives a NotImplemented error.
func NotImplementedError() *Error { return &Error{Kind: NotImplemented} }

// UnavailableError gives an Unavailable error. The reason may be empty.
func UnavailableError(reason string) *Error {
	return &Error{Kind: Unavailable, Message: reason}
}

// NonExistentError gives a NonExistent error for the given paths.
func NonExistentError(paths ...string) *Error {
	return &Error{Kind: NonExistent, Paths: paths}
}

// CapabilityError gives a NotSupported error for the missing capability c.
func CapabilityError(c Capability) *Error {
	return &Error{Kind: NotSupported, Capability: c}
}

// NulError gives an FfiNul error for s, which contains a NUL byte.
func NulError(s string) *Error {
	return &Error{
		Kind: FfiNul,
		Err:  fmt.Errorf("nul byte found in provided data at position: %d", strings.IndexByte(s, 0)),
	}
}

// IntoStringError gives an FfiIntoString error for b, which is not valid
// UTF-8.
func IntoStringError(b []byte) *Error {
	n := 0
	for n < len(b) {
		r, size := utf8.DecodeRune(b[n:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		n += size
	}
	return &Error{
		Kind: FfiIntoString,
		Err:  fmt.Errorf("invalid utf-8 sequence from index %d", n),
	}
}

// FromBytesError gives an FfiFromBytes error for b, which is not a single
// NUL-terminated C string.
func FromBytesError(b []byte) *Error {
	err := errors.New("data provided is not nul terminated")
	if i := bytes.IndexByte(b, 0); i != -1 && i != len(b)-1 {
		err = fmt.Errorf("data provided contains an interior nul byte at pos %d", i)
	}
	return &Error{Kind: FfiFromBytes, Err: err}
}

// Error implements error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case Generic:
		return e.Message
	case NotImplemented:
		return "backend not implemented"
	case Unavailable:
		if e.Message == "" {
			return "backend unavailable"
		}
		return "backend unavailable: " + e.Message
	case NonExistent:
		if len(e.Paths) == 0 {
			return "path does not exist"
		}
		return "paths do not exist: " + strings.Join(e.Paths, ", ")
	case NotSupported:
		return "capability not supported: " + e.Capability.String()
	}
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	if e.Kind == IO {
		return "i/o error: " + e.Err.Error()
	}
	return "string conversion (" + e.Kind.String() + "): " + e.Err.Error()
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is makes NonExistent errors match fs.ErrNotExist.
func (e *Error) Is(target error) bool {
	return e.Kind == NonExistent && target == fs.ErrNotExist
}

// WrapKind tells how many, and which, paths an ErrorWrap is about.
type WrapKind uint8

// Wrap kinds.
const (
	// WrapGeneral is an error about the backend itself, not about paths.
	WrapGeneral WrapKind = iota

	// WrapAll is a single cause which affects every path passed in.
	WrapAll

	// WrapSingle is a single cause which affects a known subset of paths.
	WrapSingle

	// WrapMultiple is several causes, each affecting its own subset of paths.
	// The subsets may overlap or be empty.
	WrapMultiple
)

var wrapkindstr = [...]string{
	WrapGeneral:  "General",
	WrapAll:      "All",
	WrapSingle:   "Single",
	WrapMultiple: "Multiple",
}

// String implements fmt.Stringer interface.
func (k WrapKind) String() string {
	if int(k) < len(wrapkindstr) {
		return wrapkindstr[k]
	}
	return fmt.Sprintf("WrapKind(%d)", uint8(k))
}

// Cause is an Error together with the paths it affects. A nil Err stands for
// an unknown Generic error.
type Cause struct {
	Err   *Error
	Paths []string
}

func (c Cause) err() *Error {
	if c.Err == nil {
		return GenericError("unknown error")
	}
	return c.Err
}

// ErrorWrap is the error returned when a backend fails to initialise. It
// tells whether the failure is general or only affects some paths.
//
// For causes which affect subsets of paths, it is assumed that passing only
// the remaining paths again would likely succeed.
//
// General, All and Single wraps hold exactly one cause.
type ErrorWrap struct {
	Kind   WrapKind
	Causes []Cause
}

// General wraps an error about the backend itself.
func General(err *Error) *ErrorWrap {
	return &ErrorWrap{Kind: WrapGeneral, Causes: []Cause{{Err: err}}}
}

// All wraps an error which affects all paths passed in.
func All(err *Error) *ErrorWrap {
	return &ErrorWrap{Kind: WrapAll, Causes: []Cause{{Err: err}}}
}

// Single wraps an error which affects only the given paths.
func Single(err *Error, paths ...string) *ErrorWrap {
	return &ErrorWrap{Kind: WrapSingle, Causes: []Cause{{Err: err, Paths: paths}}}
}

// Multiple wraps several errors, each with the paths it affects.
func Multiple(causes ...Cause) *ErrorWrap {
	return &ErrorWrap{Kind: WrapMultiple, Causes: causes}
}

// Join gives nil for no causes, a Single wrap for one cause and a Multiple
// wrap otherwise.
func Join(causes ...Cause) *ErrorWrap {
	switch len(causes) {
	case 0:
		return nil
	case 1:
		return Single(causes[0].Err, causes[0].Paths...)
	default:
		return Multiple(causes...)
	}
}

// Wrap converts err into a General wrap. An *ErrorWrap is returned as is, an
// *Error is wrapped directly and any other error goes through IOError.
func Wrap(err error) *ErrorWrap {
	if err == nil {
		return nil
	}
	var w *ErrorWrap
	if errors.As(err, &w) {
		return w
	}
	var e *Error
	if errors.As(err, &e) {
		return General(e)
	}
	return General(IOError(err))
}

// Errors reduces w to its causes, discarding all path information. For a
// Multiple wrap it returns one error per cause, in order; otherwise it returns
// the single wrapped error.
func (w *ErrorWrap) Errors() []*Error {
	errs := make([]*Error, 0, len(w.Causes))
	for _, c := range w.Causes {
		errs = append(errs, c.err())
	}
	return errs
}

// Paths gives the distinct paths affected by w, in order of appearance.
func (w *ErrorWrap) Paths() []string {
	var paths []string
	seen := make(map[string]struct{})
	for _, c := range w.Causes {
		for _, p := range c.Paths {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				paths = append(paths, p)
			}
		}
	}
	return paths
}

// Error implements error interface.
func (w *ErrorWrap) Error() string {
	var s []string
	for _, c := range w.Causes {
		if len(c.Paths) == 0 {
			s = append(s, c.err().Error())
			continue
		}
		s = append(s, c.err().Error()+" ("+strings.Join(c.Paths, ", ")+")")
	}
	switch w.Kind {
	case WrapAll:
		return "notify: all paths: " + strings.Join(s, "; ")
	default:
		return "notify: " + strings.Join(s, "; ")
	}
}

// Unwrap returns the causes as a list of errors.
func (w *ErrorWrap) Unwrap() []error {
	errs := make([]error, 0, len(w.Causes))
	for _, c := range w.Causes {
		errs = append(errs, c.err())
	}
	return errs
}
