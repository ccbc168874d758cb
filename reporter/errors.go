// Copyright 2023-2025 The Vela Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reporter contains the error plumbing used when scanning Vela
// sources: errors carry a source position, and a pluggable handler decides
// whether a reported error aborts the scan.
package reporter

import (
	"errors"
	"fmt"
)

// ErrInvalidSource is a sentinel error returned by scanning steps when one
// or more errors were reported but the configured ErrorReporter always
// returned nil.
var ErrInvalidSource = errors.New("scan failed: invalid vela source")

// SourcePos identifies a location in a source file. Line and Col are
// 1-based.
type SourcePos struct {
	Filename string
	Line     int
	Col      int
}

func (p SourcePos) String() string {
	if p.Col <= 0 {
		return fmt.Sprintf("%s:%d", p.Filename, p.Line)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// ErrorWithPos is an error about a source file that adds information about
// the location in the file that caused the error.
type ErrorWithPos interface {
	error
	// GetPosition returns the source position that caused the underlying error.
	GetPosition() SourcePos
	// Unwrap returns the underlying error.
	Unwrap() error
}

// Error creates a new ErrorWithPos from the given error and source position.
func Error(pos SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

// Errorf creates a new ErrorWithPos whose underlying error is created using
// the given message format and arguments (via fmt.Errorf).
func Errorf(pos SourcePos, format string, args ...interface{}) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithSourcePos struct {
	underlying error
	pos        SourcePos
}

func (e errorWithSourcePos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithSourcePos) GetPosition() SourcePos {
	return e.pos
}

func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}
