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

package reporter

import "sync"

// ErrorReporter is called for each error reported during a scan. If it
// returns a non-nil error, the scan aborts with that error; returning nil
// lets the scan continue and report further errors.
type ErrorReporter func(err ErrorWithPos) error

// Handler accumulates errors through an ErrorReporter. A nil reporter
// aborts on the first error. Handlers are safe for concurrent use.
type Handler struct {
	reporter ErrorReporter

	mu           sync.Mutex
	errsReported bool
	reporterErr  error
}

// NewHandler creates a new Handler for the given reporter. A nil reporter
// fails the scan on the first reported error.
func NewHandler(rep ErrorReporter) *Handler {
	if rep == nil {
		rep = func(err ErrorWithPos) error { return err }
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports an error at pos, formatted via fmt.Errorf. The
// returned error is non-nil when the reporter chose to abort.
func (h *Handler) HandleErrorf(pos SourcePos, format string, args ...interface{}) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleError reports err. The returned error is non-nil when the reporter
// chose to abort.
func (h *Handler) HandleError(err ErrorWithPos) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.reporterErr != nil {
		return h.reporterErr
	}
	h.errsReported = true
	h.reporterErr = h.reporter(err)
	return h.reporterErr
}

// ReporterError returns the error the reporter aborted with, if any.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reporterErr
}

// Error returns the outcome of the scan: nil if nothing was reported, the
// reporter's abort error if it chose one, or ErrInvalidSource when errors
// were reported but all swallowed by the reporter.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.reporterErr != nil:
		return h.reporterErr
	case h.errsReported:
		return ErrInvalidSource
	}
	return nil
}
