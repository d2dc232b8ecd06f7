// SPDX-License-Identifier: MIT

package telemetry

import "errors"

var (
	// ErrNilContext is returned by Init when ctx is nil.
	ErrNilContext = errors.New("telemetry: nil context")

	// ErrUnknownExporter names an exporter Config does not support.
	ErrUnknownExporter = errors.New("telemetry: unknown exporter type")

	// ErrUnknownFormat names a log format NewLogger does not support.
	ErrUnknownFormat = errors.New("telemetry: unknown log format")
)
