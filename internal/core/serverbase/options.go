// SPDX-License-Identifier: MPL-2.0

package serverbase

import "github.com/charmbracelet/log"

// Option configures a Base.
type Option func(*Base)

// WithErrorChannel sets the buffer size of the Err channel. Default 1.
func WithErrorChannel(size int) Option {
	return func(b *Base) {
		b.errCh = make(chan error, size)
	}
}

// WithLogger logs state transitions at debug level under name.
func WithLogger(logger *log.Logger, name string) Option {
	return func(b *Base) {
		b.logger = logger
		b.name = name
	}
}
