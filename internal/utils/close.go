package utils

import "io"

// Close closes c and ignores any error.
// Use for read-only handles in defer where a close error carries no information.
func Close(c io.Closer) {
	_ = c.Close()
}
