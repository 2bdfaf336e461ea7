// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal masks infrastructure failures so callers never see driver
// or query details.
var ErrInternal = errors.New("internal error")
