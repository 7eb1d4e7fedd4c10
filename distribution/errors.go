package distribution

import (
	errors2 "github.com/strata-av/variates/kit/platform/errors"
)

func invalidParameter(op, format string, args ...interface{}) error {
	return errors2.Invalidf(op, format, args...)
}

// IsInvalidParameter reports whether err was caused by a parameter that
// cannot be sampled, such as a negative count or a non-positive scale.
func IsInvalidParameter(err error) bool {
	return err != nil && errors2.ErrorCode(err) == errors2.EInvalid
}
