package flash

import "errors"

var ErrNotValid = errors.New("invalid")
