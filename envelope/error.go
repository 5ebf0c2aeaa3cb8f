package envelope

import "errors"

var ErrNotValid = errors.New("invalid")
