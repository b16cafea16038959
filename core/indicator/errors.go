package indicator

import "errors"

var ErrNoDriver = errors.New("indicator: no driver")
