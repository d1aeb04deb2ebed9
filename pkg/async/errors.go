package async

import "errors"

var ErrTimedOut = errors.New("async: operation exceeded its time budget")
