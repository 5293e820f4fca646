package storage

import "errors"

var ErrNotListable = errors.New("storage: backend cannot enumerate keys")
