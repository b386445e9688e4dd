package sparrowdb

import "errors"

// ErrAlreadyExists is returned by Insert when pk is already bound to a
// document. No other Database operation returns an error: unknown
// fields and terms degrade silently, and Delete of an unknown pk is a
// no-op.
var ErrAlreadyExists = errors.New("sparrowdb: pk already exists")
