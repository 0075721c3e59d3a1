package script

import "errors"

// ErrNoSuchPort is returned when a reference names a port its node does not
// have in the expected direction.
var ErrNoSuchPort = errors.New("no such port")
