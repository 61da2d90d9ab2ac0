package augment

import "errors"

// ErrInvalidConfiguration is returned by constructors when a parameter is
// outside its valid domain. It is never produced after construction.
var ErrInvalidConfiguration = errors.New("invalid configuration")
