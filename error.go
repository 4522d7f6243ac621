// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm

import "errors"

// ErrWriteTimeout signals that the device did not raise DO before the
// write deadline. The cell content is undefined afterwards.
var ErrWriteTimeout = errors.New("write cycle did not complete")

// ErrInvalidConfig signals a configuration the driver cannot time.
var ErrInvalidConfig = errors.New("invalid configuration")
