// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package validation

import (
	"fmt"
	"regexp"
)

const maxIDLength = 255

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// idValidator validates an actor id or name used as a mailbox key and, when
// the actor is spawned with a well-known name, as part of its address.
type idValidator struct {
	id string
}

var _ Validator = (*idValidator)(nil)

// NewIDValidator creates an instance of idValidator.
func NewIDValidator(id string) Validator {
	return &idValidator{id: id}
}

// Validate implements validation.Validator.
func (x *idValidator) Validate() error {
	if len(x.id) == 0 || len(x.id) > maxIDLength {
		return fmt.Errorf("invalid id=(%s): length must be between 1 and %d characters", x.id, maxIDLength)
	}
	if !idPattern.MatchString(x.id) {
		return fmt.Errorf("invalid id=(%s): only letters, digits, '.', '_' and '-' are allowed", x.id)
	}
	return nil
}
