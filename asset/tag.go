// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/custodia-inc/vaultd/fault"
)

// maximum bytes in a type tag, to fit the 1 byte length in packed records
const maximumTagLength = 255

// TypeTag - the declared type of a stored asset
//
// an opaque token, e.g. "art/print" or "game::sword"; used only for
// deposit policy gating and withdrawal type checks
type TypeTag string

// Validate - check a tag is usable
//
// non-empty, fits a packed record and contains no control or space
// characters
func (t TypeTag) Validate() error {
	if "" == t || len(t) > maximumTagLength {
		return fault.InvalidTypeTag
	}
	for i := 0; i < len(t); i += 1 {
		if t[i] <= ' ' || 0x7f == t[i] {
			return fault.InvalidTypeTag
		}
	}
	return nil
}

// String - the tag text
func (t TypeTag) String() string {
	return string(t)
}
