// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - asset records, identifiers and type tags
//
// An asset is an opaque payload with a declared type tag.  The engine
// never inspects the payload; the identifier is the SHA3-256 digest of
// the payload so the same content always has the same id.  Display
// attributes, royalty formulas and minting are external concerns.
package asset
