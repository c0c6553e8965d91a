// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// Maintains a single LevelDB database containing all persistent pools.
// Each pool occupies a single-letter key space within the database:
//
//	V   vault records
//	R   asset refs (authorization registry entries)
//	A   held asset records
//	B   bid records
//	Q   fund accounts
//	E   event journal
//	Z   test data
//
// Multi-key mutations go through a Batch so a commit is all-or-nothing.
package storage
