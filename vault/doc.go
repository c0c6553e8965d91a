// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vault - custody containers and their authorization registry
//
// A vault holds assets for its owner.  Every asset inside carries an
// asset ref: the set of principals allowed to withdraw it, with an
// optional exclusive lock reserving the asset for a single principal.
// Deposits without an owner capability pass through the vault's
// deposit policy.  All operations run under one lock and commit their
// storage batch before touching in-memory state, so a failure leaves
// nothing behind.
package vault
