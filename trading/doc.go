// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trading - escrowed bid/ask settlement
//
// A buyer reserves funds against a target asset and vault; the seller
// matches with an owner capability.  Matching moves the asset and
// splits the reservation between seller, commissions and royalty in
// one operation.  Every bid closes exactly once, by match or cancel.
package trading
