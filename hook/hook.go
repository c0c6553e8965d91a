// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hook - collaborator interfaces supplied by the embedding host
//
// The engine never computes royalties and never extends deposit
// gating on its own; hosts plug behaviour in through these interfaces.
package hook

import (
	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/vaultid"
)

// DepositPolicy - external deposit gate
//
// when installed it replaces the vault's own allow-list for
// capability-less deposits
type DepositPolicy interface {
	Permits(vaultId vaultid.ID, tag asset.TypeTag) bool
}

// Settlement - royalty computation for trade settlement
//
// given the sale amount and the asset's type tag, returns the royalty
// to deduct and its beneficiary; a zero royalty or a Nobody
// beneficiary means no deduction
type Settlement interface {
	Royalty(amount uint64, tag asset.TypeTag) (uint64, principal.Principal)
}
