// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/journal"
	"github.com/custodia-inc/vaultd/storage"
	"github.com/custodia-inc/vaultd/vaultid"
)

// SetPolicyAllowAll - switch the allow-everything flag
//
// while set, the allow-list is kept but not consulted
func SetPolicyAllowAll(vaultId vaultid.ID, token *capability.Token, allowAll bool) error {
	return updatePolicy(vaultId, token, func(v *Vault) error {
		v.policy.AllowAll = allowAll
		return nil
	})
}

// AllowTag - add a type tag to the allow-list
func AllowTag(vaultId vaultid.ID, token *capability.Token, tag asset.TypeTag) error {
	err := tag.Validate()
	if nil != err {
		return err
	}
	return updatePolicy(vaultId, token, func(v *Vault) error {
		v.policy.Allowed[tag] = struct{}{}
		return nil
	})
}

// DisallowTag - remove a type tag from the allow-list
func DisallowTag(vaultId vaultid.ID, token *capability.Token, tag asset.TypeTag) error {
	return updatePolicy(vaultId, token, func(v *Vault) error {
		delete(v.policy.Allowed, tag)
		return nil
	})
}

// owner-gated policy mutation with write-through
func updatePolicy(vaultId vaultid.ID, token *capability.Token, change func(*Vault) error) error {
	globalData.Lock()
	defer globalData.Unlock()

	v, err := get(vaultId)
	if nil != err {
		return err
	}
	if !v.ownerAuthorised(token) {
		return fault.NotAuthorized
	}

	err = change(v)
	if nil != err {
		return err
	}

	storage.Pool.Vaults.Put(vaultId.Bytes(), v.packRecord())
	journal.Record(journal.PolicyChanged, vaultId.Bytes())
	return nil
}
