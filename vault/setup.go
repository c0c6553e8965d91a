// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/hook"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/vaultid"
)

// DepositPolicy - gate for capability-less deposits
type DepositPolicy struct {
	AllowAll bool
	Allowed  map[asset.TypeTag]struct{}
}

// Permits - check a tag against the policy
func (p *DepositPolicy) Permits(tag asset.TypeTag) bool {
	if p.AllowAll {
		return true
	}
	_, ok := p.Allowed[tag]
	return ok
}

// AssetRef - per-asset authorization registry entry
//
// invariant: exclusive implies exactly one principal in the set
type AssetRef struct {
	Tag        asset.TypeTag
	Exclusive  bool
	Principals map[principal.Principal]struct{}
}

// Vault - a custody container
type Vault struct {
	Id             vaultid.ID
	Owner          principal.Principal
	ownerDigest    capability.Digest
	permissionless bool
	policy         DepositPolicy
	assets         map[asset.AssetID]*asset.Asset
	refs           map[asset.AssetID]*AssetRef
}

// globals for this module
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	vaults      map[vaultid.ID]*Vault
	depositHook hook.DepositPolicy
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - start up the vault engine
//
// reloads all vault state from storage; a nil deposit hook leaves
// gating to each vault's own policy
func Initialise(depositHook hook.DepositPolicy) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("vault")
	globalData.log.Info("starting…")

	globalData.vaults = make(map[vaultid.ID]*Vault)
	globalData.depositHook = depositHook

	err := reload()
	if nil != err {
		return err
	}

	globalData.log.Infof("loaded %d vaults", len(globalData.vaults))

	globalData.initialised = true
	return nil
}

// Finalise - shut down the vault engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.vaults = nil
	globalData.depositHook = nil
	globalData.initialised = false
	return nil
}
