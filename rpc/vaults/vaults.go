// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vaults - the Vault JSON-RPC service
package vaults

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/rpc/ratelimit"
	"github.com/custodia-inc/vaultd/vault"
	"github.com/custodia-inc/vaultd/vaultid"
)

const (
	rateLimitVault = 200
	rateBurstVault = 100
)

// Vault - type for RPC calls
type Vault struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the service
func New(log *logger.L) *Vault {
	return &Vault{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitVault, rateBurstVault),
	}
}

// ---

// CreateArguments - owner of the new vault, Nobody for permissionless
type CreateArguments struct {
	Owner principal.Principal `json:"owner"`
}

// CreateReply - the new vault and the only copy of its capability
type CreateReply struct {
	VaultId    vaultid.ID       `json:"vaultId"`
	Capability capability.Token `json:"capability"`
}

// Create - make a new empty vault
func (v *Vault) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	vaultId, token, err := vault.Create(arguments.Owner)
	if nil != err {
		return err
	}
	reply.VaultId = vaultId
	reply.Capability = token
	return nil
}

// ---

// DepositArguments - asset to store; a capability bypasses the policy
type DepositArguments struct {
	VaultId    vaultid.ID        `json:"vaultId"`
	Tag        asset.TypeTag     `json:"tag"`
	Payload    []byte            `json:"payload"`
	Capability *capability.Token `json:"capability,omitempty"`
}

// DepositReply - the computed asset id
type DepositReply struct {
	AssetId asset.AssetID `json:"assetId"`
}

// Deposit - place an asset into a vault
func (v *Vault) Deposit(arguments *DepositArguments, reply *DepositReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	a, err := asset.New(arguments.Tag, arguments.Payload)
	if nil != err {
		return err
	}

	if nil == arguments.Capability {
		err = vault.Deposit(arguments.VaultId, a)
	} else {
		err = vault.OwnerDeposit(arguments.VaultId, *arguments.Capability, a)
	}
	if nil != err {
		return err
	}
	reply.AssetId = a.Id
	return nil
}

// ---

// SetPolicyArguments - owner-gated policy mutation
type SetPolicyArguments struct {
	VaultId    vaultid.ID        `json:"vaultId"`
	Capability *capability.Token `json:"capability,omitempty"`
	AllowAll   *bool             `json:"allowAll,omitempty"`
	Allow      []asset.TypeTag   `json:"allow,omitempty"`
	Disallow   []asset.TypeTag   `json:"disallow,omitempty"`
}

// SetPolicyReply - success indication
type SetPolicyReply struct {
	OK bool `json:"ok"`
}

// SetPolicy - apply one or more policy changes
func (v *Vault) SetPolicy(arguments *SetPolicyArguments, reply *SetPolicyReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	if nil != arguments.AllowAll {
		err := vault.SetPolicyAllowAll(arguments.VaultId, arguments.Capability, *arguments.AllowAll)
		if nil != err {
			return err
		}
	}
	for _, tag := range arguments.Allow {
		err := vault.AllowTag(arguments.VaultId, arguments.Capability, tag)
		if nil != err {
			return err
		}
	}
	for _, tag := range arguments.Disallow {
		err := vault.DisallowTag(arguments.VaultId, arguments.Capability, tag)
		if nil != err {
			return err
		}
	}
	reply.OK = true
	return nil
}

// ---

// AuthorizeArguments - owner-gated listing change
type AuthorizeArguments struct {
	VaultId    vaultid.ID          `json:"vaultId"`
	Capability *capability.Token   `json:"capability,omitempty"`
	AssetId    asset.AssetID       `json:"assetId"`
	Principal  principal.Principal `json:"principal"`
	Exclusive  bool                `json:"exclusive"`
}

// AuthorizeReply - success indication
type AuthorizeReply struct {
	OK bool `json:"ok"`
}

// Authorize - list a principal, optionally with an exclusive lock
func (v *Vault) Authorize(arguments *AuthorizeArguments, reply *AuthorizeReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	var err error
	if arguments.Exclusive {
		err = vault.AuthorizeExclusive(arguments.VaultId, arguments.Capability, arguments.AssetId, arguments.Principal)
	} else {
		err = vault.Authorize(arguments.VaultId, arguments.Capability, arguments.AssetId, arguments.Principal)
	}
	if nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// Revoke - remove a principal from a listing
func (v *Vault) Revoke(arguments *AuthorizeArguments, reply *AuthorizeReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	err := vault.Revoke(arguments.VaultId, arguments.Capability, arguments.AssetId, arguments.Principal)
	if nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// ReleaseArguments - free an exclusive lock
//
// signed by the listed principal, the only party allowed to release
type ReleaseArguments struct {
	VaultId   vaultid.ID          `json:"vaultId"`
	AssetId   asset.AssetID       `json:"assetId"`
	Principal principal.Principal `json:"principal"`
	Signature []byte              `json:"signature"`
}

// SignatureData - the canonical bytes covered by the signature
func (arguments *ReleaseArguments) SignatureData() []byte {
	data := []byte("vaultd.release")
	data = append(data, arguments.VaultId.Bytes()...)
	data = append(data, arguments.AssetId.Bytes()...)
	data = append(data, arguments.Principal.Bytes()...)
	return data
}

// Release - free an exclusive lock, caller must be the listed principal
func (v *Vault) Release(arguments *ReleaseArguments, reply *AuthorizeReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	if !arguments.Principal.Verify(arguments.SignatureData(), arguments.Signature) {
		return fault.InvalidSignature
	}

	err := vault.ReleaseExclusive(arguments.VaultId, arguments.AssetId, arguments.Principal)
	if nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// Clear - empty a listing
func (v *Vault) Clear(arguments *AuthorizeArguments, reply *AuthorizeReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	err := vault.ClearAll(arguments.VaultId, arguments.Capability, arguments.AssetId)
	if nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// ---

// WithdrawArguments - take an asset out of custody
//
// the signature proves control of the principal; without one only a
// valid owner capability can authorize the withdrawal
type WithdrawArguments struct {
	VaultId    vaultid.ID          `json:"vaultId"`
	AssetId    asset.AssetID       `json:"assetId"`
	Principal  principal.Principal `json:"principal"`
	Capability *capability.Token   `json:"capability,omitempty"`
	Signature  []byte              `json:"signature,omitempty"`
}

// SignatureData - the canonical bytes covered by the signature
func (arguments *WithdrawArguments) SignatureData() []byte {
	data := []byte("vaultd.withdraw")
	data = append(data, arguments.VaultId.Bytes()...)
	data = append(data, arguments.AssetId.Bytes()...)
	data = append(data, arguments.Principal.Bytes()...)
	return data
}

// WithdrawReply - the released asset
type WithdrawReply struct {
	Tag          asset.TypeTag `json:"tag"`
	Payload      []byte        `json:"payload"`
	AuthorizedBy string        `json:"authorizedBy"`
}

// Withdraw - release an asset to the caller
//
// custody ends here, so the transfer ticket resolves on delivery
func (v *Vault) Withdraw(arguments *WithdrawArguments, reply *WithdrawReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	// a claimed principal only counts when the request is signed by it
	p := principal.Nobody
	if 0 != len(arguments.Signature) {
		if !arguments.Principal.Verify(arguments.SignatureData(), arguments.Signature) {
			return fault.InvalidSignature
		}
		p = arguments.Principal
	} else if nil == arguments.Capability {
		return fault.InvalidSignature
	}

	a, req, err := vault.Withdraw(arguments.VaultId, arguments.AssetId, p, arguments.Capability)
	if nil != err {
		return err
	}

	err = req.Resolve()
	if nil == err {
		err = req.Finish()
	}
	if nil != err {
		v.Log.Criticalf("withdraw ticket failure: %s", err)
		return fault.DataInconsistent
	}

	by, _ := req.Metadata("authorized-by")
	reply.Tag = a.Tag
	reply.Payload = a.Payload
	reply.AuthorizedBy = string(by)
	return nil
}

// ---

// TransferArguments - move an asset between same-owner vaults
type TransferArguments struct {
	Source     vaultid.ID          `json:"source"`
	Target     vaultid.ID          `json:"target"`
	AssetId    asset.AssetID       `json:"assetId"`
	Principal  principal.Principal `json:"principal"`
	Capability *capability.Token   `json:"capability,omitempty"`
	Signature  []byte              `json:"signature,omitempty"`
}

// SignatureData - the canonical bytes covered by the signature
func (arguments *TransferArguments) SignatureData() []byte {
	data := []byte("vaultd.transfer")
	data = append(data, arguments.Source.Bytes()...)
	data = append(data, arguments.Target.Bytes()...)
	data = append(data, arguments.AssetId.Bytes()...)
	data = append(data, arguments.Principal.Bytes()...)
	return data
}

// TransferReply - success indication
type TransferReply struct {
	OK bool `json:"ok"`
}

// Transfer - atomic withdraw and re-deposit
func (v *Vault) Transfer(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	// a claimed principal only counts when the request is signed by it
	p := principal.Nobody
	if 0 != len(arguments.Signature) {
		if !arguments.Principal.Verify(arguments.SignatureData(), arguments.Signature) {
			return fault.InvalidSignature
		}
		p = arguments.Principal
	} else if nil == arguments.Capability {
		return fault.InvalidSignature
	}

	err := vault.TransferBetweenVaults(arguments.Source, arguments.Target, arguments.AssetId, p, arguments.Capability)
	if nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// ---

// StatusArguments - read-only queries about a vault
type StatusArguments struct {
	VaultId  vaultid.ID    `json:"vaultId"`
	AssetId  asset.AssetID `json:"assetId,omitempty"`
	CheckTag asset.TypeTag `json:"checkTag,omitempty"`
}

// StatusReply - vault and asset state
type StatusReply struct {
	Exists     bool                  `json:"exists"`
	HasAsset   bool                  `json:"hasAsset"`
	Tag        asset.TypeTag         `json:"tag,omitempty"`
	Listed     []principal.Principal `json:"listed,omitempty"`
	Exclusive  bool                  `json:"exclusive"`
	CanDeposit bool                  `json:"canDeposit"`
}

// Status - vault queries in one call
func (v *Vault) Status(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	reply.Exists = vault.IsCustodyVault(arguments.VaultId)
	if !reply.Exists {
		return nil
	}

	if "" != arguments.CheckTag {
		reply.CanDeposit = vault.CanDeposit(arguments.VaultId, arguments.CheckTag)
	}

	zero := asset.AssetID{}
	if zero != arguments.AssetId {
		reply.HasAsset = vault.HasAsset(arguments.VaultId, arguments.AssetId)
		if reply.HasAsset {
			tag, err := vault.AssetType(arguments.VaultId, arguments.AssetId)
			if nil != err {
				return err
			}
			listed, exclusive, err := vault.Listed(arguments.VaultId, arguments.AssetId)
			if nil != err {
				return err
			}
			reply.Tag = tag
			reply.Listed = listed
			reply.Exclusive = exclusive
		}
	}
	return nil
}
