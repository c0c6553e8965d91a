// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault_test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/journal"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/storage"
	"github.com/custodia-inc/vaultd/vault"
	"github.com/custodia-inc/vaultd/vaultid"
)

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "vault-test")
	if nil != err {
		os.Exit(1)
	}

	logConfig := logger.Configuration{
		Directory: dir,
		File:      "test.log",
		Size:      50000,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logConfig); nil != err {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}

	if err := storage.Initialise(filepath.Join(dir, "test"), false); nil != err {
		panic(fmt.Sprintf("storage initialization failed: %s", err))
	}
	if err := journal.Initialise(); nil != err {
		panic(fmt.Sprintf("journal initialization failed: %s", err))
	}
	if err := vault.Initialise(nil); nil != err {
		panic(fmt.Sprintf("vault initialization failed: %s", err))
	}

	rc := m.Run()

	vault.Finalise()
	journal.Finalise()
	storage.Finalise()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

func makePrincipal(seed byte) principal.Principal {
	var p principal.Principal
	p[0] = seed
	p[31] = ^seed
	return p
}

func makeAsset(t *testing.T, tag asset.TypeTag, payload string) *asset.Asset {
	a, err := asset.New(tag, []byte(payload))
	assert.Nil(t, err, "asset creation error")
	return a
}

func makeVault(t *testing.T, owner principal.Principal) (vaultid.ID, capability.Token) {
	id, token, err := vault.Create(owner)
	assert.Nil(t, err, "vault creation error")
	return id, token
}

func TestCreate(t *testing.T) {
	owner := makePrincipal(1)
	id, _ := makeVault(t, owner)

	assert.True(t, vault.IsCustodyVault(id), "created vault not reported")
	assert.False(t, vault.IsCustodyVault(vaultid.ID{}), "unknown vault reported")

	actual, err := vault.OwnerOf(id)
	assert.Nil(t, err, "owner query error")
	assert.Equal(t, owner, actual, "owner mismatch")

	// fresh policy allows everything
	assert.True(t, vault.CanDeposit(id, "any/tag"), "fresh vault refused deposit")
}

func TestDepositGating(t *testing.T) {
	owner := makePrincipal(2)
	id, token := makeVault(t, owner)

	err := vault.SetPolicyAllowAll(id, &token, false)
	assert.Nil(t, err, "policy error")
	err = vault.AllowTag(id, &token, "art/print")
	assert.Nil(t, err, "policy error")

	// deposit gating must agree with CanDeposit
	assert.True(t, vault.CanDeposit(id, "art/print"), "allowed tag refused")
	assert.False(t, vault.CanDeposit(id, "game/sword"), "blocked tag allowed")

	printAsset := makeAsset(t, "art/print", "print payload")
	err = vault.Deposit(id, printAsset)
	assert.Nil(t, err, "deposit error")
	assert.True(t, vault.HasAsset(id, printAsset.Id), "asset not held")

	swordAsset := makeAsset(t, "game/sword", "sword payload")
	err = vault.Deposit(id, swordAsset)
	assert.Equal(t, fault.PolicyDenied, err, "blocked deposit accepted")

	// owner capability bypasses the policy
	err = vault.OwnerDeposit(id, token, swordAsset)
	assert.Nil(t, err, "owner deposit error")
	assert.True(t, vault.HasAsset(id, swordAsset.Id), "asset not held")

	// wrong capability is rejected
	otherToken, err := capability.New()
	assert.Nil(t, err, "token error")
	err = vault.OwnerDeposit(id, otherToken, makeAsset(t, "game/shield", "shield payload"))
	assert.Equal(t, fault.NotAuthorized, err, "forged capability accepted")

	// duplicate deposit is rejected
	err = vault.OwnerDeposit(id, token, printAsset)
	assert.Equal(t, fault.AssetAlreadyHeld, err, "duplicate deposit accepted")

	tag, err := vault.AssetType(id, printAsset.Id)
	assert.Nil(t, err, "type query error")
	assert.Equal(t, asset.TypeTag("art/print"), tag, "type mismatch")

	// disallow then recheck
	err = vault.DisallowTag(id, &token, "art/print")
	assert.Nil(t, err, "policy error")
	assert.False(t, vault.CanDeposit(id, "art/print"), "disallowed tag allowed")
}

func TestPolicyOwnerGated(t *testing.T) {
	id, _ := makeVault(t, makePrincipal(3))

	err := vault.SetPolicyAllowAll(id, nil, false)
	assert.Equal(t, fault.NotAuthorized, err, "ungated policy mutation accepted")

	forged, err := capability.New()
	assert.Nil(t, err, "token error")
	err = vault.AllowTag(id, &forged, "art/print")
	assert.Equal(t, fault.NotAuthorized, err, "forged policy mutation accepted")
}

func TestAuthorizeAndRevoke(t *testing.T) {
	id, token := makeVault(t, makePrincipal(4))
	alice := makePrincipal(5)
	bob := makePrincipal(6)

	a := makeAsset(t, "art/print", "authorize target")
	err := vault.Deposit(id, a)
	assert.Nil(t, err, "deposit error")

	err = vault.Authorize(id, &token, a.Id, alice)
	assert.Nil(t, err, "authorize error")

	// idempotent
	err = vault.Authorize(id, &token, a.Id, alice)
	assert.Nil(t, err, "repeat authorize error")

	err = vault.Authorize(id, &token, a.Id, bob)
	assert.Nil(t, err, "authorize error")

	listed, exclusive, err := vault.Listed(id, a.Id)
	assert.Nil(t, err, "listing query error")
	assert.False(t, exclusive, "unexpected exclusive flag")
	assert.ElementsMatch(t, []principal.Principal{alice, bob}, listed, "listing mismatch")

	err = vault.Revoke(id, &token, a.Id, bob)
	assert.Nil(t, err, "revoke error")

	listed, _, err = vault.Listed(id, a.Id)
	assert.Nil(t, err, "listing query error")
	assert.ElementsMatch(t, []principal.Principal{alice}, listed, "listing mismatch")

	err = vault.ClearAll(id, &token, a.Id)
	assert.Nil(t, err, "clear error")

	listed, _, err = vault.Listed(id, a.Id)
	assert.Nil(t, err, "listing query error")
	assert.Empty(t, listed, "listing not cleared")

	// missing asset
	err = vault.Authorize(id, &token, asset.NewAssetID([]byte("absent")), alice)
	assert.Equal(t, fault.MissingAsset, err, "authorize on absent asset accepted")
}

func TestExclusiveLock(t *testing.T) {
	id, token := makeVault(t, makePrincipal(7))
	alice := makePrincipal(8)
	bob := makePrincipal(9)

	a := makeAsset(t, "art/print", "exclusive target")
	err := vault.Deposit(id, a)
	assert.Nil(t, err, "deposit error")

	// non-empty listing blocks an exclusive grant
	err = vault.Authorize(id, &token, a.Id, alice)
	assert.Nil(t, err, "authorize error")
	err = vault.AuthorizeExclusive(id, &token, a.Id, bob)
	assert.Equal(t, fault.AlreadyListed, err, "exclusive over listing accepted")

	err = vault.ClearAll(id, &token, a.Id)
	assert.Nil(t, err, "clear error")

	err = vault.AuthorizeExclusive(id, &token, a.Id, bob)
	assert.Nil(t, err, "exclusive error")

	listed, exclusive, err := vault.Listed(id, a.Id)
	assert.Nil(t, err, "listing query error")
	assert.True(t, exclusive, "exclusive flag missing")
	assert.Equal(t, []principal.Principal{bob}, listed, "listing mismatch")

	// everything owner-gated is refused while locked
	err = vault.Authorize(id, &token, a.Id, alice)
	assert.Equal(t, fault.AlreadyExclusivelyListed, err, "authorize under lock accepted")
	err = vault.AuthorizeExclusive(id, &token, a.Id, alice)
	assert.Equal(t, fault.AlreadyExclusivelyListed, err, "double exclusive accepted")
	err = vault.Revoke(id, &token, a.Id, bob)
	assert.Equal(t, fault.AlreadyExclusivelyListed, err, "revoke under lock accepted")
	err = vault.ClearAll(id, &token, a.Id)
	assert.Equal(t, fault.AlreadyExclusivelyListed, err, "clear under lock accepted")

	// only the listed principal can release
	err = vault.ReleaseExclusive(id, a.Id, alice)
	assert.Equal(t, fault.NotAuthorized, err, "foreign release accepted")
	err = vault.ReleaseExclusive(id, a.Id, bob)
	assert.Nil(t, err, "release error")

	listed, exclusive, err = vault.Listed(id, a.Id)
	assert.Nil(t, err, "listing query error")
	assert.False(t, exclusive, "exclusive flag not cleared")
	assert.Empty(t, listed, "listing not cleared")

	// a released lock cannot be released again
	err = vault.ReleaseExclusive(id, a.Id, bob)
	assert.Equal(t, fault.NotAuthorized, err, "double release accepted")

	// lock gone, owner operations work again
	err = vault.Authorize(id, &token, a.Id, alice)
	assert.Nil(t, err, "authorize after release error")
}

func TestWithdraw(t *testing.T) {
	id, token := makeVault(t, makePrincipal(10))
	alice := makePrincipal(11)
	mallory := makePrincipal(12)

	a := makeAsset(t, "art/print", "withdraw target")
	err := vault.Deposit(id, a)
	assert.Nil(t, err, "deposit error")

	// unlisted principal without capability is refused
	_, _, err = vault.Withdraw(id, a.Id, mallory, nil)
	assert.Equal(t, fault.NotAuthorized, err, "unauthorized withdraw accepted")

	// listed principal succeeds
	err = vault.Authorize(id, &token, a.Id, alice)
	assert.Nil(t, err, "authorize error")

	got, req, err := vault.Withdraw(id, a.Id, alice, nil)
	assert.Nil(t, err, "withdraw error")
	assert.Equal(t, a, got, "asset mismatch")
	assert.NotNil(t, req, "missing ticket")
	assert.Equal(t, a.Id, req.AssetId, "ticket asset mismatch")
	assert.Equal(t, alice, req.Originator, "ticket originator mismatch")

	by, ok := req.Metadata("authorized-by")
	assert.True(t, ok, "missing authorization metadata")
	assert.Equal(t, []byte("listing"), by, "authorization metadata mismatch")

	// the ref is consumed
	assert.False(t, vault.HasAsset(id, a.Id), "asset still held")
	_, _, err = vault.Withdraw(id, a.Id, alice, nil)
	assert.Equal(t, fault.MissingAsset, err, "double withdraw accepted")

	// unresolved ticket fails the guard, resolution fixes it
	assert.Equal(t, fault.UnresolvedTransferRequest, req.Finish(), "unresolved ticket passed guard")
	assert.Nil(t, req.Resolve(), "resolve error")
	assert.Nil(t, req.Finish(), "resolved ticket failed guard")
}

func TestWithdrawByOwner(t *testing.T) {
	id, token := makeVault(t, makePrincipal(13))

	a := makeAsset(t, "art/print", "owner withdraw target")
	err := vault.Deposit(id, a)
	assert.Nil(t, err, "deposit error")

	got, req, err := vault.Withdraw(id, a.Id, makePrincipal(13), &token)
	assert.Nil(t, err, "withdraw error")
	assert.Equal(t, a, got, "asset mismatch")

	by, _ := req.Metadata("authorized-by")
	assert.Equal(t, []byte("owner"), by, "authorization metadata mismatch")

	// re-deposit resolves the ticket
	err = vault.Redeposit(id, a, req)
	assert.Nil(t, err, "redeposit error")
	assert.True(t, req.IsResolved(), "ticket not resolved")
	assert.True(t, vault.HasAsset(id, a.Id), "asset not back")

	// a resolved ticket cannot be replayed
	_, replay, err := vault.Withdraw(id, a.Id, makePrincipal(13), &token)
	assert.Nil(t, err, "withdraw error")
	err = vault.Redeposit(id, a, req)
	assert.Equal(t, fault.TransferRequestResolved, err, "stale ticket accepted")

	err = vault.Redeposit(id, a, replay)
	assert.Nil(t, err, "redeposit error")
}

func TestPermissionlessVault(t *testing.T) {
	id, _ := makeVault(t, principal.Nobody)

	a := makeAsset(t, "art/print", "permissionless target")
	err := vault.Deposit(id, a)
	assert.Nil(t, err, "deposit error")

	// owner gate always passes without a token
	err = vault.SetPolicyAllowAll(id, nil, false)
	assert.Nil(t, err, "policy error")
	err = vault.Authorize(id, nil, a.Id, makePrincipal(14))
	assert.Nil(t, err, "authorize error")

	_, req, err := vault.Withdraw(id, a.Id, makePrincipal(15), nil)
	assert.Nil(t, err, "withdraw error")
	assert.Nil(t, req.Resolve(), "resolve error")
}

func TestTransferBetweenVaults(t *testing.T) {
	owner := makePrincipal(16)
	source, token := makeVault(t, owner)
	target, targetToken := makeVault(t, owner)

	// target policy blocks everything; free transfer must skip it
	err := vault.SetPolicyAllowAll(target, &targetToken, false)
	assert.Nil(t, err, "policy error")

	a := makeAsset(t, "art/print", "transfer target")
	err = vault.Deposit(source, a)
	assert.Nil(t, err, "deposit error")

	err = vault.TransferBetweenVaults(source, target, a.Id, owner, &token)
	assert.Nil(t, err, "transfer error")
	assert.False(t, vault.HasAsset(source, a.Id), "asset still in source")
	assert.True(t, vault.HasAsset(target, a.Id), "asset not in target")

	// second transfer finds nothing
	err = vault.TransferBetweenVaults(source, target, a.Id, owner, &token)
	assert.Equal(t, fault.MissingAsset, err, "double transfer accepted")
}

func TestTransferDifferentOwners(t *testing.T) {
	source, token := makeVault(t, makePrincipal(17))
	target, _ := makeVault(t, makePrincipal(18))

	a := makeAsset(t, "art/print", "cross owner target")
	err := vault.Deposit(source, a)
	assert.Nil(t, err, "deposit error")

	err = vault.TransferBetweenVaults(source, target, a.Id, makePrincipal(17), &token)
	assert.Equal(t, fault.NotOwner, err, "cross owner transfer accepted")
	assert.True(t, vault.HasAsset(source, a.Id), "failed transfer moved asset")
}

func TestSettle(t *testing.T) {
	sellerVault, sellerToken := makeVault(t, makePrincipal(19))
	buyer := makePrincipal(20)
	buyerVault, _ := makeVault(t, buyer)

	a := makeAsset(t, "art/print", "settle target")
	err := vault.Deposit(sellerVault, a)
	assert.Nil(t, err, "deposit error")

	// forged capability moves nothing
	forged, err := capability.New()
	assert.Nil(t, err, "token error")
	_, err = vault.Settle(sellerVault, buyerVault, forged, a.Id, buyer)
	assert.Equal(t, fault.NotAuthorized, err, "forged settlement accepted")
	assert.True(t, vault.HasAsset(sellerVault, a.Id), "failed settlement moved asset")

	tag, err := vault.Settle(sellerVault, buyerVault, sellerToken, a.Id, buyer)
	assert.Nil(t, err, "settlement error")
	assert.Equal(t, asset.TypeTag("art/print"), tag, "tag mismatch")
	assert.False(t, vault.HasAsset(sellerVault, a.Id), "asset still with seller")
	assert.True(t, vault.HasAsset(buyerVault, a.Id), "asset not with buyer")

	// consumed ref cannot settle again
	_, err = vault.Settle(sellerVault, buyerVault, sellerToken, a.Id, buyer)
	assert.Equal(t, fault.MissingAsset, err, "double settlement accepted")
}

func TestRedepositMismatchedTicket(t *testing.T) {
	id, token := makeVault(t, makePrincipal(21))

	a := makeAsset(t, "art/print", "mismatch target")
	b := makeAsset(t, "art/print", "other payload")
	err := vault.Deposit(id, a)
	assert.Nil(t, err, "deposit error")

	_, req, err := vault.Withdraw(id, a.Id, makePrincipal(21), &token)
	assert.Nil(t, err, "withdraw error")

	err = vault.Redeposit(id, b, req)
	assert.Equal(t, fault.TypeMismatch, err, "mismatched ticket accepted")

	err = vault.Redeposit(id, a, req)
	assert.Nil(t, err, "redeposit error")
}
