// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"golang.org/x/crypto/ed25519"

	"github.com/custodia-inc/vaultd/rpc/vaults"
)

// CreateVault - make a new vault, the reply holds the only copy of
// the capability
func (c *Client) CreateVault(arguments *vaults.CreateArguments) (*vaults.CreateReply, error) {
	var reply vaults.CreateReply
	if err := c.client.Call("Vault.Create", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Create", reply)
	return &reply, nil
}

// Deposit - place an asset into a vault
func (c *Client) Deposit(arguments *vaults.DepositArguments) (*vaults.DepositReply, error) {
	var reply vaults.DepositReply
	if err := c.client.Call("Vault.Deposit", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Deposit", reply)
	return &reply, nil
}

// SetPolicy - apply policy changes to a vault
func (c *Client) SetPolicy(arguments *vaults.SetPolicyArguments) (*vaults.SetPolicyReply, error) {
	var reply vaults.SetPolicyReply
	if err := c.client.Call("Vault.SetPolicy", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.SetPolicy", reply)
	return &reply, nil
}

// Authorize - list a principal on an asset
func (c *Client) Authorize(arguments *vaults.AuthorizeArguments) (*vaults.AuthorizeReply, error) {
	var reply vaults.AuthorizeReply
	if err := c.client.Call("Vault.Authorize", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Authorize", reply)
	return &reply, nil
}

// Revoke - remove a principal from a listing
func (c *Client) Revoke(arguments *vaults.AuthorizeArguments) (*vaults.AuthorizeReply, error) {
	var reply vaults.AuthorizeReply
	if err := c.client.Call("Vault.Revoke", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Revoke", reply)
	return &reply, nil
}

// Release - free an exclusive lock, signed by the listed principal
func (c *Client) Release(arguments *vaults.ReleaseArguments, key ed25519.PrivateKey) (*vaults.AuthorizeReply, error) {
	arguments.Signature = ed25519.Sign(key, arguments.SignatureData())

	var reply vaults.AuthorizeReply
	if err := c.client.Call("Vault.Release", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Release", reply)
	return &reply, nil
}

// Clear - empty a listing
func (c *Client) Clear(arguments *vaults.AuthorizeArguments) (*vaults.AuthorizeReply, error) {
	var reply vaults.AuthorizeReply
	if err := c.client.Call("Vault.Clear", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Clear", reply)
	return &reply, nil
}

// Withdraw - take an asset out of custody, signed by the principal
func (c *Client) Withdraw(arguments *vaults.WithdrawArguments, key ed25519.PrivateKey) (*vaults.WithdrawReply, error) {
	arguments.Signature = ed25519.Sign(key, arguments.SignatureData())

	var reply vaults.WithdrawReply
	if err := c.client.Call("Vault.Withdraw", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Withdraw", reply)
	return &reply, nil
}

// Transfer - move an asset between same-owner vaults, signed by the
// principal
func (c *Client) Transfer(arguments *vaults.TransferArguments, key ed25519.PrivateKey) (*vaults.TransferReply, error) {
	arguments.Signature = ed25519.Sign(key, arguments.SignatureData())

	var reply vaults.TransferReply
	if err := c.client.Call("Vault.Transfer", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Transfer", reply)
	return &reply, nil
}

// VaultStatus - read-only vault queries
func (c *Client) VaultStatus(arguments *vaults.StatusArguments) (*vaults.StatusReply, error) {
	var reply vaults.StatusReply
	if err := c.client.Call("Vault.Status", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Vault.Status", reply)
	return &reply, nil
}
