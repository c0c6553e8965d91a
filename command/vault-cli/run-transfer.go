// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/rpc/vaults"
	"github.com/custodia-inc/vaultd/vaultid"
)

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	source, err := vaultid.FromString(c.String("source"))
	if nil != err {
		return err
	}

	target, err := vaultid.FromString(c.String("target"))
	if nil != err {
		return err
	}

	assetId, err := asset.AssetIDFromString(c.String("asset"))
	if nil != err {
		return err
	}

	owner, err := currentPrivate(c, m)
	if nil != err {
		return err
	}

	token, err := optionalCapability(c.String("capability"))
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Transfer(&vaults.TransferArguments{
		Source:     source,
		Target:     target,
		AssetId:    assetId,
		Principal:  owner.Principal,
		Capability: token,
	}, owner.PrivateKey)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
