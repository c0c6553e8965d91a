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

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	vaultId, err := vaultid.FromString(c.String("vault"))
	if nil != err {
		return err
	}

	arguments := vaults.StatusArguments{
		VaultId:  vaultId,
		CheckTag: asset.TypeTag(c.String("tag")),
	}

	if s := c.String("asset"); "" != s {
		assetId, err := asset.AssetIDFromString(s)
		if nil != err {
			return err
		}
		arguments.AssetId = assetId
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.VaultStatus(&arguments)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
