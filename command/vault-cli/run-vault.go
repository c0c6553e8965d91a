// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/rpc/vaults"
)

func runCreateVault(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner := principal.Nobody
	if !c.Bool("permissionless") {
		var err error
		owner, err = currentPrincipal(c, m)
		if nil != err {
			return err
		}
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.CreateVault(&vaults.CreateArguments{
		Owner: owner,
	})
	if nil != err {
		return err
	}

	// the capability printed here is the only copy, keep it safe
	printJson(m.w, reply)
	return nil
}
