// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/rpc/vaults"
	"github.com/custodia-inc/vaultd/vaultid"
)

// build the shared arguments for the listing commands
func authorizeArguments(c *cli.Context, m *metadata, needReceiver bool) (*vaults.AuthorizeArguments, error) {

	vaultId, err := vaultid.FromString(c.String("vault"))
	if nil != err {
		return nil, err
	}

	assetId, err := asset.AssetIDFromString(c.String("asset"))
	if nil != err {
		return nil, err
	}

	p := principal.Nobody
	receiver := c.String("receiver")
	if "" != receiver || needReceiver {
		p, err = resolvePrincipal(m, receiver)
		if nil != err {
			return nil, err
		}
	}

	token, err := optionalCapability(c.String("capability"))
	if nil != err {
		return nil, err
	}

	return &vaults.AuthorizeArguments{
		VaultId:    vaultId,
		Capability: token,
		AssetId:    assetId,
		Principal:  p,
		Exclusive:  c.Bool("exclusive"),
	}, nil
}

func runGrant(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	arguments, err := authorizeArguments(c, m, true)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Authorize(arguments)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runRevoke(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	arguments, err := authorizeArguments(c, m, true)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Revoke(arguments)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

// release is called by the listed principal itself, so the acting
// identity signs the request
func runRelease(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	vaultId, err := vaultid.FromString(c.String("vault"))
	if nil != err {
		return err
	}

	assetId, err := asset.AssetIDFromString(c.String("asset"))
	if nil != err {
		return err
	}

	holder, err := currentPrivate(c, m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Release(&vaults.ReleaseArguments{
		VaultId:   vaultId,
		AssetId:   assetId,
		Principal: holder.Principal,
	}, holder.PrivateKey)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runClear(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	arguments, err := authorizeArguments(c, m, false)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Clear(arguments)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
