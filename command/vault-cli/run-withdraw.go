// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/rpc/vaults"
	"github.com/custodia-inc/vaultd/vaultid"
)

func runWithdraw(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	vaultId, err := vaultid.FromString(c.String("vault"))
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

	reply, err := client.Withdraw(&vaults.WithdrawArguments{
		VaultId:    vaultId,
		AssetId:    assetId,
		Principal:  owner.Principal,
		Capability: token,
	}, owner.PrivateKey)
	if nil != err {
		return err
	}

	if output := c.String("output"); "" != output {
		err = ioutil.WriteFile(output, reply.Payload, 0600)
		if nil != err {
			return err
		}
		fmt.Fprintf(m.w, "payload written to: %q\n", output)
	}

	printJson(m.w, struct {
		Tag          asset.TypeTag `json:"tag"`
		AuthorizedBy string        `json:"authorizedBy"`
		PayloadBytes int           `json:"payloadBytes"`
	}{
		Tag:          reply.Tag,
		AuthorizedBy: reply.AuthorizedBy,
		PayloadBytes: len(reply.Payload),
	})
	return nil
}
