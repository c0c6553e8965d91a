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

func runDeposit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	vaultId, err := vaultid.FromString(c.String("vault"))
	if nil != err {
		return err
	}

	tag := c.String("tag")
	if "" == tag {
		return fmt.Errorf("missing tag")
	}

	payload := []byte(c.String("payload"))
	if file := c.String("file"); "" != file {
		payload, err = ioutil.ReadFile(file)
		if nil != err {
			return err
		}
	}
	if 0 == len(payload) {
		return fmt.Errorf("missing payload")
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

	reply, err := client.Deposit(&vaults.DepositArguments{
		VaultId:    vaultId,
		Tag:        asset.TypeTag(tag),
		Payload:    payload,
		Capability: token,
	})
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
