// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/rpc/vaults"
	"github.com/custodia-inc/vaultd/vaultid"
)

func runPolicy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	vaultId, err := vaultid.FromString(c.String("vault"))
	if nil != err {
		return err
	}

	token, err := optionalCapability(c.String("capability"))
	if nil != err {
		return err
	}

	arguments := vaults.SetPolicyArguments{
		VaultId:    vaultId,
		Capability: token,
	}

	switch c.String("allow-all") {
	case "":
	case "true", "yes":
		t := true
		arguments.AllowAll = &t
	case "false", "no":
		f := false
		arguments.AllowAll = &f
	default:
		return fmt.Errorf("allow-all: %q can only be true/false", c.String("allow-all"))
	}

	for _, tag := range c.StringSlice("allow") {
		arguments.Allow = append(arguments.Allow, asset.TypeTag(tag))
	}
	for _, tag := range c.StringSlice("disallow") {
		arguments.Disallow = append(arguments.Disallow, asset.TypeTag(tag))
	}

	if nil == arguments.AllowAll && 0 == len(arguments.Allow) && 0 == len(arguments.Disallow) {
		return fmt.Errorf("no policy change requested")
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.SetPolicy(&arguments)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
