// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/command/vault-cli/configuration"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.GlobalString("identity")
	if "" == name {
		return fmt.Errorf("missing identity name")
	}

	description := c.String("description")
	if "" == description {
		return fmt.Errorf("missing description")
	}

	// a receive-only identity has no private data
	if p := c.String("principal"); "" != p {
		err := m.config.AddReceiveOnlyIdentity(name, description, p)
		if nil != err {
			return err
		}
		m.config.DefaultIdentity = name
		m.save = true
		return nil
	}

	seed := c.String("seed")
	if "" == seed {
		var err error
		seed, err = configuration.NewSeed()
		if nil != err {
			return err
		}
	}

	password := c.GlobalString("password")
	if "" == password {
		var err error
		password, err = promptNewPassword()
		if nil != err {
			return err
		}
	}

	err := m.config.AddIdentity(name, description, seed, password)
	if nil != err {
		return err
	}

	m.config.DefaultIdentity = name
	m.save = true
	return nil
}
