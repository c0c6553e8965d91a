// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/command/vault-cli/configuration"
)

func runSetup(c *cli.Context) error {

	m, ok := c.App.Metadata["config"].(*metadata)
	if !ok {
		return fmt.Errorf("missing configuration")
	}

	connect := c.String("connect")
	if "" == connect {
		return fmt.Errorf("missing connect")
	}

	description := c.String("description")
	if "" == description {
		return fmt.Errorf("missing description")
	}

	name := c.GlobalString("identity")
	if "" == name {
		name = "default"
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

	conf := &configuration.Configuration{
		DefaultIdentity: name,
		Connections:     []string{connect},
		Identities:      map[string]configuration.Identity{},
	}

	err := conf.AddIdentity(name, description, seed, password)
	if nil != err {
		return err
	}

	// ensure the configuration directory exists
	dir, _ := filepath.Split(m.file)
	err = os.MkdirAll(dir, 0700)
	if nil != err {
		return err
	}

	m.config = conf
	m.save = true
	return nil
}
