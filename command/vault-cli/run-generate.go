// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/command/vault-cli/configuration"
)

func runGenerate(c *cli.Context) error {

	seed, err := configuration.NewSeed()
	if nil != err {
		return err
	}

	p, err := configuration.PrincipalFromSeed(seed)
	if nil != err {
		return err
	}

	out := struct {
		Seed      string `json:"seed"`
		Principal string `json:"principal"`
	}{
		Seed:      seed,
		Principal: p.String(),
	}
	printJson(c.App.Writer, out)
	return nil
}
