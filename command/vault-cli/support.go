// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/command/vault-cli/configuration"
	"github.com/custodia-inc/vaultd/command/vault-cli/rpccalls"
	"github.com/custodia-inc/vaultd/principal"
)

// check if file exists, return true if it is a directory
func checkFileExists(name string) (bool, error) {
	fileInfo, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return fileInfo.IsDir(), nil
}

// connect to the first reachable vaultd from the configuration
func getClient(m *metadata) (*rpccalls.Client, error) {
	if 0 == len(m.config.Connections) {
		return nil, fmt.Errorf("no connections in configuration")
	}

	var lastError error
	for _, connect := range m.config.Connections {
		client, err := rpccalls.NewClient(connect, m.verbose, m.e)
		if nil == err {
			return client, nil
		}
		lastError = err
	}
	return nil, lastError
}

// the name of the acting identity: --identity flag or the default
func identityName(c *cli.Context, m *metadata) string {
	name := c.GlobalString("identity")
	if "" == name {
		name = m.config.DefaultIdentity
	}
	return name
}

// the principal of the acting identity
func currentPrincipal(c *cli.Context, m *metadata) (principal.Principal, error) {
	return m.config.Principal(identityName(c, m))
}

// the decrypted private data of the acting identity, for signing
func currentPrivate(c *cli.Context, m *metadata) (*configuration.Private, error) {
	password := c.GlobalString("password")
	if "" == password {
		var err error
		password, err = promptPassword()
		if nil != err {
			return nil, err
		}
	}
	return m.config.Private(password, identityName(c, m))
}

// resolve an identity name or a base58 string to a principal
func resolvePrincipal(m *metadata, s string) (principal.Principal, error) {
	if "" == s {
		return principal.Nobody, fmt.Errorf("missing identity or principal")
	}
	if p, err := m.config.Principal(s); nil == err {
		return p, nil
	}
	return principal.FromString(s)
}

// decode an optional base58 capability flag, nil when absent
func optionalCapability(s string) (*capability.Token, error) {
	if "" == s {
		return nil, nil
	}
	token, err := capability.TokenFromString(s)
	if nil != err {
		return nil, err
	}
	return &token, nil
}

// output a JSON dump of a result
func printJson(handle io.Writer, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(handle, "marshal error: %s\n", err)
		return
	}
	fmt.Fprintf(handle, "%s\n", b)
}
