// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// summary of an identity without its encrypted data
type identityInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Principal   string `json:"principal"`
	HasKey      bool   `json:"hasKey"`
}

type infoReply struct {
	DefaultIdentity string         `json:"default_identity"`
	Connections     []string       `json:"connections"`
	Identities      []identityInfo `json:"identities"`
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	out := infoReply{
		DefaultIdentity: m.config.DefaultIdentity,
		Connections:     m.config.Connections,
		Identities:      make([]identityInfo, 0, len(m.config.Identities)),
	}

	for name, id := range m.config.Identities {
		out.Identities = append(out.Identities, identityInfo{
			Name:        name,
			Description: id.Description,
			Principal:   id.Principal,
			HasKey:      "" != id.Data,
		})
	}

	printJson(m.w, out)
	return nil
}
