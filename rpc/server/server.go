// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - assemble the JSON-RPC server from its services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/custodia-inc/vaultd/counter"
	"github.com/custodia-inc/vaultd/rpc/funding"
	"github.com/custodia-inc/vaultd/rpc/node"
	"github.com/custodia-inc/vaultd/rpc/trades"
	"github.com/custodia-inc/vaultd/rpc/vaults"
)

// Create - create and register the services
//
// method names seen on the wire are: Vault.*, Trading.*, Funds.*, Node.*
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {
	start := time.Now().UTC()

	s := rpc.NewServer()

	_ = s.Register(vaults.New(log))
	_ = s.Register(trades.New(log))
	_ = s.Register(funding.New(log))
	_ = s.Register(node.New(log, start, version, rpcCount))

	return s
}
