// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - the Node JSON-RPC service
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/custodia-inc/vaultd/counter"
	"github.com/custodia-inc/vaultd/journal"
	"github.com/custodia-inc/vaultd/messagebus"
	"github.com/custodia-inc/vaultd/rpc/ratelimit"
	"github.com/custodia-inc/vaultd/vault"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	counter *counter.Counter
}

// New - create the service
func New(log *logger.L, start time.Time, version string, rpcCount *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		counter: rpcCount,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Vaults        int    `json:"vaults"`
	Journal       uint64 `json:"journal"`
	RPCs          uint64 `json:"rpcs"`
	DroppedEvents uint64 `json:"droppedEvents"`
	Version       string `json:"version"`
	Uptime        string `json:"uptime"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Vaults = vault.Count()
	reply.Journal = journal.Sequence()
	reply.RPCs = node.counter.Uint64()
	reply.DroppedEvents = messagebus.Dropped()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
