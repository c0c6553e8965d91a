// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transfer - one-shot tickets tracking an asset in flight
//
// A withdrawal hands back a ticket alongside the asset.  The ticket
// must be resolved exactly once, either by re-depositing the asset
// into a vault or by trade settlement.  Finish acts as the guard: an
// operation that ends holding an unresolved ticket is reported as a
// protocol violation and must be aborted by the caller.
package transfer

import (
	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/principal"
)

// Request - a linear ticket for an asset between vaults
type Request struct {
	AssetId    asset.AssetID
	Originator principal.Principal
	metadata   map[string][]byte
	resolved   bool
}

// NewRequest - create a ticket for a just-withdrawn asset
func NewRequest(assetId asset.AssetID, originator principal.Principal) *Request {
	return &Request{
		AssetId:    assetId,
		Originator: originator,
		metadata:   make(map[string][]byte),
	}
}

// AttachMetadata - record a fact about the transfer
//
// one value per key for the life of the ticket
func (r *Request) AttachMetadata(key string, value []byte) error {
	if _, ok := r.metadata[key]; ok {
		return fault.DuplicateMetadata
	}
	r.metadata[key] = value
	return nil
}

// Metadata - look up an attached value
func (r *Request) Metadata(key string) ([]byte, bool) {
	value, ok := r.metadata[key]
	return value, ok
}

// Resolve - mark the ticket as settled
//
// called by the deposit or settlement path that consumed the asset
func (r *Request) Resolve() error {
	if r.resolved {
		return fault.TransferRequestResolved
	}
	r.resolved = true
	return nil
}

// IsResolved - whether the ticket has been settled
func (r *Request) IsResolved() bool {
	return r.resolved
}

// Finish - the resolution guard
//
// call when the operation that created the ticket is about to return
// successfully; a nil ticket is fine, an unresolved one is an error
// and the operation must be rolled back
func (r *Request) Finish() error {
	if nil == r {
		return nil
	}
	if !r.resolved {
		return fault.UnresolvedTransferRequest
	}
	return nil
}
