// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client RPC server setup
//
// provides a TLS listener carrying JSON-RPC requests for the
// vault, trading, funds and node services
package rpc
