// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the configuration file
//
// The configuration is a Lua script; its final expression is a table
// that is mapped onto a Go structure using gluamapper tags.
package configuration
