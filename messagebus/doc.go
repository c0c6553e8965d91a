// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - fan-in queue from the engine to the event
// publisher
//
// Engine operations queue one record per committed state change; the
// publish process drains the queue and broadcasts.  The queue never
// blocks an engine operation: when no publisher is draining (library
// use) excess records are dropped and counted.
package messagebus
