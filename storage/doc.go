// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - client local persistent state
//
// a single LevelDB database split into prefixed pools:
//
//   Config  C  secret token, namespace and schema position,
//              each independently readable and clearable
//   Index   I  the append-only position index, the only way to
//              rediscover previously written record positions,
//              key: 8 byte big endian position
//              value: 8 byte big endian creation time (unix milli)
//
// none of this state can ever be reconstructed from the storage node,
// losing it means losing the ability to list previously written
// records
package storage
