// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/binary"
	"sort"
)

// Failure - one index entry that could not be turned back into a
// record, the listing as a whole still succeeds
type Failure struct {
	Position uint64 `json:"position"`
	Reason   string `json:"reason"`
}

// Listing - aggregate result of a List
//
// an empty Records with non-empty Failures means the index has
// entries that no longer fetch or decrypt, most likely a secret token
// mismatch, which is a very different situation from an empty
// database
type Listing struct {
	Records  []Record  `json:"records"`
	Failures []Failure `json:"failures"`
}

// List - all records reachable through the local index, newest first
//
// each entry is fetched and decrypted independently: one bad entry is
// recorded as a failure and skipped, it never aborts the listing or
// its sibling fetches
func (s *Store) List() (*Listing, error) {

	ns, err := s.loadNamespace()
	if nil != err {
		return nil, err
	}

	listing := &Listing{
		Records:  []Record{},
		Failures: []Failure{},
	}

	err = s.access.Pool.Index.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if 8 != len(key) {
			s.log.Errorf("corrupt index key: %x", key)
			listing.Failures = append(listing.Failures, Failure{
				Reason: "corrupt index entry",
			})
			return nil
		}
		position := binary.BigEndian.Uint64(key)

		payload, err := s.fetch(ns, position)
		if nil != err {
			listing.Failures = append(listing.Failures, Failure{
				Position: position,
				Reason:   err.Error(),
			})
			return nil
		}

		e, err := s.open(payload, recordMarker)
		if nil != err {
			listing.Failures = append(listing.Failures, Failure{
				Position: position,
				Reason:   err.Error(),
			})
			return nil
		}

		listing.Records = append(listing.Records, Record{
			Position:  position,
			CreatedAt: millisecondsToTime(e.CreatedAt),
			Data:      e.Data,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}

	// newest first, position breaks creation time ties
	sort.SliceStable(listing.Records, func(i, j int) bool {
		a := listing.Records[i]
		b := listing.Records[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Position > b.Position
	})

	return listing, nil
}
