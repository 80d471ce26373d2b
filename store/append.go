// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/blobvault/fault"
)

// Receipt - result of one successful append
type Receipt struct {
	Position  uint64    `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// Append - validate, encrypt and store one record
//
// validation happens entirely locally: an invalid record is rejected
// before any network traffic; on success the new position is added to
// the local index, the only place it is remembered
func (s *Store) Append(data map[string]interface{}) (*Receipt, error) {

	if nil == data {
		return nil, fault.RecordNotAnObject
	}
	if !s.IsInitialised() {
		return nil, fault.NotInitialised
	}

	ns, err := s.loadNamespace()
	if nil != err {
		return nil, err
	}

	definition, err := s.Schema()
	if nil != err {
		return nil, err
	}

	err = definition.ValidateRecord(data)
	if nil != err {
		return nil, err
	}

	createdAt := time.Now()

	payload, err := s.seal(envelope{
		Marker:    recordMarker,
		Version:   envelopeVersion,
		CreatedAt: timeToMilliseconds(createdAt),
		Data:      data,
	})
	if nil != err {
		return nil, err
	}

	height, err := s.submit(ns, payload)
	if nil != err {
		return nil, err
	}

	// the index entry is only written after the storage node
	// accepted the blob, keeping index and substrate consistent
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, height)
	s.access.Pool.Index.PutN(key, uint64(timeToMilliseconds(createdAt)))

	s.log.Infof("record appended at position: %d", height)

	return &Receipt{
		Position:  height,
		CreatedAt: createdAt,
	}, nil
}
