// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/blobvault/encrypt"
	"github.com/bitmark-inc/blobvault/fault"
	"github.com/bitmark-inc/blobvault/schema"
)

// plaintext envelope stored inside every blob
//
// the marker distinguishes schema and record blobs after decryption,
// the version allows later layout changes
type envelope struct {
	Marker    string                 `json:"blobvault"`
	Version   int                    `json:"version"`
	CreatedAt int64                  `json:"createdAt"` // unix milliseconds
	Schema    schema.Definition      `json:"schema,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// envelope markers
const (
	schemaMarker = "schema"
	recordMarker = "record"

	envelopeVersion = 1
)

// Record - one decrypted record with its substrate position attached
//
// the position is the only identifier a record has
type Record struct {
	Position  uint64                 `json:"position"`
	CreatedAt time.Time              `json:"createdAt"`
	Data      map[string]interface{} `json:"data"`
}

// seal an envelope into a transportable payload
func (s *Store) seal(e envelope) (string, error) {
	plaintext, err := json.Marshal(e)
	if nil != err {
		return "", err
	}
	return encrypt.Encrypt(plaintext, s.key)
}

// open a payload and check its marker
func (s *Store) open(payload string, marker string) (*envelope, error) {
	plaintext, err := encrypt.Decrypt(payload, s.key)
	if nil != err {
		return nil, err
	}

	var e envelope
	err = json.Unmarshal(plaintext, &e)
	if nil != err {
		return nil, fault.WrongPayloadFormat
	}
	if marker != e.Marker || envelopeVersion != e.Version {
		return nil, fault.WrongPayloadFormat
	}
	return &e, nil
}

func millisecondsToTime(ms int64) time.Time {
	return time.Unix(ms/1000, ms%1000*int64(time.Millisecond))
}

func timeToMilliseconds(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
