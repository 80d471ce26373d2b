// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/json"

	"github.com/bitmark-inc/blobvault/fault"
	"github.com/bitmark-inc/blobvault/namespace"
)

// method names and parameter layouts are the wire contract with the
// storage node and must not be changed
const (
	submitMethod = "Blob.Submit"
	getMethod    = "Blob.Get"
	infoMethod   = "Node.Info"
)

// SubmitParams - submit one opaque payload to a namespace
type SubmitParams struct {
	Namespace namespace.Namespace `json:"namespace"`
	Payload   string              `json:"payload"`
}

// SubmitReply - the position assigned by the storage node
type SubmitReply struct {
	Height uint64 `json:"height"`
}

// GetParams - fetch the payload at one position of a namespace
type GetParams struct {
	Namespace namespace.Namespace `json:"namespace"`
	Height    uint64              `json:"height"`
}

// GetReply - the stored payload
type GetReply struct {
	Payload string `json:"payload"`
}

// InfoReply - storage node status
type InfoReply struct {
	Height  uint64 `json:"height"`
	Version string `json:"version"`
}

// submit a payload returning its assigned position
func (s *Store) submit(ns namespace.Namespace, payload string) (uint64, error) {

	result, err := s.caller.Call(submitMethod, SubmitParams{
		Namespace: ns,
		Payload:   payload,
	})
	if nil != err {
		s.log.Errorf("submit to namespace: %s  error: %s", ns, err)
		return 0, err
	}

	var reply SubmitReply
	err = json.Unmarshal(result, &reply)
	if nil != err {
		return 0, fault.UnrecognisedResponse
	}
	return reply.Height, nil
}

// fetch the payload at one position, the cache is tried first as
// accepted blobs are immutable
func (s *Store) fetch(ns namespace.Namespace, height uint64) (string, error) {

	if payload, ok := s.blobs.Get(height); ok {
		return payload, nil
	}

	result, err := s.caller.Call(getMethod, GetParams{
		Namespace: ns,
		Height:    height,
	})
	if nil != err {
		s.log.Errorf("fetch position: %d  error: %s", height, err)
		return "", err
	}

	var reply GetReply
	err = json.Unmarshal(result, &reply)
	if nil != err {
		return "", fault.UnrecognisedResponse
	}
	if "" == reply.Payload {
		return "", fault.BlobNotFound
	}

	s.blobs.Set(height, reply.Payload)
	return reply.Payload, nil
}
