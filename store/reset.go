// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/json"
)

// Status - local and storage node state for display
type Status struct {
	Initialised bool   `json:"initialised"`
	Namespace   string `json:"namespace,omitempty"`
	Records     int    `json:"records"`
	ChainHeight uint64 `json:"chainHeight,omitempty"`
	NodeVersion string `json:"nodeVersion,omitempty"`
	NodeError   string `json:"nodeError,omitempty"`
}

// CurrentStatus - local index counts plus a node info call
//
// an unreachable node is reported inside the status, local state is
// still returned
func (s *Store) CurrentStatus() *Status {

	status := &Status{
		Initialised: s.IsInitialised(),
		Records:     s.access.Pool.Index.Count(),
	}

	if ns, err := s.loadNamespace(); nil == err {
		status.Namespace = ns.String()
	}

	result, err := s.caller.Call(infoMethod, nil)
	if nil != err {
		status.NodeError = err.Error()
		return status
	}

	var info InfoReply
	if err := json.Unmarshal(result, &info); nil == err {
		status.ChainHeight = info.Height
		status.NodeVersion = info.Version
	}

	return status
}

// ResetLocalState - destroy all client local state
//
// removes the secret token, namespace, schema position, index and
// caches; nothing on the storage node is touched, what was written
// stays there forever but becomes unfindable and undecryptable, so
// callers must gate this behind an explicit confirmation
func (s *Store) ResetLocalState() {

	s.access.Pool.Config.Delete(tokenKey)
	s.access.Pool.Config.Delete(namespaceKey)
	s.access.Pool.Config.Delete(schemaHeightKey)
	s.access.Pool.Index.Flush()
	s.blobs.Clear()

	s.Lock()
	s.cachedSchema = nil
	s.Unlock()

	s.log.Warn("all local state cleared")
}
