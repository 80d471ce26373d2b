// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"time"

	"github.com/bitmark-inc/blobvault/fault"
	"github.com/bitmark-inc/blobvault/namespace"
	"github.com/bitmark-inc/blobvault/schema"
)

// InitialiseSchema - create the one schema of a fresh database
//
// validates locally, stores the schema as an encrypted blob in the
// given namespace and records the namespace and schema position in
// local state; the schema is immutable afterwards
func (s *Store) InitialiseSchema(ns namespace.Namespace, definition schema.Definition) (uint64, error) {

	if s.IsInitialised() {
		return 0, fault.SchemaAlreadyExists
	}

	err := ns.Validate()
	if nil != err {
		return 0, err
	}

	err = definition.Validate()
	if nil != err {
		return 0, err
	}

	payload, err := s.seal(envelope{
		Marker:    schemaMarker,
		Version:   envelopeVersion,
		CreatedAt: timeToMilliseconds(time.Now()),
		Schema:    definition,
	})
	if nil != err {
		return 0, err
	}

	height, err := s.submit(ns, payload)
	if nil != err {
		return 0, err
	}

	s.access.Pool.Config.Put(namespaceKey, ns.Bytes())
	s.access.Pool.Config.PutN(schemaHeightKey, height)

	s.Lock()
	s.cachedSchema = definition
	s.Unlock()

	s.log.Infof("schema stored in namespace: %s  position: %d", ns, height)
	return height, nil
}

// Schema - the schema of this database
//
// served from cache when possible, otherwise fetched from the
// recorded schema position and decrypted
func (s *Store) Schema() (schema.Definition, error) {

	s.Lock()
	cached := s.cachedSchema
	s.Unlock()
	if nil != cached {
		return cached, nil
	}

	ns, err := s.loadNamespace()
	if nil != err {
		return nil, err
	}
	height, err := s.loadSchemaHeight()
	if nil != err {
		return nil, err
	}

	payload, err := s.fetch(ns, height)
	if nil != err {
		s.log.Errorf("schema fetch at position: %d  error: %s", height, err)
		return nil, err
	}

	e, err := s.open(payload, schemaMarker)
	if nil != err {
		s.log.Errorf("schema decrypt at position: %d  error: %s", height, err)
		return nil, err
	}

	err = e.Schema.Validate()
	if nil != err {
		return nil, err
	}

	s.Lock()
	s.cachedSchema = e.Schema
	s.Unlock()

	return e.Schema, nil
}
