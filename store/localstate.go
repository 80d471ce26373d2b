// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/bitmark-inc/blobvault/encrypt"
	"github.com/bitmark-inc/blobvault/fault"
	"github.com/bitmark-inc/blobvault/namespace"
	"github.com/bitmark-inc/blobvault/storage"
)

// keys inside the config pool
var (
	tokenKey        = []byte("token")
	namespaceKey    = []byte("namespace")
	schemaHeightKey = []byte("schema-height")
)

// SaveToken - persist a freshly generated secret token
//
// refuses to overwrite an existing one: that would orphan all
// previously written ciphertext
func SaveToken(access *storage.Access, token encrypt.Token) error {
	if access.Pool.Config.Has(tokenKey) {
		return fault.AlreadyInitialised
	}
	access.Pool.Config.Put(tokenKey, token.Bytes())
	return nil
}

// LoadToken - read the stored secret token
func LoadToken(access *storage.Access) (encrypt.Token, error) {
	buffer := access.Pool.Config.Get(tokenKey)
	if nil == buffer {
		return encrypt.Token{}, fault.SecretTokenNotSet
	}
	return encrypt.TokenFromBytes(buffer)
}

// ClearToken - forget the secret token only
//
// listing afterwards produces decrypt failures on every index entry,
// this is the expected signal not a defect
func ClearToken(access *storage.Access) {
	access.Pool.Config.Delete(tokenKey)
}

// read the configured namespace
func (s *Store) loadNamespace() (namespace.Namespace, error) {
	buffer := s.access.Pool.Config.Get(namespaceKey)
	if nil == buffer {
		return namespace.Namespace{}, fault.NamespaceNotSet
	}
	return namespace.FromBytes(buffer)
}

// read the position of the schema blob
func (s *Store) loadSchemaHeight() (uint64, error) {
	height, ok := s.access.Pool.Config.GetN(schemaHeightKey)
	if !ok {
		return 0, fault.SchemaNotFound
	}
	return height, nil
}

// IsInitialised - namespace and schema position are both present
func (s *Store) IsInitialised() bool {
	return s.access.Pool.Config.Has(namespaceKey) &&
		s.access.Pool.Config.Has(schemaHeightKey)
}
