// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namespace

import (
	"encoding/hex"

	"github.com/bitmark-inc/blobvault/fault"
)

// String - fixed width hex display form, round trips exactly through
// FromHexString
func (ns Namespace) String() string {
	return hex.EncodeToString(ns[:])
}

// FromHexString - convert the display form back into a validated namespace
func FromHexString(s string) (Namespace, error) {
	if hex.EncodedLen(Size) != len(s) {
		return Namespace{}, fault.InvalidNamespaceLength
	}
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return Namespace{}, fault.CannotDecodeNamespace
	}
	return FromBytes(buffer)
}

// MarshalText - for JSON embedding in configuration and RPC parameters
func (ns Namespace) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Size))
	hex.Encode(buffer, ns[:])
	return buffer, nil
}

// UnmarshalText - inverse of MarshalText
func (ns *Namespace) UnmarshalText(s []byte) error {
	decoded, err := FromHexString(string(s))
	if nil != err {
		return err
	}
	*ns = decoded
	return nil
}
