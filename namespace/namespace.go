// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namespace

import (
	"github.com/bitmark-inc/blobvault/fault"
)

// namespace layout
const (
	Size = 29 // bytes

	versionByte   = 0  // position of the version
	paddingStart  = 1  // inclusive
	paddingFinish = 19 // excluded
	userStart     = 19 // inclusive

	UserBytes = Size - userStart // bytes available for user content
)

// version bytes
const (
	VersionUser     = 0x00
	VersionReserved = 0xff
)

// Namespace - the structure partition identifier used by the storage node
//
// byte 0 is the version, a version zero namespace carries up to ten
// bytes of user chosen content in its trailing bytes, all other bytes
// must be zero
type Namespace [Size]byte

// FromString - deterministic conversion of up to ten bytes of user
// chosen content into a version zero namespace
func FromString(humanInput string) (Namespace, error) {
	return FromUserBytes([]byte(humanInput))
}

// FromUserBytes - as FromString but for raw bytes, e.g. random content
func FromUserBytes(userInput []byte) (Namespace, error) {
	ns := Namespace{}
	if len(userInput) > UserBytes {
		return ns, fault.NamespaceInputTooLong
	}

	// right align the content inside the user area
	copy(ns[Size-len(userInput):], userInput)

	err := ns.Validate()
	if nil != err {
		return Namespace{}, err
	}
	return ns, nil
}

// FromBytes - convert a wire form byte slice into a validated namespace
func FromBytes(candidate []byte) (Namespace, error) {
	if Size != len(candidate) {
		return Namespace{}, fault.InvalidNamespaceLength
	}
	ns := Namespace{}
	copy(ns[:], candidate)
	err := ns.Validate()
	if nil != err {
		return Namespace{}, err
	}
	return ns, nil
}

// Validate - check all format rules, failing closed on the first
// violated one
//
// reserved identifiers are never accepted as a writable namespace
func (ns Namespace) Validate() error {

	switch ns[versionByte] {
	case VersionUser:
		if !isZeroFilled(ns[paddingStart:paddingFinish]) {
			return fault.InvalidNamespacePadding
		}
	case VersionReserved:
		// the whole version is reserved for the storage node itself
		return fault.ReservedNamespace
	default:
		return fault.InvalidNamespaceVersion
	}

	if _, ok := reservedSet[ns]; ok {
		return fault.ReservedNamespace
	}
	return nil
}

// UserContent - the trailing user chosen bytes of a version zero namespace
func (ns Namespace) UserContent() []byte {
	return ns[userStart:]
}

// Bytes - wire form for embedding into RPC parameters
func (ns Namespace) Bytes() []byte {
	return ns[:]
}

// identifiers that must never be written to
var reservedSet = map[Namespace]struct{}{}

func init() {
	allZero := Namespace{}

	allOnes := Namespace{}
	for i := 0; i < Size; i += 1 {
		allOnes[i] = 0xff
	}

	// version zero with an all ones user area
	zeroOnes := Namespace{}
	for i := userStart; i < Size; i += 1 {
		zeroOnes[i] = 0xff
	}

	reservedSet[allZero] = struct{}{}
	reservedSet[allOnes] = struct{}{}
	reservedSet[zeroOnes] = struct{}{}
}

func isZeroFilled(buffer []byte) bool {
	for _, b := range buffer {
		if 0 != b {
			return false
		}
	}
	return true
}
