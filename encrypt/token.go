// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encrypt

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/blobvault/fault"
)

// TokenLength - size of the secret token
const TokenLength = 32

// token backup parameters
var tokenHeaderV1 = []byte{0xb1, 0x0b, 0x01}

const (
	tokenHeaderLength   = 3
	tokenChecksumLength = 4
)

// Token - per installation random secret, the key derivation input
//
// never transmitted anywhere; losing it makes all previously written
// content unrecoverable
type Token [TokenLength]byte

// GenerateToken - create a new random secret token
func GenerateToken() (Token, error) {
	token := Token{}
	if _, err := rand.Read(token[:]); nil != err {
		return Token{}, fault.CryptoFailed
	}
	return token, nil
}

// TokenFromBytes - reconstruct a token from its stored raw form
func TokenFromBytes(buffer []byte) (Token, error) {
	if TokenLength != len(buffer) {
		return Token{}, fault.InvalidSecretTokenLength
	}
	token := Token{}
	copy(token[:], buffer)
	return token, nil
}

// Bytes - raw form for local storage
func (token Token) Bytes() []byte {
	buffer := make([]byte, TokenLength)
	copy(buffer, token[:])
	return buffer
}

// Base58 - checksummed backup form for display to the user
func (token Token) Base58() string {
	buffer := make([]byte, 0, tokenHeaderLength+TokenLength+tokenChecksumLength)
	buffer = append(buffer, tokenHeaderV1...)
	buffer = append(buffer, token[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:tokenChecksumLength]...)
	return base58.Encode(buffer)
}

// TokenFromBase58 - restore a token from its backup form
func TokenFromBase58(tokenBase58Encoded string) (Token, error) {

	buffer, err := base58.Decode(tokenBase58Encoded)
	if nil != err {
		return Token{}, fault.CannotDecodeSecretToken
	}
	if tokenHeaderLength+TokenLength+tokenChecksumLength != len(buffer) {
		return Token{}, fault.InvalidSecretTokenLength
	}
	if !bytes.Equal(tokenHeaderV1, buffer[:tokenHeaderLength]) {
		return Token{}, fault.CannotDecodeSecretToken
	}

	checksumStart := len(buffer) - tokenChecksumLength
	digest := sha3.Sum256(buffer[:checksumStart])
	if !bytes.Equal(digest[:tokenChecksumLength], buffer[checksumStart:]) {
		return Token{}, fault.ChecksumMismatch
	}

	token := Token{}
	copy(token[:], buffer[tokenHeaderLength:checksumStart])
	return token, nil
}

// String - tokens must never appear in logs
func (token Token) String() string {
	return "***"
}
