// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package encrypt - authenticated encryption of blob payloads
//
// a key is derived from the locally held secret token, every payload
// is sealed with a fresh random nonce and transported as hex text so
// the storage node only ever sees opaque data
package encrypt

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/blobvault/fault"
)

// KeyLength - size of the derived symmetric key
const KeyLength = 32

// nonce is stored in front of the sealed data
const nonceLength = 24

// fixed application salt
//
// the secret token is already full entropy random data so a per
// installation salt would add nothing, while a fixed salt keeps the
// derivation deterministic across sessions with the same token
var applicationSalt = []byte{
	0x62, 0x6c, 0x6f, 0x62, 0x76, 0x61, 0x75, 0x6c,
	0x74, 0x2d, 0x6b, 0x65, 0x79, 0x2d, 0x76, 0x31,
}

// DeriveKey - one way derivation of the symmetric key from the secret
// token, deterministic for a given token
func DeriveKey(token Token) (*[KeyLength]byte, error) {

	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     KeyLength,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}

	hash, err := argon2.Hash(ctx, token[:], applicationSalt)
	if nil != err {
		return nil, fault.KeyDerivationFailed
	}

	var key [KeyLength]byte
	copy(key[:], hash)

	return &key, nil
}

// Encrypt - seal a payload and convert to hex
//
// must use a different nonce for each payload sealed with the same
// key; the nonce here is 192 bits long so a random value provides a
// sufficiently small probability of repeats
func Encrypt(plaintext []byte, key *[KeyLength]byte) (string, error) {

	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); nil != err {
		return "", fault.CryptoFailed
	}

	ciphertext := secretbox.Seal(nonce[:], plaintext, &nonce, key)

	return hex.EncodeToString(ciphertext), nil
}

// Decrypt - decode a hex payload and open the sealed box
//
// authentication failure means the wrong key, corrupted data or
// tampering and is reported distinctly from "not found"
func Decrypt(ciphertext string, key *[KeyLength]byte) ([]byte, error) {

	if "" == ciphertext {
		return nil, fault.DecryptionFailed
	}

	encrypted, err := hex.DecodeString(ciphertext)
	if nil != err {
		return nil, fault.DecryptionFailed
	}
	if len(encrypted) <= nonceLength {
		return nil, fault.DecryptionFailed
	}

	// the nonce was stored alongside the sealed data
	var nonce [nonceLength]byte
	copy(nonce[:], encrypted[:nonceLength])

	decrypted, ok := secretbox.Open(nil, encrypted[nonceLength:], &nonce, key)
	if !ok {
		return nil, fault.DecryptionFailed
	}

	return decrypted, nil
}
