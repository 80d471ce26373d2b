// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encrypt_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/blobvault/encrypt"
	"github.com/bitmark-inc/blobvault/fault"
)

// fixed tokens for derivation tests
var (
	tokenA = encrypt.Token{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
		0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
	}
	tokenB = encrypt.Token{
		0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8,
		0xf7, 0xf6, 0xf5, 0xf4, 0xf3, 0xf2, 0xf1, 0xf0,
		0xef, 0xee, 0xed, 0xec, 0xeb, 0xea, 0xe9, 0xe8,
		0xe7, 0xe6, 0xe5, 0xe4, 0xe3, 0xe2, 0xe1, 0xe0,
	}
)

func TestDeriveKeyDeterministic(t *testing.T) {

	key1, err := encrypt.DeriveKey(tokenA)
	if nil != err {
		t.Fatalf("DeriveKey error: %v", err)
	}
	key2, err := encrypt.DeriveKey(tokenA)
	if nil != err {
		t.Fatalf("DeriveKey error: %v", err)
	}
	if *key1 != *key2 {
		t.Errorf("derivation is not deterministic")
	}

	key3, err := encrypt.DeriveKey(tokenB)
	if nil != err {
		t.Fatalf("DeriveKey error: %v", err)
	}
	if *key1 == *key3 {
		t.Errorf("different tokens derived the same key")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {

	key, err := encrypt.DeriveKey(tokenA)
	if nil != err {
		t.Fatalf("DeriveKey error: %v", err)
	}

	messages := [][]byte{
		[]byte("a"),
		[]byte(`{"blobvault":"record","version":1,"data":{"name":"alpha"}}`),
		bytes.Repeat([]byte{0x00}, 1000),
	}

	for i, message := range messages {
		blob, err := encrypt.Encrypt(message, key)
		if nil != err {
			t.Fatalf("%d: Encrypt error: %v", i, err)
		}

		plain, err := encrypt.Decrypt(blob, key)
		if nil != err {
			t.Fatalf("%d: Decrypt error: %v", i, err)
		}
		if !bytes.Equal(message, plain) {
			t.Errorf("%d: round trip: %x  expected: %x", i, plain, message)
		}
	}
}

func TestDecryptWithWrongKey(t *testing.T) {

	keyA, _ := encrypt.DeriveKey(tokenA)
	keyB, _ := encrypt.DeriveKey(tokenB)

	blob, err := encrypt.Encrypt([]byte("secret data"), keyA)
	if nil != err {
		t.Fatalf("Encrypt error: %v", err)
	}

	_, err = encrypt.Decrypt(blob, keyB)
	if fault.DecryptionFailed != err {
		t.Errorf("wrong key error: %v  expected: %v", err, fault.DecryptionFailed)
	}
	if !fault.IsErrCrypto(err) {
		t.Errorf("wrong key error is not classified as crypto")
	}
}

func TestDecryptCorruptedData(t *testing.T) {

	key, _ := encrypt.DeriveKey(tokenA)

	testData := []string{
		"",            // empty
		"zzzz",        // not hex
		"00112233",    // shorter than a nonce
		"00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff", // nonce but garbage box
	}

	for i, blob := range testData {
		_, err := encrypt.Decrypt(blob, key)
		if fault.DecryptionFailed != err {
			t.Errorf("%d: error: %v  expected: %v", i, err, fault.DecryptionFailed)
		}
	}
}

// nonce uniqueness, probabilistically verified
func TestEncryptNonDeterministic(t *testing.T) {

	key, _ := encrypt.DeriveKey(tokenA)
	message := []byte("identical plaintext")

	seen := map[string]struct{}{}
	for i := 0; i < 16; i += 1 {
		blob, err := encrypt.Encrypt(message, key)
		if nil != err {
			t.Fatalf("%d: Encrypt error: %v", i, err)
		}
		if _, ok := seen[blob]; ok {
			t.Fatalf("%d: duplicate ciphertext produced", i)
		}
		seen[blob] = struct{}{}
	}
}
