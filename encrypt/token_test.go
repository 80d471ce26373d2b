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

func TestGenerateToken(t *testing.T) {

	token1, err := encrypt.GenerateToken()
	if nil != err {
		t.Fatalf("GenerateToken error: %v", err)
	}
	token2, err := encrypt.GenerateToken()
	if nil != err {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if token1 == token2 {
		t.Errorf("two generated tokens are identical")
	}
}

func TestTokenBase58RoundTrip(t *testing.T) {

	token, err := encrypt.GenerateToken()
	if nil != err {
		t.Fatalf("GenerateToken error: %v", err)
	}

	backup := token.Base58()
	restored, err := encrypt.TokenFromBase58(backup)
	if nil != err {
		t.Fatalf("TokenFromBase58 error: %v", err)
	}
	if restored != token {
		t.Errorf("round trip: %x  expected: %x", restored.Bytes(), token.Bytes())
	}
}

func TestTokenFromBase58Rejects(t *testing.T) {

	token, _ := encrypt.GenerateToken()
	backup := token.Base58()

	// flip the final character to damage the checksum
	last := backup[len(backup)-1]
	replacement := byte('2')
	if last == replacement {
		replacement = '3'
	}
	damaged := backup[:len(backup)-1] + string(replacement)

	testData := []struct {
		input string
		err   error
	}{
		{"", fault.InvalidSecretTokenLength},
		{"0OIl", fault.CannotDecodeSecretToken}, // illegal base58 characters
		{"2g", fault.InvalidSecretTokenLength},
		{damaged, fault.ChecksumMismatch},
	}

	for i, item := range testData {
		_, err := encrypt.TokenFromBase58(item.input)
		if item.err != err {
			t.Errorf("%d: error: %v  expected: %v", i, err, item.err)
		}
	}
}

func TestTokenBytesRoundTrip(t *testing.T) {

	token, _ := encrypt.GenerateToken()

	restored, err := encrypt.TokenFromBytes(token.Bytes())
	if nil != err {
		t.Fatalf("TokenFromBytes error: %v", err)
	}
	if restored != token {
		t.Errorf("bytes round trip failed")
	}

	_, err = encrypt.TokenFromBytes([]byte{0x01, 0x02})
	if fault.InvalidSecretTokenLength != err {
		t.Errorf("short token error: %v  expected: %v", err, fault.InvalidSecretTokenLength)
	}
}

func TestTokenNeverDisplayed(t *testing.T) {

	token, _ := encrypt.GenerateToken()
	if bytes.Contains([]byte(token.String()), token.Bytes()) || "***" != token.String() {
		t.Errorf("token String() leaks key material")
	}
}
