// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ExistsError - some item already exists
	ExistsError GenericError
	// InvalidError - some data is invalid
	InvalidError GenericError
	// LengthError - some data has incorrect byte/item counts
	LengthError GenericError
	// NotFoundError - some item was not found
	NotFoundError GenericError
	// ProcessError - some process failed
	ProcessError GenericError
	// RetryableError - transport failures that may succeed on retry
	RetryableError GenericError
	// CryptoError - authenticated decryption or key handling failed
	CryptoError GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	SchemaAlreadyExists          = ExistsError("schema already exists")

	ChecksumMismatch          = InvalidError("checksum mismatch")
	InvalidCount              = InvalidError("invalid count")
	InvalidCursor             = InvalidError("invalid cursor")
	InvalidNamespaceLength    = InvalidError("invalid namespace length")
	InvalidNamespacePadding   = InvalidError("invalid namespace padding")
	InvalidNamespaceVersion   = InvalidError("invalid namespace version")
	InvalidSchemaDefinition   = InvalidError("invalid schema definition")
	InvalidSecretTokenLength  = InvalidError("invalid secret token length")
	MissingParameters         = InvalidError("missing parameters")
	RecordNotAnObject         = InvalidError("record is not a JSON object")
	ReservedNamespace         = InvalidError("namespace is reserved")
	WrongPayloadFormat        = InvalidError("wrong payload format")
	CannotDecodeNamespace     = InvalidError("cannot decode namespace")
	CannotDecodeSecretToken   = InvalidError("cannot decode secret token")
	DataDirectoryCannotBeSame = InvalidError("data directory cannot be the same")
	DataDirectoryRequired     = InvalidError("data directory is required")
	ConnectAddressRequired    = InvalidError("connect address is required")

	NamespaceInputTooLong = LengthError("namespace input too long")

	NamespaceNotSet  = NotFoundError("namespace is not set")
	NotInitialised   = NotFoundError("not initialised")
	SchemaNotFound   = NotFoundError("schema not found")
	BlobNotFound     = NotFoundError("blob not found")
	SecretTokenNotSet = NotFoundError("secret token is not set")

	IndexCorrupt         = ProcessError("local index entry is corrupt")
	KeyDerivationFailed  = ProcessError("key derivation failed")
	RateLimiting         = ProcessError("rate limiting active")
	UnrecognisedResponse = ProcessError("unrecognised response from substrate")

	ConnectionLost    = RetryableError("connection lost, request may be retried")
	ConnectionTimeout = RetryableError("cannot reach the storage node: check that it is running and that the connect address is correct")
	Disconnected      = RetryableError("disconnected from the storage node: retry limit reached, a manual reconnect is required")
	NotConnected      = RetryableError("not connected to the storage node")

	CryptoFailed     = CryptoError("encryption failed")
	DecryptionFailed = CryptoError("decryption failed: wrong secret token or corrupted data, possibly written by a different installation")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e LengthError) Error() string    { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e RetryableError) Error() string { return string(e) }
func (e CryptoError) Error() string    { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine the class of an error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRetryable - transport failures that may clear after a reconnect
func IsErrRetryable(e error) bool { _, ok := e.(RetryableError); return ok }

// IsErrCrypto - wrong key or tampered data, distinct from "not found"
func IsErrCrypto(e error) bool { _, ok := e.(CryptoError); return ok }
