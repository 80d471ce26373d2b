// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/blobvault/fault"
)

// ServerError - an error reported by the storage node for one method
// call, surfaced verbatim and never retried automatically
type ServerError struct {
	Code    int
	Message string
}

// Error - the error interface
func (e *ServerError) Error() string {
	if 0 == e.Code {
		return fmt.Sprintf("storage node error: %s", e.Message)
	}
	return fmt.Sprintf("storage node error %d: %s", e.Code, e.Message)
}

// normalise the known error member shapes
//
// the storage node has reported errors both as a bare string and as
// an object with message and optional code; anything else fails
// closed rather than being guessed at
func adaptServerError(raw json.RawMessage) error {

	var text string
	if nil == json.Unmarshal(raw, &text) {
		if "" == text {
			return fault.UnrecognisedResponse
		}
		return &ServerError{Message: text}
	}

	var structured struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if nil == json.Unmarshal(raw, &structured) && "" != structured.Message {
		return &ServerError{
			Code:    structured.Code,
			Message: structured.Message,
		}
	}

	return fault.UnrecognisedResponse
}
