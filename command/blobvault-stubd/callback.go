// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/blobvault/fault"
	"github.com/bitmark-inc/blobvault/namespace"
)

// wire structures, must match what clients send
type request struct {
	Id     uint64          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type successResponse struct {
	Id     uint64      `json:"id"`
	Result interface{} `json:"result"`
}

type errorResponse struct {
	Id    uint64 `json:"id"`
	Error string `json:"error"`
}

type submitParams struct {
	Namespace string `json:"namespace"`
	Payload   string `json:"payload"`
}

type getParams struct {
	Namespace string `json:"namespace"`
	Height    uint64 `json:"height"`
}

// listener callback, one goroutine per connection
func serveConnection(conn io.ReadWriteCloser, argument interface{}) {

	n := argument.(*node)
	log := logger.New("connection")

	limiter := rate.NewLimiter(rate.Limit(n.bandwidth), int(n.bandwidth))

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var r request
		err := decoder.Decode(&r)
		if nil != err {
			log.Debugf("connection closed: %s", err)
			return
		}

		err = limit(limiter)
		if nil != err {
			sendError(encoder, log, r.Id, err)
			continue
		}

		log.Debugf("request: %d  method: %q", r.Id, r.Method)

		result, err := dispatch(n, r.Method, r.Params)
		if nil != err {
			sendError(encoder, log, r.Id, err)
			continue
		}

		err = encoder.Encode(successResponse{
			Id:     r.Id,
			Result: result,
		})
		if nil != err {
			log.Errorf("send error: %s", err)
			return
		}
	}
}

// limiting for a single request
func limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

func sendError(encoder *json.Encoder, log *logger.L, id uint64, err error) {
	sendFailure := encoder.Encode(errorResponse{
		Id:    id,
		Error: err.Error(),
	})
	if nil != sendFailure {
		log.Errorf("send error: %s", sendFailure)
	}
}

func dispatch(n *node, method string, params json.RawMessage) (interface{}, error) {

	switch method {

	case "Blob.Submit":
		var p submitParams
		err := json.Unmarshal(params, &p)
		if nil != err {
			return nil, fault.MissingParameters
		}
		if "" == p.Payload {
			return nil, fault.MissingParameters
		}
		err = checkNamespace(p.Namespace)
		if nil != err {
			return nil, err
		}
		return map[string]uint64{
			"height": n.submit(p.Namespace, p.Payload),
		}, nil

	case "Blob.Get":
		var p getParams
		err := json.Unmarshal(params, &p)
		if nil != err {
			return nil, fault.MissingParameters
		}
		err = checkNamespace(p.Namespace)
		if nil != err {
			return nil, err
		}
		payload, ok := n.get(p.Namespace, p.Height)
		if !ok {
			return nil, fault.BlobNotFound
		}
		return map[string]string{
			"payload": payload,
		}, nil

	case "Node.Info":
		return map[string]interface{}{
			"height":  n.currentHeight(),
			"version": version,
		}, nil

	default:
		return nil, fault.InvalidError("unknown method: " + method)
	}
}

// a writable namespace is required on every blob operation
func checkNamespace(hexNamespace string) error {
	_, err := namespace.FromHexString(hexNamespace)
	return err
}
