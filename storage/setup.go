// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"reflect"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/blobvault/fault"
)

// Pools - the set of exported pools
//
// note all fields must be exported or initialisation will panic
type Pools struct {
	Config *PoolHandle `prefix:"C"`
	Index  *PoolHandle `prefix:"I"`
}

// Access - handle for one open local database
//
// constructed once and passed to the record store, not shared through
// package globals
type Access struct {
	log  *logger.L
	db   *leveldb.DB
	Pool Pools
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open the local database and set up all pools
func Initialise(databaseDirectory string, readOnly bool) (*Access, error) {

	if "" == databaseDirectory {
		return nil, fault.DataDirectoryRequired
	}

	log := logger.New("storage")
	log.Infof("opening database: %s", databaseDirectory)

	db, err := leveldb.OpenFile(databaseDirectory, &ldb_opt.Options{
		ErrorIfExist: false,
		ReadOnly:     readOnly,
	})
	if nil != err {
		log.Errorf("open error: %s", err)
		return nil, err
	}

	access := &Access{
		log: log,
		db:  db,
	}

	// this will be a struct type
	poolType := reflect.TypeOf(access.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&access.Pool).Elem()

	// scan each field to assign the prefixed handles
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			db:     db,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	return access, nil
}

// Finalise - close the database
func (access *Access) Finalise() {
	if nil == access || nil == access.db {
		return
	}
	access.db.Close()
	access.db = nil
	access.log.Info("closed")
}
