// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// BlobCache - short lived memory of fetched blob payloads
//
// blobs are immutable once accepted so a cached payload can never go
// stale, the TTL only bounds memory use
type BlobCache interface {
	Get(position uint64) (string, bool)
	Set(position uint64, payload string)
	Clear()
}

const (
	defaultExpiration = 2 * time.Minute
	cleanupInterval   = 1 * time.Minute
)

type blobCache struct {
	cache *cache.Cache
}

// NewBlobCache - create an empty cache
func NewBlobCache() BlobCache {
	return &blobCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

func cacheKey(position uint64) string {
	return fmt.Sprintf("%d", position)
}

func (c *blobCache) Get(position uint64) (string, bool) {
	obj, found := c.cache.Get(cacheKey(position))
	if !found {
		return "", false
	}
	return obj.(string), true
}

func (c *blobCache) Set(position uint64, payload string) {
	c.cache.Set(cacheKey(position), payload, defaultExpiration)
}

func (c *blobCache) Clear() {
	c.cache.Flush()
}
