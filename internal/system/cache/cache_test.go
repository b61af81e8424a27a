/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studylane/lead-distribution-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestCache_SetAndGet(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("key", "value")

	got, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", got)
}

func TestCache_MissingKey(t *testing.T) {
	c := NewCache(time.Minute)

	_, found := c.Get("absent")
	assert.False(t, found)
}

func TestCache_ExpiredEntryNotReturned(t *testing.T) {
	c := NewCache(-time.Second)
	c.Set("key", "value")

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCache_Delete(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("key", "value")
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}
