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

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylane/lead-distribution-service/internal/system/database/lock"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
)

func TestAdvisoryLock_ReleaseSurvivesInterleavedQueries(t *testing.T) {
	l := lock.NewPostgresLock()

	acquired, err := l.Acquire("lock-interleave-test")
	require.NoError(t, err)
	require.True(t, acquired)

	// Pool traffic between acquire and release must not move the lock onto
	// a different session.
	dbClient, err := provider.NewDBProvider().GetDBClient()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = dbClient.ExecuteQuery("SELECT 1")
		require.NoError(t, err)
	}

	require.NoError(t, l.Release("lock-interleave-test"))

	reacquired, err := l.Acquire("lock-interleave-test")
	require.NoError(t, err)
	assert.True(t, reacquired, "released lock is acquirable again")
	require.NoError(t, l.Release("lock-interleave-test"))
}

func TestAdvisoryLock_HeldKeyRefusesOtherHolders(t *testing.T) {
	first := lock.NewPostgresLock()
	second := lock.NewPostgresLock()

	acquired, err := first.Acquire("lock-contention-test")
	require.NoError(t, err)
	require.True(t, acquired)

	got, err := second.Acquire("lock-contention-test")
	require.NoError(t, err)
	assert.False(t, got, "held key is refused on another session")

	require.NoError(t, first.Release("lock-contention-test"))

	got, err = second.Acquire("lock-contention-test")
	require.NoError(t, err)
	assert.True(t, got)
	require.NoError(t, second.Release("lock-contention-test"))
}

func TestAdvisoryLock_ReleaseWithoutHoldFails(t *testing.T) {
	l := lock.NewPostgresLock()

	require.Error(t, l.Release("lock-never-acquired"))
}
