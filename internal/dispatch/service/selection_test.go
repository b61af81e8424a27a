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

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstMemberSelector_AlwaysPicksFirst(t *testing.T) {
	selector := &FirstMemberSelector{}
	members := []string{"c1", "c2", "c3"}

	assert.Equal(t, "c1", selector.Select("office-1", members))
	assert.Equal(t, "c1", selector.Select("office-1", members))
}

func TestRoundRobinSelector_RotatesThroughMembers(t *testing.T) {
	selector := NewRoundRobinSelector()
	members := []string{"c1", "c2", "c3"}

	assert.Equal(t, "c1", selector.Select("office-1", members))
	assert.Equal(t, "c2", selector.Select("office-1", members))
	assert.Equal(t, "c3", selector.Select("office-1", members))
	assert.Equal(t, "c1", selector.Select("office-1", members))
}

func TestRoundRobinSelector_CountersArePerOffice(t *testing.T) {
	selector := NewRoundRobinSelector()
	members := []string{"c1", "c2"}

	assert.Equal(t, "c1", selector.Select("office-1", members))
	assert.Equal(t, "c1", selector.Select("office-2", members))
	assert.Equal(t, "c2", selector.Select("office-1", members))
}

func TestRoundRobinSelector_HandlesShrinkingMemberList(t *testing.T) {
	selector := NewRoundRobinSelector()

	assert.Equal(t, "c1", selector.Select("office-1", []string{"c1", "c2", "c3"}))
	assert.Equal(t, "c2", selector.Select("office-1", []string{"c1", "c2", "c3"}))
	// Two members left; the counter wraps instead of indexing out of range.
	assert.Equal(t, "c1", selector.Select("office-1", []string{"c1", "c2"}))
}

func TestConfiguredSelector_FallsBackToFirstMember(t *testing.T) {
	selector := configuredSelector()
	_, ok := selector.(*FirstMemberSelector)
	assert.True(t, ok, "expected the first_member selector from test config")
}
