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
	"sync"

	"github.com/studylane/lead-distribution-service/internal/system/config"
	"github.com/studylane/lead-distribution-service/internal/system/constants"
)

// ConsultantSelector picks a consultant from an office's member list when a
// matched rule names an office but no consultant. Members arrive in a
// stable order; the slice is never empty.
type ConsultantSelector interface {
	Select(officeId string, members []string) string
}

// FirstMemberSelector always picks the first member. Deterministic, so
// repeated dispatches of the same lead land on the same consultant.
type FirstMemberSelector struct{}

func (s *FirstMemberSelector) Select(officeId string, members []string) string {

	return members[0]
}

// RoundRobinSelector rotates through an office's members on successive
// selections. Counters are per process; restarts reset the rotation, which
// only affects distribution fairness, never correctness.
type RoundRobinSelector struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewRoundRobinSelector() *RoundRobinSelector {

	return &RoundRobinSelector{counters: make(map[string]int)}
}

func (s *RoundRobinSelector) Select(officeId string, members []string) string {

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.counters[officeId] % len(members)
	s.counters[officeId]++
	return members[idx]
}

var (
	roundRobin     = NewRoundRobinSelector()
	firstMember    = &FirstMemberSelector{}
	selectorByName = map[string]ConsultantSelector{
		constants.SelectionFirstMember: firstMember,
		constants.SelectionRoundRobin:  roundRobin,
	}
)

// configuredSelector resolves the selection strategy from runtime config,
// falling back to first_member for unrecognized values.
func configuredSelector() ConsultantSelector {

	strategy := config.GetLDSRuntime().Config.Dispatch.SelectionStrategy
	if selector, ok := selectorByName[strategy]; ok {
		return selector
	}
	return firstMember
}
