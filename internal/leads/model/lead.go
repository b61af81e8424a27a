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

package model

// Lead is a prospective student inquiry. OfficeId and AssignedConsultantId
// are empty while the lead is unassigned. Version increments on every
// assignment write and guards concurrent dispatches.
type Lead struct {
	LeadId               string `json:"lead_id"`
	Source               string `json:"source"`
	StudyDestination     string `json:"study_destination,omitempty"`
	Status               string `json:"status"`
	OfficeId             string `json:"office_id,omitempty"`
	AssignedConsultantId string `json:"assigned_consultant_id,omitempty"`
	Version              int64  `json:"version"`
	CreatedAt            int64  `json:"created_at"`
	UpdatedAt            int64  `json:"updated_at"`
}

// IsAssigned reports whether the lead currently has an office assignment.
func (l Lead) IsAssigned() bool {
	return l.OfficeId != ""
}
