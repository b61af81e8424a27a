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
	"github.com/studylane/lead-distribution-service/internal/audit/model"
	"github.com/studylane/lead-distribution-service/internal/audit/store"
)

type AuditServiceInterface interface {
	GetEntriesForLead(leadId string) ([]model.AuditEntry, error)
	GetEntriesForRule(ruleId string) ([]model.AuditEntry, error)
}

// AuditService is the default implementation of the AuditServiceInterface.
type AuditService struct{}

// GetAuditService creates a new instance of AuditService.
func GetAuditService() AuditServiceInterface {

	return &AuditService{}
}

// GetEntriesForLead fetches the assignment history of a lead.
func (as *AuditService) GetEntriesForLead(leadId string) ([]model.AuditEntry, error) {

	return store.GetEntriesForLead(leadId)
}

// GetEntriesForRule fetches the change history of a rule, including entries
// for rules that have since been deleted.
func (as *AuditService) GetEntriesForRule(ruleId string) ([]model.AuditEntry, error) {

	return store.GetEntriesForRule(ruleId)
}
