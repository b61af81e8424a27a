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
	"fmt"
	"net/http"

	"github.com/studylane/lead-distribution-service/internal/leads/model"
	"github.com/studylane/lead-distribution-service/internal/leads/store"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
)

type LeadServiceInterface interface {
	GetLead(leadId string) (*model.Lead, error)
}

// LeadService is the default implementation of the LeadServiceInterface.
type LeadService struct{}

// GetLeadService creates a new instance of LeadService.
func GetLeadService() LeadServiceInterface {

	return &LeadService{}
}

// GetLead fetches a lead along with its current assignment and version.
func (ls *LeadService) GetLead(leadId string) (*model.Lead, error) {

	lead, err := store.GetLead(leadId)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.LEAD_NOT_FOUND.Code,
			Message:     errors2.LEAD_NOT_FOUND.Message,
			Description: fmt.Sprintf("No lead found for lead_id: %s", leadId),
		}, http.StatusNotFound)
	}
	return lead, nil
}
