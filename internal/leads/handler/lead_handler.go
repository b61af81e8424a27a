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

package handler

import (
	"net/http"

	"github.com/studylane/lead-distribution-service/internal/leads/provider"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/security"
	"github.com/studylane/lead-distribution-service/internal/system/utils"
)

type LeadHandler struct{}

func NewLeadHandler() *LeadHandler {

	return &LeadHandler{}
}

// HandleGetLead handles fetching a lead with its current assignment.
func (lh *LeadHandler) HandleGetLead(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "leads:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	leadId := utils.ExtractPathSuffixID(r, "leads")
	if leadId == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Lead id missing in request path",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	leadService := provider.NewLeadProvider().GetLeadService()
	lead, err := leadService.GetLead(leadId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, lead)
}
