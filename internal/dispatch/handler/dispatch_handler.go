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
	"encoding/json"
	"net/http"

	"github.com/studylane/lead-distribution-service/internal/dispatch/model"
	"github.com/studylane/lead-distribution-service/internal/dispatch/provider"
	"github.com/studylane/lead-distribution-service/internal/system/authn"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/security"
	"github.com/studylane/lead-distribution-service/internal/system/utils"
)

type DispatchHandler struct{}

func NewDispatchHandler() *DispatchHandler {

	return &DispatchHandler{}
}

// HandleDispatchLead handles routing a lead through the rule engine or to a
// manually named target.
func (dh *DispatchHandler) HandleDispatchLead(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "leads:dispatch")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	leadId := utils.ExtractPathSuffixID(r, "leads")
	if leadId == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Lead id missing in dispatch path",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	var request model.DispatchRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "dispatch"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	dispatchService := provider.NewDispatchProvider().GetDispatchService()
	result, err := dispatchService.DispatchLead(leadId, request, authn.GetUserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
