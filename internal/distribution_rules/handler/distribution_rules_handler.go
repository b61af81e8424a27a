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

	"github.com/studylane/lead-distribution-service/internal/distribution_rules/model"
	"github.com/studylane/lead-distribution-service/internal/distribution_rules/provider"
	"github.com/studylane/lead-distribution-service/internal/matcher"
	"github.com/studylane/lead-distribution-service/internal/system/authn"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/security"
	"github.com/studylane/lead-distribution-service/internal/system/utils"
)

type DistributionRuleHandler struct{}

func NewDistributionRuleHandler() *DistributionRuleHandler {

	return &DistributionRuleHandler{}
}

// HandleCreateRule handles creating a distribution rule.
func (drh *DistributionRuleHandler) HandleCreateRule(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "rules:manage")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.DistributionRuleAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "distribution rule"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	ruleService := provider.NewDistributionRuleProvider().GetDistributionRuleService()
	rule, err := ruleService.AddDistributionRule(request, authn.GetUserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, ruleToResponse(rule))
}

// HandleGetRules handles listing all rules in evaluation order.
func (drh *DistributionRuleHandler) HandleGetRules(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "rules:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleService := provider.NewDistributionRuleProvider().GetDistributionRuleService()
	rules, err := ruleService.GetDistributionRules()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	responses := make([]model.DistributionRuleAPIResponse, 0, len(rules))
	for i := range rules {
		responses = append(responses, *ruleToResponse(&rules[i]))
	}
	utils.RespondJSON(w, http.StatusOK, responses)
}

// HandleGetRule handles fetching a single rule by id.
func (drh *DistributionRuleHandler) HandleGetRule(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "rules:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := utils.ExtractPathSuffixID(r, "distribution-rules")
	if ruleId == "" {
		utils.HandleError(w, missingRuleIdError())
		return
	}

	ruleService := provider.NewDistributionRuleProvider().GetDistributionRuleService()
	rule, err := ruleService.GetDistributionRule(ruleId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, ruleToResponse(rule))
}

// HandlePatchRule handles a partial rule update.
func (drh *DistributionRuleHandler) HandlePatchRule(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "rules:manage")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := utils.ExtractPathSuffixID(r, "distribution-rules")
	if ruleId == "" {
		utils.HandleError(w, missingRuleIdError())
		return
	}

	var request model.DistributionRuleUpdateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "distribution rule update"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	ruleService := provider.NewDistributionRuleProvider().GetDistributionRuleService()
	rule, err := ruleService.PatchDistributionRule(ruleId, request, authn.GetUserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, ruleToResponse(rule))
}

// HandleDeleteRule handles deleting a rule.
func (drh *DistributionRuleHandler) HandleDeleteRule(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "rules:manage")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleId := utils.ExtractPathSuffixID(r, "distribution-rules")
	if ruleId == "" {
		utils.HandleError(w, missingRuleIdError())
		return
	}

	ruleService := provider.NewDistributionRuleProvider().GetDistributionRuleService()
	if err := ruleService.DeleteDistributionRule(ruleId, authn.GetUserIDFromRequest(r)); err != nil {
		utils.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePreviewMatch handles a dry-run match of a lead snapshot against the
// current rule set. Nothing is written.
func (drh *DistributionRuleHandler) HandlePreviewMatch(w http.ResponseWriter, r *http.Request) {

	err := security.AuthnAndAuthz(r, "rules:view")
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.MatchPreviewRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "match preview"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	ruleService := provider.NewDistributionRuleProvider().GetDistributionRuleService()
	rule, err := ruleService.PreviewMatch(matcher.LeadSnapshot{
		Source:           request.Source,
		StudyDestination: request.StudyDestination,
		OfficeId:         request.OfficeId,
	})
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	response := model.MatchPreviewResponse{Matched: rule != nil}
	if rule != nil {
		response.Rule = ruleToResponse(rule)
	}
	utils.RespondJSON(w, http.StatusOK, response)
}

func ruleToResponse(rule *model.DistributionRule) *model.DistributionRuleAPIResponse {

	if rule == nil {
		return nil
	}
	return &model.DistributionRuleAPIResponse{
		RuleId:             rule.RuleId,
		Priority:           rule.Priority,
		Criteria:           rule.Criteria,
		TargetOfficeId:     rule.TargetOfficeId,
		TargetConsultantId: rule.TargetConsultantId,
	}
}

func missingRuleIdError() error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.GET_RULE_WITHOUT_ID.Code,
		Message:     errors2.GET_RULE_WITHOUT_ID.Message,
		Description: "Rule id missing in request path",
	}, http.StatusBadRequest)
}
