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

package services

import (
	"net/http"
	"strings"

	audithandler "github.com/studylane/lead-distribution-service/internal/audit/handler"
	"github.com/studylane/lead-distribution-service/internal/distribution_rules/handler"
)

type DistributionRulesService struct {
	ruleHandler  *handler.DistributionRuleHandler
	auditHandler *audithandler.AuditHandler
}

func NewDistributionRulesService() *DistributionRulesService {
	return &DistributionRulesService{
		ruleHandler:  handler.NewDistributionRuleHandler(),
		auditHandler: audithandler.NewAuditHandler(),
	}
}

// Route dispatches distribution rule endpoints.
func (s *DistributionRulesService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/distribution-rules":
		s.ruleHandler.HandleCreateRule(w, r)

	case method == http.MethodPost && path == "/distribution-rules/preview":
		s.ruleHandler.HandlePreviewMatch(w, r)

	case method == http.MethodGet && path == "/distribution-rules":
		s.ruleHandler.HandleGetRules(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/distribution-rules/") &&
		strings.HasSuffix(path, "/history"):
		s.auditHandler.GetRuleHistory(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/distribution-rules/"):
		s.ruleHandler.HandleGetRule(w, r)

	case method == http.MethodPatch && strings.HasPrefix(path, "/distribution-rules/"):
		s.ruleHandler.HandlePatchRule(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/distribution-rules/"):
		s.ruleHandler.HandleDeleteRule(w, r)

	default:
		http.NotFound(w, r)
	}
}
