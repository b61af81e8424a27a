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
	dispatchhandler "github.com/studylane/lead-distribution-service/internal/dispatch/handler"
	"github.com/studylane/lead-distribution-service/internal/leads/handler"
)

type LeadsService struct {
	leadHandler     *handler.LeadHandler
	dispatchHandler *dispatchhandler.DispatchHandler
	auditHandler    *audithandler.AuditHandler
}

func NewLeadsService() *LeadsService {
	return &LeadsService{
		leadHandler:     handler.NewLeadHandler(),
		dispatchHandler: dispatchhandler.NewDispatchHandler(),
		auditHandler:    audithandler.NewAuditHandler(),
	}
}

// Route dispatches lead endpoints.
func (s *LeadsService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && strings.HasPrefix(path, "/leads/") &&
		strings.HasSuffix(path, "/dispatch"):
		s.dispatchHandler.HandleDispatchLead(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/leads/") &&
		strings.HasSuffix(path, "/history"):
		s.auditHandler.GetLeadHistory(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/leads/"):
		s.leadHandler.HandleGetLead(w, r)

	default:
		http.NotFound(w, r)
	}
}
