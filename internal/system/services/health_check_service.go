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

	"github.com/studylane/lead-distribution-service/internal/health_check/handler"
)

type HealthService struct {
	healthHandler *handler.HealthHandler
}

func NewHealthService() *HealthService {
	return &HealthService{
		healthHandler: handler.NewHealthHandler(),
	}
}

// Route dispatches liveness and readiness endpoints.
func (s *HealthService) Route(w http.ResponseWriter, r *http.Request) {

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/health":
		s.healthHandler.HandleHealth(w, r)

	case r.Method == http.MethodGet && r.URL.Path == "/ready":
		s.healthHandler.HandleReadiness(w, r)

	default:
		http.NotFound(w, r)
	}
}
