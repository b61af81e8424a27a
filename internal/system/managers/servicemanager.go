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

package managers

import (
	"net/http"
	"strings"

	syscontext "github.com/studylane/lead-distribution-service/internal/system/context"
	"github.com/studylane/lead-distribution-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

// RegisterServices mounts all API services under the base path, plus the
// health endpoints at the server root.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	ruleService := services.NewDistributionRulesService()
	leadService := services.NewLeadsService()
	healthService := services.NewHealthService()

	sm.mux.HandleFunc("/health", healthService.Route)
	sm.mux.HandleFunc("/ready", healthService.Route)

	sm.mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		// Route on the path after the base path; handlers still see the
		// original request path for id extraction.
		path := strings.TrimPrefix(r.URL.Path, apiBasePath)
		path = strings.TrimSuffix(path, "/")

		traceID := r.Header.Get("X-Trace-Id")
		if traceID == "" {
			traceID = syscontext.GenerateTraceID()
		}
		w.Header().Set("X-Trace-Id", traceID)

		routed := r.Clone(syscontext.WithTraceID(r.Context(), traceID))
		routed.URL.Path = path

		switch {
		case strings.HasPrefix(path, "/distribution-rules"):
			ruleService.Route(w, routed)
		case strings.HasPrefix(path, "/leads"):
			leadService.Route(w, routed)
		default:
			http.NotFound(w, r)
		}
	})
	return nil
}
