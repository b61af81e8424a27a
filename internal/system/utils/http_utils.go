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

package utils

import (
	"encoding/json"
	"errors" // Standard Go errors package
	"net/http"
	"strings"

	customerrors "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {
	var clientError *customerrors.ClientError
	if ok := errors.As(err, &clientError); ok {
		WriteErrorResponse(w, clientError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	logger := log.GetLogger()
	logger.Error(err.Error())
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Internal server error",
	})
}

// WriteErrorResponse writes a client error payload as-is.
func WriteErrorResponse(w http.ResponseWriter, err *customerrors.ClientError) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)

	_ = json.NewEncoder(w).Encode(err.ErrorMessage)
}

// RespondJSON writes a JSON success response with the given status code.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.GetLogger().Error("Failed to encode response payload", log.Error(err))
	}
}

// ExtractPathSuffixID returns the final path segment after the given marker,
// e.g. /leads/{leadId}/dispatch with marker "leads" yields the lead id.
func ExtractPathSuffixID(r *http.Request, marker string) string {

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == marker {
			return parts[i+1]
		}
	}
	return ""
}
