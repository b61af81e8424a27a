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

package authn

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studylane/lead-distribution-service/internal/system/config"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// ValidateBearerToken validates an Authorization: Bearer token and returns
// its claims. Tokens are issued by the external identity provider; this
// service only checks shape, expiry and audience.
func ValidateBearerToken(token string) (map[string]interface{}, error) {

	logger := log.GetLogger()

	if strings.Count(token, ".") != 2 {
		logger.Debug("Expecting a JWT token but received an opaque token.")
		return nil, unauthorizedError()
	}

	claims, err := ParseJWTClaims(token)
	if err != nil {
		return nil, unauthorizedError()
	}

	if !validateClaims(claims) {
		return claims, unauthorizedError()
	}

	return claims, nil
}

// ParseJWTClaims parses claims from a JWT without verifying the signature
func ParseJWTClaims(tokenString string) (map[string]interface{}, error) {

	logger := log.GetLogger()
	claims := jwt.MapClaims{}
	_, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims)
	if err != nil {
		errMsg := "Error occurred when parsing claims from JWT token."
		logger.Debug(errMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PARSING_ERROR.Code,
			Message:     errors2.PARSING_ERROR.Message,
			Description: errMsg,
		}, err)
		return nil, serverError
	}
	return claims, nil
}

// GetUserIDFromRequest extracts the subject claim from the request's bearer
// token. Returns an empty string when no usable token is present.
func GetUserIDFromRequest(r *http.Request) string {

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	claims, err := ParseJWTClaims(token)
	if err != nil {
		return ""
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// validateClaims ensures the token is unexpired and carries the expected audience.
func validateClaims(claims map[string]interface{}) bool {

	logger := log.GetLogger()

	expRaw, ok := claims["exp"]
	if !ok {
		logger.Debug("Token does not have an expiration time.")
		return false
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		logger.Debug("Token does not have a valid expiration time.", log.Any("exp", expRaw))
		return false
	}
	expUnix := int64(expFloat)
	if expUnix < time.Now().Unix() {
		logger.Debug("Token has expired.", log.String("exp", time.Unix(expUnix, 0).String()))
		return false
	}

	expectedAudience := config.GetLDSRuntime().Config.Auth.TokenAudience
	if expectedAudience == "" {
		return true
	}

	audRaw, ok := claims["aud"]
	if !ok {
		logger.Debug("Token does not have an audience claim.")
		return false
	}

	switch aud := audRaw.(type) {
	case string:
		return aud == expectedAudience
	case []interface{}:
		for _, a := range aud {
			if s, ok := a.(string); ok && s == expectedAudience {
				return true
			}
		}
	}
	logger.Debug("Token audience claim does not match the expected audience.")
	return false
}

func unauthorizedError() error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: "Missing or invalid bearer token",
	}, http.StatusUnauthorized)
}
