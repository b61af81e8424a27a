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
	"errors"
	"fmt"

	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness() error
}

// HealthCheckService is the default implementation.
type HealthCheckService struct{}

// GetHealthCheckService returns a new instance.
func GetHealthCheckService() HealthCheckServiceInterface {
	return &HealthCheckService{}
}

// CheckReadiness verifies the service can reach its dependencies. The rule
// store and the audit trail live in the same database, so a single probe
// covers both.
func (h HealthCheckService) CheckReadiness() error {
	logger := log.GetLogger()
	if logger == nil {
		return errors.New("logger not initialized")
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	_, err = dbClient.ExecuteQuery("SELECT 1;")
	if err != nil {
		return fmt.Errorf("database connectivity check failed: %v", err)
	}

	return nil
}
