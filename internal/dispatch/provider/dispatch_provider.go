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

package provider

import (
	"github.com/studylane/lead-distribution-service/internal/dispatch/service"
)

// DispatchProviderInterface defines the interface for the dispatch provider.
type DispatchProviderInterface interface {
	GetDispatchService() service.DispatchServiceInterface
}

// DispatchProvider is the default implementation of the provider.
type DispatchProvider struct{}

// NewDispatchProvider creates a new instance of DispatchProvider.
func NewDispatchProvider() DispatchProviderInterface {

	return &DispatchProvider{}
}

// GetDispatchService returns the dispatch service instance.
func (dp *DispatchProvider) GetDispatchService() service.DispatchServiceInterface {

	return service.GetDispatchService()
}
