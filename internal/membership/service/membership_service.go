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
	"time"

	"github.com/studylane/lead-distribution-service/internal/membership/model"
	"github.com/studylane/lead-distribution-service/internal/membership/store"
	"github.com/studylane/lead-distribution-service/internal/system/cache"
)

// Office records drift slowly, so existence checks may be served from a
// short-lived cache. Membership checks always read through to the
// directory tables: a rule's target consultant can be removed from an
// office at any time, and dispatch must see that immediately.
var officeCache = cache.NewCache(30 * time.Second)

type MembershipServiceInterface interface {
	OfficeExists(officeId string) (bool, error)
	GetOffice(officeId string) (*model.Office, error)
	IsMember(consultantId, officeId string) (bool, error)
	MembersOf(officeId string) ([]string, error)
}

// MembershipService is the default implementation of the MembershipServiceInterface.
type MembershipService struct{}

// GetMembershipService creates a new instance of MembershipService.
func GetMembershipService() MembershipServiceInterface {

	return &MembershipService{}
}

// OfficeExists reports whether the office is present in the directory.
func (ms *MembershipService) OfficeExists(officeId string) (bool, error) {

	office, err := ms.GetOffice(officeId)
	if err != nil {
		return false, err
	}
	return office != nil, nil
}

// GetOffice fetches an office record, serving repeat lookups from cache.
func (ms *MembershipService) GetOffice(officeId string) (*model.Office, error) {

	if cached, found := officeCache.Get(officeId); found {
		if office, ok := cached.(*model.Office); ok {
			return office, nil
		}
	}

	office, err := store.GetOffice(officeId)
	if err != nil {
		return nil, err
	}
	if office != nil {
		officeCache.Set(officeId, office)
	}
	return office, nil
}

// IsMember checks whether the consultant currently serves the office.
func (ms *MembershipService) IsMember(consultantId, officeId string) (bool, error) {

	return store.IsConsultantMember(consultantId, officeId)
}

// MembersOf fetches the consultants currently serving the office.
func (ms *MembershipService) MembersOf(officeId string) ([]string, error) {

	return store.GetOfficeConsultants(officeId)
}
