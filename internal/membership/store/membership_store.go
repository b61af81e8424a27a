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

package store

import (
	"fmt"

	_ "github.com/lib/pq"

	"github.com/studylane/lead-distribution-service/internal/membership/model"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/database/scripts"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// GetOffice fetches an office record by id. Returns nil when the office
// does not exist.
func GetOffice(officeId string) (*model.Office, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching office: %s", officeId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetOfficeById[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, officeId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching office with office_id: %s", officeId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MEMBERSHIP.Code,
			Message:     errors2.GET_MEMBERSHIP.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No office found for office_id: %s", officeId))
		return nil, nil
	}

	row := results[0]
	office := model.Office{
		OfficeId:        asString(row["office_id"]),
		OfficeName:      asString(row["office_name"]),
		MaxConsultants:  int(asInt64(row["max_consultants"])),
		MaxAppointments: int(asInt64(row["max_appointments"])),
	}
	return &office, nil
}

// GetOfficeConsultants fetches the consultant ids serving an office, in
// stable membership order.
func GetOfficeConsultants(officeId string) ([]string, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching consultants of office: %s", officeId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetOfficeConsultants[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, officeId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching consultants for office: %s", officeId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MEMBERSHIP.Code,
			Message:     errors2.GET_MEMBERSHIP.Message,
			Description: errorMsg,
		}, err)
	}

	var consultants []string
	for _, row := range results {
		consultants = append(consultants, asString(row["consultant_id"]))
	}
	return consultants, nil
}

// IsConsultantMember checks whether a consultant currently serves an office.
// Always reads through to the directory tables; membership drifts
// independently of the rules that reference it.
func IsConsultantMember(consultantId, officeId string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for membership check: %s/%s", consultantId, officeId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.CheckOfficeMembership[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, consultantId, officeId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in checking membership of consultant %s in office %s", consultantId, officeId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MEMBERSHIP.Code,
			Message:     errors2.GET_MEMBERSHIP.Message,
			Description: errorMsg,
		}, err)
	}

	return len(results) > 0, nil
}

func asString(value interface{}) string {

	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func asInt64(value interface{}) int64 {

	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
