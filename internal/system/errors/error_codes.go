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

package errors

const errorPrefix = "LDS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	ADD_DISTRIBUTION_RULE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while adding distribution rule.",
	}

	GET_DISTRIBUTION_RULE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching distribution rule(s).",
	}

	UPDATE_DISTRIBUTION_RULE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while updating distribution rule.",
	}

	DELETE_DISTRIBUTION_RULE = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while deleting distribution rule.",
	}

	APPEND_AUDIT_ENTRY = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while appending audit entry.",
	}

	GET_AUDIT_ENTRIES = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while fetching audit entries.",
	}

	GET_LEAD = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while fetching lead.",
	}

	UPDATE_LEAD_ASSIGNMENT = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while updating lead assignment.",
	}

	GET_MEMBERSHIP = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while fetching consultant office membership.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Advisory lock acquisition failed",
	}

	LOCK_RELEASE = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while releasing the lock.",
	}

	LOCK_KEY_GEN = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error generating advisory lock key",
	}

	LOCK_RESULT_INVALID = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Invalid response from advisory lock query.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while un-marshalling JSON.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Parsing token failed.",
	}

	AUDIT_ARCHIVE = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Error while archiving audit entry.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Unauthorized request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Insufficient permissions.",
	}

	RULE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Distribution rule not found.",
	}

	LEAD_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Lead not found.",
	}

	INVALID_RULE_PRIORITY = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Invalid rule priority.",
	}

	TARGET_OFFICE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Target office does not exist.",
	}

	INVALID_MEMBERSHIP = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Consultant is not a member of the target office.",
	}

	CONCURRENT_MODIFICATION = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Lead is being modified by another dispatch.",
	}

	LEAD_ALREADY_ASSIGNED = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Lead already has an assignment.",
	}

	INVALID_DISPATCH_MODE = ErrorMessage{
		Code:    errorPrefix + "11011",
		Message: "Invalid dispatch mode.",
	}

	GET_RULE_WITHOUT_ID = ErrorMessage{
		Code:    errorPrefix + "11013",
		Message: "Rule id missing in request path.",
	}

	INVALID_LEAD_SOURCE = ErrorMessage{
		Code:    errorPrefix + "11014",
		Message: "Invalid lead source.",
	}
)
