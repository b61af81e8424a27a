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

package model

// Office is a read-only projection of an office record. Offices are owned
// and mutated by the external staff directory; this service only reads them.
type Office struct {
	OfficeId        string `json:"office_id"`
	OfficeName      string `json:"office_name"`
	MaxConsultants  int    `json:"max_consultants"`
	MaxAppointments int    `json:"max_appointments"`
}
