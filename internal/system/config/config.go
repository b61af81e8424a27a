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

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	AdminUsername      string   `yaml:"admin_username"`
	AdminPassword      string   `yaml:"admin_password"`
	TokenAudience      string   `yaml:"token_audience"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// ArchiveConfig configures the optional Mongo audit archive. The archive is
// disabled when the URI is empty.
type ArchiveConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// DispatchConfig carries the tunables of the lead dispatcher.
type DispatchConfig struct {
	MaxRulePriority   int    `yaml:"max_rule_priority"`
	SelectionStrategy string `yaml:"selection_strategy"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Dispatch   DispatchConfig   `yaml:"dispatch"`
}
