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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/studylane/lead-distribution-service/internal/system/config"
	"github.com/studylane/lead-distribution-service/internal/system/constants"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/log"
	"github.com/studylane/lead-distribution-service/internal/system/managers"
	"github.com/studylane/lead-distribution-service/internal/system/workers"
)

const configFile = "repository/conf/deployment.yaml"

func main() {
	ldsHome := getLDSHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	ldsConfig, err := config.LoadConfig(ldsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitializeLDSRuntime(ldsHome, ldsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime configuration: %v", err)
	}

	if err := log.Init(ldsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	checkDatabaseConnectivity()

	workers.StartAuditArchiveWorker()

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	serverAddr := fmt.Sprintf("%s:%d", ldsConfig.Addr.Host, ldsConfig.Addr.Port)
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}
	logger.Info("Lead distribution service started", log.String("addr", serverAddr))

	server := &http.Server{Handler: enableCORS(mux)}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// checkDatabaseConnectivity fails fast when the rule store is unreachable.
func checkDatabaseConnectivity() {

	logger := log.GetLogger()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		logger.Fatal("Failed to create database client", log.Error(err))
	}
	defer dbClient.Close()

	if _, err := dbClient.ExecuteQuery("SELECT 1;"); err != nil {
		logger.Fatal("Database connectivity check failed", log.Error(err))
	}
	logger.Info("Database connectivity verified")
}

func enableCORS(next http.Handler) http.Handler {
	allowedOrigins := config.GetLDSRuntime().Config.Auth.CORSAllowedOrigins
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (origins["*"] || origins[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getLDSHome() string {

	projectHomeFlag := flag.String("ldsHome", "", "Path to the lead distribution service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}
	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
