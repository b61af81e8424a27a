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

package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studylane/lead-distribution-service/internal/audit/model"
	"github.com/studylane/lead-distribution-service/internal/audit/store"
	"github.com/studylane/lead-distribution-service/internal/system/config"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

var ArchiveQueue chan model.AuditEntry
var startOnce sync.Once

const defaultQueueSize = 1000

// StartAuditArchiveWorker connects to the configured Mongo archive and
// starts draining committed audit entries into it. The archive is
// best-effort: Postgres holds the authoritative trail, so a failed archive
// write is logged and dropped, never retried against the dispatcher.
// Safe to call multiple times; the worker starts once.
func StartAuditArchiveWorker() {

	archiveConfig := config.GetLDSRuntime().Config.Archive
	logger := log.GetLogger()
	if archiveConfig.URI == "" {
		logger.Info("Audit archive is not configured; skipping archive worker")
		return
	}

	startOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(archiveConfig.URI))
		if err != nil {
			logger.Error("Failed to connect to the audit archive", log.Error(err))
			return
		}

		repo := store.NewAuditArchiveRepository(
			mongoClient.Database(archiveConfig.Database), archiveConfig.Collection)
		ArchiveQueue = make(chan model.AuditEntry, defaultQueueSize)

		go func() {
			for entry := range ArchiveQueue {
				if err := repo.ArchiveEntry(entry); err != nil {
					logger.Error("Audit entry archival failed", log.Error(err))
				}
			}
		}()
		logger.Info("Audit archive worker started")
	})
}

// EnqueueArchive hands a committed audit entry to the archive worker. A
// no-op when the archive is disabled; drops the entry when the queue is
// full rather than stalling a dispatch.
func EnqueueArchive(entry model.AuditEntry) {

	if ArchiveQueue == nil {
		return
	}
	select {
	case ArchiveQueue <- entry:
	default:
		log.GetLogger().Warn(fmt.Sprintf("Archive queue full; dropping audit entry: %s", entry.EntryId))
	}
}
