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
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studylane/lead-distribution-service/internal/audit/model"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
)

// AuditArchiveRepository mirrors committed audit entries into a Mongo
// collection for long-term retention. Postgres stays the authoritative
// audit store; the archive is written best-effort by a background worker.
type AuditArchiveRepository struct {
	Collection *mongo.Collection
}

// NewAuditArchiveRepository initializes a repository for the archive collection.
func NewAuditArchiveRepository(db *mongo.Database, collectionName string) *AuditArchiveRepository {
	return &AuditArchiveRepository{
		Collection: db.Collection(collectionName),
	}
}

// ArchiveEntry inserts a single audit entry into the archive.
func (repo *AuditArchiveRepository) ArchiveEntry(entry model.AuditEntry) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.Collection.InsertOne(ctx, entry)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.AUDIT_ARCHIVE.Code,
			Message:     errors2.AUDIT_ARCHIVE.Message,
			Description: fmt.Sprintf("Failed to archive audit entry: %s", entry.EntryId),
		}, err)
	}
	return nil
}
