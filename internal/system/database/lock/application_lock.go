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

package lock

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/studylane/lead-distribution-service/internal/system/database/client"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// DistributedLock serializes critical sections across service instances.
// Rule store mutations lock a single well-known key; dispatches lock per
// lead so different leads proceed in parallel.
type DistributedLock interface {
	Acquire(key string) (bool, error)
	Release(key string) error
}

// PostgresLock implements DistributedLock using PostgreSQL advisory locks.
// Advisory locks are session scoped, so each acquired lock pins a dedicated
// connection and both the lock and its unlock run on that same session.
// Running them through the pool would let an interleaved query shuffle the
// session out from under the lock.
type PostgresLock struct {
	mu      sync.Mutex
	holders map[string]lockHolder
}

// lockHolder keeps the pinned session of an acquired lock until release.
type lockHolder struct {
	dbClient client.DBClientInterface
	conn     *sql.Conn
}

func NewPostgresLock() *PostgresLock {
	return &PostgresLock{
		holders: make(map[string]lockHolder),
	}
}

// PostgreSQL advisory locks key on a bigint, so string keys are hashed.
func (l *PostgresLock) generateLockKey(key string) (int64, error) {

	logger := log.GetLogger()
	h := fnv.New64a()
	_, err := h.Write([]byte(key))
	if err != nil {
		errorMsg := fmt.Sprintf("failed to hash lock key '%s'", key)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_KEY_GEN.Code,
			Message:     errors.LOCK_KEY_GEN.Message,
			Description: errorMsg,
		}, err)
		return 0, serverError
	}
	return int64(h.Sum64()), nil
}

func (l *PostgresLock) Acquire(key string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed during DB client creation for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		serverError := errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return false, serverError
	}
	lockID, err := l.generateLockKey(key)
	if err != nil {
		_ = dbClient.Close()
		return false, err
	}
	logger.Debug(fmt.Sprintf("Generated lock id: %d", lockID))

	conn, err := dbClient.PinConnection()
	if err != nil {
		_ = dbClient.Close()
		errorMsg := "Failed to pin a connection for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: errorMsg,
		}, err)
	}

	var acquired bool
	row := conn.QueryRowContext(context.Background(), "SELECT pg_try_advisory_lock($1)", lockID)
	if err := row.Scan(&acquired); err != nil {
		_ = conn.Close()
		_ = dbClient.Close()
		errorMsg := "Failed to execute pg_try_advisory_lock"
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: errorMsg,
		}, err)
	}

	if !acquired {
		_ = conn.Close()
		_ = dbClient.Close()
		return false, nil
	}

	l.mu.Lock()
	l.holders[key] = lockHolder{dbClient: dbClient, conn: conn}
	l.mu.Unlock()
	return true, nil
}

func (l *PostgresLock) Release(key string) error {

	logger := log.GetLogger()

	l.mu.Lock()
	holder, held := l.holders[key]
	delete(l.holders, key)
	l.mu.Unlock()

	if !held {
		errorMsg := fmt.Sprintf("no advisory lock held for key '%s'", key)
		logger.Error(errorMsg)
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: errorMsg,
		}, nil)
	}
	defer func() {
		_ = holder.conn.Close()
		_ = holder.dbClient.Close()
	}()

	lockID, err := l.generateLockKey(key)
	if err != nil {
		return err
	}

	var released bool
	row := holder.conn.QueryRowContext(context.Background(), "SELECT pg_advisory_unlock($1)", lockID)
	if err := row.Scan(&released); err != nil {
		errorMsg := "pg_advisory_unlock failed"
		logger.Error(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: errorMsg,
		}, err)
	}
	if !released {
		errorMsg := fmt.Sprintf("pg_advisory_unlock returned false for lock id %d", lockID)
		logger.Error(errorMsg)
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RESULT_INVALID.Code,
			Message:     errors.LOCK_RESULT_INVALID.Message,
			Description: errorMsg,
		}, nil)
	}
	logger.Debug(fmt.Sprintf("Advisory lock released for lock id: %d", lockID))
	return nil
}
