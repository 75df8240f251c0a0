// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/models"
)

type conflictLogRepository struct {
	*DB
	logger  *logger.Logger
	builder sq.StatementBuilderType
}

func NewConflictLogRepository(db *DB, logger *logger.Logger) ConflictLog {
	return &conflictLogRepository{
		DB:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *conflictLogRepository) Save(ctx context.Context, record *models.ConflictRecord) error {
	log := logger.FromContext(ctx)

	localSnapshot, err := json.Marshal(record.LocalVersion)
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Save").
			Str("conflict_id", record.ID).
			Msg("failed to marshal local snapshot")
		return fmt.Errorf("failed to marshal local snapshot: %w", err)
	}

	remoteSnapshot, err := json.Marshal(record.RemoteVersion)
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Save").
			Str("conflict_id", record.ID).
			Msg("failed to marshal remote snapshot")
		return fmt.Errorf("failed to marshal remote snapshot: %w", err)
	}

	changedFields, err := marshalChangedFields(record.ChangedFields)
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Save").
			Str("conflict_id", record.ID).
			Msg("failed to marshal changed fields")
		return fmt.Errorf("failed to marshal changed fields: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, saveConflictRecord,
		record.ID,
		record.EntityType,
		record.EntityID,
		record.EventID,
		localSnapshot,
		remoteSnapshot,
		changedFields,
		record.DetectedAt,
		record.Resolution,
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Save").
			Str("conflict_id", record.ID).
			Str("event_id", record.EventID).
			Msg("failed to insert conflict record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *conflictLogRepository) Get(ctx context.Context, id string) (models.ConflictRecord, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getConflictRecord, id)

	record, err := scanConflictRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConflictRecord{}, ErrConflictNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Get").
			Str("conflict_id", id).
			Msg("failed to scan conflict record row")
		return models.ConflictRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (r *conflictLogRepository) Unresolved(ctx context.Context) ([]models.ConflictRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(conflictColumns...).
		From("conflict_records").
		Where(sq.Eq{"resolution": models.ResolutionPending}).
		OrderBy("detected_at ASC").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Unresolved").
			Msg("failed to build unresolved-conflicts query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Unresolved").
			Msg("failed to execute query for unresolved conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.ConflictRecord

	for rows.Next() {
		record, scanErr := scanConflictRecord(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "conflictLogRepository.Unresolved").
				Msg("failed to scan conflict record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "conflictLogRepository.Unresolved").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (r *conflictLogRepository) Resolve(ctx context.Context, id string, resolution models.Resolution, resolvedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, resolveConflictRecord, resolution, resolvedAt, id)
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Resolve").
			Str("conflict_id", id).
			Str("resolution", string(resolution)).
			Msg("failed to resolve conflict record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "conflictLogRepository.Resolve").
			Str("conflict_id", id).
			Msg("failed to get rows affected after resolution")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "conflictLogRepository.Resolve").
			Str("conflict_id", id).
			Msg("no rows affected: conflict missing or already resolved")
		return ErrConflictNotFound
	}

	return nil
}

// conflictColumns lists conflict_records columns in scanConflictRecord order.
var conflictColumns = []string{
	"id",
	"entity_type",
	"entity_id",
	"event_id",
	"local_snapshot",
	"remote_snapshot",
	"changed_fields",
	"detected_at",
	"resolution",
	"resolved_at",
}

func scanConflictRecord(scan func(dest ...any) error) (models.ConflictRecord, error) {
	var (
		record         models.ConflictRecord
		localSnapshot  []byte
		remoteSnapshot []byte
		changedFields  []byte
		resolvedAt     sql.NullTime
	)

	err := scan(
		&record.ID,
		&record.EntityType,
		&record.EntityID,
		&record.EventID,
		&localSnapshot,
		&remoteSnapshot,
		&changedFields,
		&record.DetectedAt,
		&record.Resolution,
		&resolvedAt,
	)
	if err != nil {
		return models.ConflictRecord{}, err
	}

	if err = json.Unmarshal(localSnapshot, &record.LocalVersion); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("failed to unmarshal local snapshot: %w", err)
	}
	if err = json.Unmarshal(remoteSnapshot, &record.RemoteVersion); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("failed to unmarshal remote snapshot: %w", err)
	}
	if err = json.Unmarshal(changedFields, &record.ChangedFields); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("failed to unmarshal changed fields: %w", err)
	}
	if resolvedAt.Valid {
		record.ResolvedAt = &resolvedAt.Time
	}

	return record, nil
}

func marshalChangedFields(fields []string) ([]byte, error) {
	// keep the column a valid JSON array even when no fields were recorded
	if fields == nil {
		fields = []string{}
	}
	return json.Marshal(fields)
}
