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

type eventQueueRepository struct {
	*DB
	logger  *logger.Logger
	builder sq.StatementBuilderType
}

func NewEventQueueRepository(db *DB, logger *logger.Logger) EventQueue {
	return &eventQueueRepository{
		DB:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *eventQueueRepository) Enqueue(ctx context.Context, event *models.OfflineEvent) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, enqueueEvent,
		event.EventID,
		event.EntityType,
		event.EntityID,
		event.Operation,
		event.Payload,
		event.BaseVersion,
		event.CreatedAt,
		event.RetryCount,
		event.NextAttemptAt,
		event.Status,
	)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Enqueue").
			Str("event_id", event.EventID).
			Str("entity_type", string(event.EntityType)).
			Int64("entity_id", event.EntityID).
			Msg("failed to insert offline event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Enqueue").
			Str("event_id", event.EventID).
			Msg("failed to get assigned sequence number")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	event.Seq = seq

	return nil
}

func (r *eventQueueRepository) Get(ctx context.Context, eventID string) (models.OfflineEvent, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getEvent, eventID)

	event, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OfflineEvent{}, ErrEventNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Get").
			Str("event_id", eventID).
			Msg("failed to scan offline event row")
		return models.OfflineEvent{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return event, nil
}

func (r *eventQueueRepository) Due(ctx context.Context, now time.Time) ([]models.OfflineEvent, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(eventColumns...).
		From("offline_events").
		Where(sq.Eq{"status": models.EventPending}).
		Where(sq.LtOrEq{"next_attempt_at": now}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Due").
			Msg("failed to build due-events query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Due").
			Msg("failed to execute query for due events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var events []models.OfflineEvent

	for rows.Next() {
		event, scanErr := scanEvent(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "eventQueueRepository.Due").
				Msg("failed to scan offline event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		events = append(events, event)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "eventQueueRepository.Due").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return events, nil
}

func (r *eventQueueRepository) MarkSyncing(ctx context.Context, eventID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, markEventSyncing, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.MarkSyncing").
			Str("event_id", eventID).
			Msg("failed to mark offline event as syncing")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.MarkSyncing").
			Str("event_id", eventID).
			Msg("failed to get rows affected after status transition")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", "eventQueueRepository.MarkSyncing").
			Str("event_id", eventID).
			Msg("no rows affected: event missing or not pending")
		return ErrEventNotPending
	}

	return nil
}

func (r *eventQueueRepository) RevertSyncing(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, revertSyncingEvents)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.RevertSyncing").
			Msg("failed to revert syncing events to pending")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.RevertSyncing").
			Msg("failed to get rows affected after revert")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return rowsAffected, nil
}

func (r *eventQueueRepository) Complete(ctx context.Context, eventID string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, completeEvent, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Complete").
			Str("event_id", eventID).
			Msg("failed to delete confirmed offline event")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Complete").
			Str("event_id", eventID).
			Msg("failed to get rows affected after completion")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return rowsAffected > 0, nil
}

func (r *eventQueueRepository) Reschedule(ctx context.Context, eventID string, retryCount int, nextAttemptAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, rescheduleEvent, retryCount, nextAttemptAt, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Reschedule").
			Str("event_id", eventID).
			Int("retry_count", retryCount).
			Msg("failed to reschedule offline event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireEventAffected(result, "eventQueueRepository.Reschedule", eventID, log)
}

func (r *eventQueueRepository) Rebase(ctx context.Context, eventID string, baseVersion int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, rebaseEvent, baseVersion, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Rebase").
			Str("event_id", eventID).
			Int64("base_version", baseVersion).
			Msg("failed to rebase offline event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireEventAffected(result, "eventQueueRepository.Rebase", eventID, log)
}

func (r *eventQueueRepository) Fail(ctx context.Context, eventID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, failEvent, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Fail").
			Str("event_id", eventID).
			Msg("failed to mark offline event as failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireEventAffected(result, "eventQueueRepository.Fail", eventID, log)
}

func (r *eventQueueRepository) Remove(ctx context.Context, eventID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, removeEvent, eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Remove").
			Str("event_id", eventID).
			Msg("failed to remove offline event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireEventAffected(result, "eventQueueRepository.Remove", eventID, log)
}

func (r *eventQueueRepository) Counts(ctx context.Context) (int, map[models.EntityType]int, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, countEventsByType)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.Counts").
			Msg("failed to execute query for event counts")
		return 0, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	total := 0
	byType := make(map[models.EntityType]int)

	for rows.Next() {
		var entityType models.EntityType
		var count int

		if scanErr := rows.Scan(&entityType, &count); scanErr != nil {
			log.Err(scanErr).
				Str("func", "eventQueueRepository.Counts").
				Msg("failed to scan event count row")
			return 0, nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		byType[entityType] = count
		total += count
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "eventQueueRepository.Counts").
			Msg("error occurred during rows iteration")
		return 0, nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return total, byType, nil
}

func (r *eventQueueRepository) ActiveEntityKeys(ctx context.Context) (map[models.EntityKey]struct{}, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("entity_type", "entity_id").
		From("offline_events").
		Where(sq.Eq{"status": []models.EventStatus{models.EventPending, models.EventSyncing}}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.ActiveEntityKeys").
			Msg("failed to build active-entity-keys query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "eventQueueRepository.ActiveEntityKeys").
			Msg("failed to execute query for active entity keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make(map[models.EntityKey]struct{})

	for rows.Next() {
		var key models.EntityKey

		if scanErr := rows.Scan(&key.Type, &key.ID); scanErr != nil {
			log.Err(scanErr).
				Str("func", "eventQueueRepository.ActiveEntityKeys").
				Msg("failed to scan entity key row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		keys[key] = struct{}{}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "eventQueueRepository.ActiveEntityKeys").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return keys, nil
}

// eventColumns lists offline_events columns in scanEvent order.
var eventColumns = []string{
	"seq",
	"event_id",
	"entity_type",
	"entity_id",
	"operation",
	"payload",
	"base_version",
	"created_at",
	"retry_count",
	"next_attempt_at",
	"status",
}

func scanEvent(scan func(dest ...any) error) (models.OfflineEvent, error) {
	var (
		event   models.OfflineEvent
		payload []byte
	)

	err := scan(
		&event.Seq,
		&event.EventID,
		&event.EntityType,
		&event.EntityID,
		&event.Operation,
		&payload,
		&event.BaseVersion,
		&event.CreatedAt,
		&event.RetryCount,
		&event.NextAttemptAt,
		&event.Status,
	)
	if err != nil {
		return models.OfflineEvent{}, err
	}

	// delete events carry no payload and the column is NULL
	if payload != nil {
		event.Payload = json.RawMessage(payload)
	}

	return event, nil
}

func requireEventAffected(result sql.Result, funcName, eventID string, log *logger.Logger) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("event_id", eventID).
			Msg("failed to get rows affected")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", funcName).
			Str("event_id", eventID).
			Msg("no rows affected: event not found")
		return ErrEventNotFound
	}

	return nil
}
