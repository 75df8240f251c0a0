// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	enqueueEvent = `
		INSERT INTO offline_events (
			event_id,
			entity_type,
			entity_id,
			operation,
			payload,
			base_version,
			created_at,
			retry_count,
			next_attempt_at,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	getEvent = `
		SELECT
			seq,
			event_id,
			entity_type,
			entity_id,
			operation,
			payload,
			base_version,
			created_at,
			retry_count,
			next_attempt_at,
			status
		FROM offline_events
		WHERE event_id = $1;`

	markEventSyncing = `
		UPDATE offline_events
		SET status = 'syncing'
		WHERE event_id = $1 AND status = 'pending';`

	revertSyncingEvents = `
		UPDATE offline_events
		SET status = 'pending'
		WHERE status = 'syncing';`

	completeEvent = `
		DELETE FROM offline_events
		WHERE event_id = $1;`

	rescheduleEvent = `
		UPDATE offline_events SET
			status          = 'pending',
			retry_count     = $1,
			next_attempt_at = $2
		WHERE event_id = $3;`

	rebaseEvent = `
		UPDATE offline_events SET
			status       = 'pending',
			base_version = $1
		WHERE event_id = $2;`

	failEvent = `
		UPDATE offline_events
		SET status = 'failed'
		WHERE event_id = $1;`

	removeEvent = `
		DELETE FROM offline_events
		WHERE event_id = $1;`

	countEventsByType = `
		SELECT entity_type, COUNT(*)
		FROM offline_events
		GROUP BY entity_type;`

	saveConflictRecord = `
		INSERT INTO conflict_records (
			id,
			entity_type,
			entity_id,
			event_id,
			local_snapshot,
			remote_snapshot,
			changed_fields,
			detected_at,
			resolution
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	getConflictRecord = `
		SELECT
			id,
			entity_type,
			entity_id,
			event_id,
			local_snapshot,
			remote_snapshot,
			changed_fields,
			detected_at,
			resolution,
			resolved_at
		FROM conflict_records
		WHERE id = $1;`

	resolveConflictRecord = `
		UPDATE conflict_records SET
			resolution  = $1,
			resolved_at = $2
		WHERE id = $3 AND resolution = 'pending';`
)
