package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/grant-scout/internal/types"
)

// AppendSnapshot inserts one scoring snapshot. The store only ever inserts;
// a later stage never updates or deletes an earlier snapshot, so the full
// scoring history of a (candidate, profile) pair stays queryable.
func (db *DB) AppendSnapshot(ctx context.Context, snapshot *types.ScoreSnapshot) error {
	dimensions, err := json.Marshal(snapshot.Dimensions)
	if err != nil {
		return fmt.Errorf("failed to marshal dimension breakdown: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO score_snapshots
		   (id, candidate_ein, profile_id, stage, composite, confidence,
		    dimensions, strengths, concerns, proceed, tier, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		snapshot.ID, snapshot.CandidateEIN, snapshot.ProfileID, string(snapshot.Stage),
		snapshot.Composite, snapshot.Confidence, dimensions,
		snapshot.Strengths, snapshot.Concerns, snapshot.Proceed, snapshot.Tier,
		snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the full scoring history for a (candidate, profile)
// pair, oldest first.
func (db *DB) ListSnapshots(ctx context.Context, candidateEIN, profileID string) ([]types.ScoreSnapshot, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_ein, profile_id, stage, composite, confidence,
		        dimensions, strengths, concerns, proceed, tier, created_at
		   FROM score_snapshots
		  WHERE candidate_ein = $1 AND profile_id = $2
		  ORDER BY created_at ASC`,
		candidateEIN, profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []types.ScoreSnapshot
	for rows.Next() {
		var snap types.ScoreSnapshot
		var stage string
		var dimensions []byte
		if err := rows.Scan(&snap.ID, &snap.CandidateEIN, &snap.ProfileID, &stage,
			&snap.Composite, &snap.Confidence, &dimensions,
			&snap.Strengths, &snap.Concerns, &snap.Proceed, &snap.Tier,
			&snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.Stage = types.Stage(stage)
		if err := json.Unmarshal(dimensions, &snap.Dimensions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dimension breakdown: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	return snapshots, nil
}

// LatestSnapshot returns the most recent snapshot for a pair, or nil when
// the pair has never been scored.
func (db *DB) LatestSnapshot(ctx context.Context, candidateEIN, profileID string) (*types.ScoreSnapshot, error) {
	snapshots, err := db.ListSnapshots(ctx, candidateEIN, profileID)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[len(snapshots)-1], nil
}

// SaveRunSummary records one discovery run's accounting for audit.
func (db *DB) SaveRunSummary(ctx context.Context, runID uuid.UUID, profileID string, scored, failed, unprocessed int, timedOut bool) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO discovery_runs (id, profile_id, scored, failed, unprocessed, timed_out)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		runID, profileID, scored, failed, unprocessed, timedOut,
	)
	if err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}
	return nil
}
