// Package repo provides the reports repository implementation
package repo

import (
	"context"

	"reportgate/internal/modkit/repokit"
	perr "reportgate/internal/platform/errors"
	"reportgate/internal/platform/store"
	"reportgate/internal/services/api/reports/domain"
)

// Repo is the reports persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, row domain.Row) error
}

type (
	// PG is a Postgres implementation of the reports repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Insert persists a finalized report row
func (r *queries) Insert(ctx context.Context, row domain.Row) error {
	const sql = `
		INSERT INTO reports (
			id, user_id, description, targeted, desired_action,
			recording_start_utc, flag_utc,
			clip_start_offset_sec, clip_end_offset_sec,
			audio_path, video_path, processed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if err := store.ExecOne(ctx, r.q, sql,
		row.ID, row.UserID, row.Description, row.Targeted, row.DesiredAction,
		row.RecordingStartUTC, row.FlagUTC,
		row.ClipStartOffsetSec, row.ClipEndOffsetSec,
		row.AudioPath, row.VideoPath, row.Processed,
	); err != nil {
		return perr.FromPostgres(err, "Failed to save report")
	}
	return nil
}
