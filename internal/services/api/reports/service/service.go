// Package service contains report submission workflows
package service

import (
	"context"

	"github.com/google/uuid"

	"reportgate/internal/modkit/repokit"
	perr "reportgate/internal/platform/errors"
	pstrings "reportgate/internal/platform/strings"
	"reportgate/internal/services/api/reports/domain"
	"reportgate/internal/services/api/reports/repo"
)

// Object names under the per-report prefix
const (
	AudioObject      = "system_audio.webm"
	MicrophoneObject = "microphone.webm"
	VideoObject      = "screen_recording.webm"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	granter     domain.GrantPort
	audioBucket string
	videoBucket string
	newID       func() string
}

// Options control service behavior
type Options struct {
	// Granter is required
	Granter domain.GrantPort

	AudioBucket string
	VideoBucket string

	// NewID overrides report id minting; defaults to random UUIDs
	NewID func() string
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("reports.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reports.Service requires a non nil Repo binder")
	}
	if opt.Granter == nil {
		panic("reports.Service requires a non nil GrantPort")
	}
	if opt.AudioBucket == "" || opt.VideoBucket == "" {
		panic("reports.Service requires audio and video bucket names")
	}

	newID := opt.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &Svc{
		binder:      binder,
		db:          db,
		granter:     opt.Granter,
		audioBucket: opt.AudioBucket,
		videoBucket: opt.VideoBucket,
		newID:       newID,
	}
}

// Initiate mints a report id and issues one upload grant per requested slot.
// No row is written; the id only becomes durable on Finalize. Any grant
// failure abandons the whole bundle.
func (s *Svc) Initiate(ctx context.Context, subjectID string, in domain.InitInput) (domain.InitOutput, error) {
	if subjectID == "" {
		return domain.InitOutput{}, perr.Unauthorizedf("missing subject")
	}

	id := s.newID()

	audio, err := s.granter.CreateSignedUpload(ctx, s.audioBucket, id+"/"+AudioObject)
	if err != nil {
		return domain.InitOutput{}, err
	}

	out := domain.InitOutput{
		ReportID:         id,
		AudioUploadURL:   audio.URL,
		AudioUploadToken: audio.Token,
		AudioPath:        audio.Path,
	}

	if in.HasMicrophone {
		mic, err := s.granter.CreateSignedUpload(ctx, s.audioBucket, id+"/"+MicrophoneObject)
		if err != nil {
			return domain.InitOutput{}, err
		}
		out.MicrophoneUploadURL = &mic.URL
		out.MicrophoneUploadToken = &mic.Token
		out.MicrophonePath = &mic.Path
	}

	if in.HasVideo {
		vid, err := s.granter.CreateSignedUpload(ctx, s.videoBucket, id+"/"+VideoObject)
		if err != nil {
			return domain.InitOutput{}, err
		}
		out.VideoUploadURL = &vid.URL
		out.VideoUploadToken = &vid.Token
		out.VideoPath = &vid.Path
	}

	return out, nil
}

// Finalize persists the report row. Ownership always comes from the verified
// subject, never from the request body.
func (s *Svc) Finalize(ctx context.Context, subjectID string, in domain.CompleteInput) (domain.CompleteOutput, error) {
	if subjectID == "" {
		return domain.CompleteOutput{}, perr.Unauthorizedf("missing subject")
	}
	if in.ReportID == "" {
		return domain.CompleteOutput{}, perr.Validationf("report_id is required")
	}

	row := domain.Row{
		ID:                 in.ReportID,
		UserID:             subjectID,
		Description:        in.Description,
		Targeted:           in.Targeted,
		DesiredAction:      in.DesiredAction,
		RecordingStartUTC:  in.RecordingStartUTC,
		FlagUTC:            in.FlagUTC,
		ClipStartOffsetSec: in.ClipStartOffsetSec,
		ClipEndOffsetSec:   in.ClipEndOffsetSec,
		AudioPath:          combinedAudioPath(in.AudioPath, in.MicrophonePath),
		VideoPath:          in.VideoPath,
		Processed:          false,
	}

	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Insert(ctx, row)
	})
	if err != nil {
		return domain.CompleteOutput{}, err
	}
	return domain.CompleteOutput{OK: true, ReportID: in.ReportID}, nil
}

// combinedAudioPath joins the system audio and microphone paths with a comma,
// dropping blanks; both missing yields NULL
func combinedAudioPath(audio, mic *string) *string {
	joined := pstrings.JoinNonEmpty(",", pstrings.Deref(audio), pstrings.Deref(mic))
	if joined == "" {
		return nil
	}
	return &joined
}
