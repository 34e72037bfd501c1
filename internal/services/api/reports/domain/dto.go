// Package domain holds DTOs for reports http and service contracts
package domain

import "time"

// InitInput asks the service to mint a report id and issue upload grants
type InitInput struct {
	HasMicrophone bool `json:"has_microphone"`
	HasVideo      bool `json:"has_video"`
}

// InitOutput carries the report id plus one grant per requested slot.
// Microphone and video fields are null when the slot was not requested.
type InitOutput struct {
	ReportID string `json:"report_id" example:"6a1f0a4e-0b1c-4f2d-9a3e-0c6d2f4b8a10"`

	AudioUploadURL   string `json:"audio_upload_url"`
	AudioUploadToken string `json:"audio_upload_token"`
	AudioPath        string `json:"audio_path" example:"6a1f0a4e-.../system_audio.webm"`

	MicrophoneUploadURL   *string `json:"microphone_upload_url"`
	MicrophoneUploadToken *string `json:"microphone_upload_token"`
	MicrophonePath        *string `json:"microphone_path"`

	VideoUploadURL   *string `json:"video_upload_url"`
	VideoUploadToken *string `json:"video_upload_token"`
	VideoPath        *string `json:"video_path"`
}

// CompleteInput finalizes a report; everything past report_id is optional
type CompleteInput struct {
	ReportID string `json:"report_id" validate:"required,min=1" example:"6a1f0a4e-0b1c-4f2d-9a3e-0c6d2f4b8a10"`

	Description   *string `json:"description"`
	Targeted      *bool   `json:"targeted"`
	DesiredAction *string `json:"desired_action"`

	RecordingStartUTC *time.Time `json:"recording_start_utc"`
	FlagUTC           *time.Time `json:"flag_utc"`

	ClipStartOffsetSec *float64 `json:"clip_start_offset_sec"`
	ClipEndOffsetSec   *float64 `json:"clip_end_offset_sec"`

	AudioPath      *string `json:"audio_path"`
	MicrophonePath *string `json:"microphone_path"`
	VideoPath      *string `json:"video_path"`
}

// CompleteOutput acknowledges the persisted report
type CompleteOutput struct {
	OK       bool   `json:"ok"`
	ReportID string `json:"report_id"`
}

// Row is the persistence view of a finalized report
type Row struct {
	ID            string
	UserID        string
	Description   *string
	Targeted      *bool
	DesiredAction *string

	RecordingStartUTC *time.Time
	FlagUTC           *time.Time

	ClipStartOffsetSec *float64
	ClipEndOffsetSec   *float64

	AudioPath *string
	VideoPath *string
	Processed bool
}
