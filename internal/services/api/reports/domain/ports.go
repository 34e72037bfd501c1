package domain

import "context"

// ServicePort is the interface implemented by the reports service
type ServicePort interface {
	Initiate(ctx context.Context, subjectID string, in InitInput) (InitOutput, error)
	Finalize(ctx context.Context, subjectID string, in CompleteInput) (CompleteOutput, error)
}

// Grant is one signed upload slot issued by the storage service
type Grant struct {
	URL   string
	Token string
	Path  string
}

// GrantPort issues a signed upload grant for one object in a bucket
type GrantPort interface {
	CreateSignedUpload(ctx context.Context, bucket, objectPath string) (Grant, error)
}
