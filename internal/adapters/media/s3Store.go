package media

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gofrs/uuid"
)

// S3Store uploads binary blobs to an S3 bucket and returns a durable URL.
type S3Store struct {
	bucket   string
	baseURL  string
	uploader *s3manager.Uploader
}

// NewS3Store builds the store for the given bucket. baseURL is an optional
// public prefix (CDN or website endpoint); when empty the uploader's own
// location is returned instead.
func NewS3Store(bucket, region, baseURL string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3Store{
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, folder, filename string, body io.Reader) (string, error) {
	key := folder + "/" + uuid.Must(uuid.NewV4()).String() + strings.ToLower(path.Ext(filename))

	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}

	if s.baseURL != "" {
		return s.baseURL + "/" + key, nil
	}
	return out.Location, nil
}
