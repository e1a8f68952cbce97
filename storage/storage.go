// Package storage keeps copies of imported files and exported reports in an AWS S3 bucket or compatible
// storage such as minIO.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/silinternational/terra/domain"
)

// Key prefixes
const (
	PrefixImports = "imports"
	PrefixReports = "reports"
)

type ObjectURL struct {
	URL        string
	Expiration time.Time
}

type config struct {
	accessKeyID     string
	secretAccessKey string
	endpoint        string
	region          string
	bucket          string
	disableSSL      bool
	urlLifespan     time.Duration
}

func configFromEnv() config {
	c := config{
		accessKeyID:     domain.Env.AwsAccessKeyID,
		secretAccessKey: domain.Env.AwsSecretAccessKey,
		endpoint:        domain.Env.AwsS3Endpoint,
		region:          domain.Env.AwsRegion,
		bucket:          domain.Env.AwsS3Bucket,
		disableSSL:      domain.Env.AwsS3DisableSSL,
		urlLifespan:     time.Duration(domain.Env.AwsS3URLLifeMinutes) * time.Minute,
	}

	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		c.accessKeyID = "abc123"
		c.secretAccessKey = "abcd1234"
	}
	return c
}

func newService(c config) (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(c.accessKeyID, c.secretAccessKey, ""),
		Endpoint:         aws.String(c.endpoint),
		Region:           aws.String(c.region),
		DisableSSL:       aws.Bool(c.disableSSL),
		S3ForcePathStyle: aws.Bool(len(c.endpoint) > 0),
	})
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

// Enabled is true if a bucket is configured
func Enabled() bool {
	return domain.Env.AwsS3Bucket != ""
}

// Key builds an object key of the form <prefix>/<kind>/<yyyy-mm-dd>/<hhmmss>_<filename>
func Key(prefix, kind, filename string, at time.Time) string {
	at = at.UTC()
	name := strings.ReplaceAll(path.Base("/"+filename), " ", "_")
	return path.Join(prefix, kind, at.Format(domain.DateFormat), at.Format("150405")+"_"+name)
}

// presign returns a temporary URL for downloading the object
func presign(c config, svc *s3.S3, key string) (ObjectURL, error) {
	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})

	u, err := req.Presign(c.urlLifespan)
	if err != nil {
		return ObjectURL{}, fmt.Errorf("error presigning %s: %w", key, err)
	}

	// a little before the actual expiration to account for delays
	return ObjectURL{URL: u, Expiration: time.Now().Add(c.urlLifespan - time.Minute)}, nil
}

// StoreFile saves content in the configured bucket and returns a temporary URL for it
func StoreFile(key, contentType string, content []byte) (ObjectURL, error) {
	c := configFromEnv()
	svc, err := newService(c)
	if err != nil {
		return ObjectURL{}, err
	}

	if _, err := svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(content),
	}); err != nil {
		return ObjectURL{}, fmt.Errorf("error storing %s: %w", key, err)
	}

	return presign(c, svc, key)
}

// GetFileURL returns a temporary URL for a stored object
func GetFileURL(key string) (ObjectURL, error) {
	c := configFromEnv()
	svc, err := newService(c)
	if err != nil {
		return ObjectURL{}, err
	}
	return presign(c, svc, key)
}

// ListFiles returns the keys of stored objects that start with the prefix, in key order
func ListFiles(prefix string) ([]string, error) {
	c := configFromEnv()
	svc, err := newService(c)
	if err != nil {
		return nil, err
	}

	var keys []string
	err = svc.ListObjectsV2Pages(&s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, o := range page.Contents {
			keys = append(keys, aws.StringValue(o.Key))
		}
		return true
	})
	return keys, err
}

// CreateS3Bucket creates the configured bucket. An existing bucket is not an error.
func CreateS3Bucket() error {
	env := domain.Env.GoEnv
	if env != domain.EnvTest && env != domain.EnvDevelopment {
		return errors.New("CreateS3Bucket should only be used in test and development")
	}

	c := configFromEnv()
	svc, err := newService(c)
	if err != nil {
		return err
	}

	if _, err := svc.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(c.bucket)}); err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) {
			switch aerr.Code() {
			case s3.ErrCodeBucketAlreadyExists, s3.ErrCodeBucketAlreadyOwnedByYou:
				return nil
			}
		}
		return err
	}
	return nil
}
