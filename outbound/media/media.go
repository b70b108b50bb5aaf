package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// MediaOutbound uploads portfolio images to an S3-compatible bucket fronted
// by a public CDN base URL.
type MediaOutbound struct {
	Cfg *viper.Viper

	client  *s3.Client
	bucket  string
	baseURL string
}

func (out *MediaOutbound) Init(ctx context.Context) error {
	region := out.Cfg.GetString("media.region")
	endpoint := out.Cfg.GetString("media.endpoint")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			out.Cfg.GetString("media.access_key_id"),
			out.Cfg.GetString("media.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	out.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	out.bucket = out.Cfg.GetString("media.bucket")
	out.baseURL = strings.TrimRight(out.Cfg.GetString("media.base_url"), "/")

	_, err = out.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(out.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", out.bucket, err)
	}

	return nil
}

// Upload stores one object and returns the public URL and object key.
func (out *MediaOutbound) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := out.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(out.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", out.baseURL, key), nil
}

func (out *MediaOutbound) Delete(ctx context.Context, key string) error {
	_, err := out.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(out.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}
