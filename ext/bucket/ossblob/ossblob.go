// Package ossblob provides a gocloud blob driver backed by Alibaba Cloud OSS.
// Buckets can be opened with OpenBucket or through the "oss" URL scheme, e.g.
// oss://covers?endpoint=oss-ap-southeast-5.aliyuncs.com&region=ap-southeast-5
package ossblob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"gocloud.dev/blob"
	"gocloud.dev/blob/driver"
	"gocloud.dev/gcerrors"
)

const (
	Scheme = "oss"

	envAccessKeyID     = "OSS_ACCESS_KEY_ID"
	envAccessKeySecret = "OSS_ACCESS_KEY_SECRET"
	envSessionToken    = "OSS_SESSION_TOKEN"

	defaultPageSize = 1000
)

func init() {
	blob.DefaultURLMux().RegisterBucket(Scheme, &URLOpener{})
}

// URLOpener opens OSS buckets using credentials from the environment
type URLOpener struct{}

func (*URLOpener) OpenBucketURL(ctx context.Context, u *url.URL) (*blob.Bucket, error) {
	query := u.Query()
	endpoint, region := query.Get("endpoint"), query.Get("region")
	if endpoint == "" || region == "" {
		return nil, fmt.Errorf("open bucket %v: endpoint and region query parameters are required", u)
	}

	provider := credentials.NewStaticCredentialsProvider(
		os.Getenv(envAccessKeyID), os.Getenv(envAccessKeySecret), os.Getenv(envSessionToken),
	)
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(provider).
		WithEndpoint(endpoint).
		WithRegion(region)

	return OpenBucket(ctx, cfg, u.Host)
}

func OpenBucket(_ context.Context, cfg *oss.Config, bucketName string) (*blob.Bucket, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("ossblob.OpenBucket: oss config is required")
	case cfg.CredentialsProvider == nil:
		return nil, errors.New("ossblob.OpenBucket: credentials provider is required")
	case bucketName == "":
		return nil, errors.New("ossblob.OpenBucket: bucket name is required")
	}

	return blob.NewBucket(&bucket{client: oss.NewClient(cfg), name: bucketName}), nil
}

type bucket struct {
	client *oss.Client
	name   string
}

func (b *bucket) As(i interface{}) bool {
	p, ok := i.(**oss.Client)
	if ok {
		*p = b.client
	}
	return ok
}

func (*bucket) ErrorCode(err error) gcerrors.ErrorCode {
	var svcErr *oss.ServiceError
	if !errors.As(err, &svcErr) {
		return gcerrors.Internal
	}

	switch svcErr.StatusCode {
	case http.StatusNotFound:
		return gcerrors.NotFound
	case http.StatusForbidden:
		return gcerrors.PermissionDenied
	case http.StatusConflict:
		return gcerrors.AlreadyExists
	case http.StatusBadRequest:
		return gcerrors.InvalidArgument
	default:
		return gcerrors.Internal
	}
}

func (*bucket) ErrorAs(err error, target interface{}) bool {
	switch p := target.(type) {
	case **oss.ServiceError:
		return errors.As(err, p)
	case **oss.ClientError:
		return errors.As(err, p)
	case **oss.CanceledError:
		return errors.As(err, p)
	case **oss.SerializationError:
		return errors.As(err, p)
	}
	return false
}

func (b *bucket) Attributes(ctx context.Context, key string) (*driver.Attributes, error) {
	head, err := b.client.HeadObject(ctx, &oss.HeadObjectRequest{Bucket: &b.name, Key: &key})
	if err != nil {
		return nil, err
	}

	return &driver.Attributes{
		CacheControl:       deref(head.CacheControl),
		ContentDisposition: deref(head.ContentDisposition),
		ContentEncoding:    deref(head.ContentEncoding),
		Metadata:           head.Metadata,
		Size:               head.ContentLength,
		ModTime:            deref(head.LastModified),
		MD5:                []byte(deref(head.ContentMD5)),
		ETag:               deref(head.ETag),
		AsFunc: func(i interface{}) bool {
			p, ok := i.(**oss.HeadObjectResult)
			if ok {
				*p = head
			}
			return ok
		},
	}, nil
}

func (b *bucket) ListPaged(ctx context.Context, opts *driver.ListOptions) (*driver.ListPage, error) {
	req := &oss.ListObjectsV2Request{
		Bucket:    &b.name,
		Prefix:    &opts.Prefix,
		Delimiter: &opts.Delimiter,
		MaxKeys:   int32(opts.PageSize),
	}
	if req.MaxKeys == 0 {
		req.MaxKeys = defaultPageSize
	}
	if len(opts.PageToken) > 0 {
		token := string(opts.PageToken)
		req.ContinuationToken = &token
	}

	paginator := b.client.NewListObjectsV2Paginator(req)
	if !paginator.HasNext() {
		return &driver.ListPage{}, nil
	}
	result, err := paginator.NextPage(ctx)
	if err != nil {
		return nil, err
	}

	page := &driver.ListPage{Objects: make([]*driver.ListObject, 0, len(result.Contents))}
	for _, obj := range result.Contents {
		obj := obj
		key := deref(obj.Key)
		page.Objects = append(page.Objects, &driver.ListObject{
			Key:     key,
			IsDir:   strings.HasSuffix(key, "/"),
			ModTime: deref(obj.LastModified),
			Size:    obj.Size,
			MD5:     []byte(deref(obj.ETag)),
			AsFunc: func(i interface{}) bool {
				p, ok := i.(*oss.ObjectProperties)
				if ok {
					*p = obj
				}
				return ok
			},
		})
	}
	if next := deref(result.NextContinuationToken); next != "" {
		page.NextPageToken = []byte(next)
	}
	return page, nil
}

func (b *bucket) NewRangeReader(ctx context.Context, key string, offset, length int64, _ *driver.ReaderOptions) (driver.Reader, error) {
	get := func(ctx context.Context, httpRange oss.HTTPRange) (*oss.ReaderRangeGetOutput, error) {
		req := &oss.GetObjectRequest{Bucket: &b.name, Key: &key}
		if rng := httpRange.FormatHTTPRange(); rng != nil {
			behavior := "standard"
			req.Range = rng
			req.RangeBehavior = &behavior
		}

		result, err := b.client.GetObject(ctx, req)
		if err != nil {
			return nil, err
		}
		return &oss.ReaderRangeGetOutput{
			Body:          result.Body,
			ETag:          result.ETag,
			ContentLength: result.ContentLength,
			ContentRange:  result.ContentRange,
		}, nil
	}

	rangeReader, err := oss.NewRangeReader(ctx, get, &oss.HTTPRange{Offset: offset, Count: length}, "")
	if err != nil {
		return nil, err
	}
	return &reader{body: rangeReader, raw: rangeReader}, nil
}

func (b *bucket) NewTypedWriter(ctx context.Context, key, contentType string, opts *driver.WriterOptions) (driver.Writer, error) {
	req := oss.PutObjectRequest{
		Bucket:      &b.name,
		Key:         &key,
		ContentType: &contentType,
		Metadata:    opts.Metadata,
	}
	if opts.CacheControl != "" {
		req.CacheControl = &opts.CacheControl
	}
	if opts.ContentDisposition != "" {
		req.ContentDisposition = &opts.ContentDisposition
	}
	if opts.ContentEncoding != "" {
		req.ContentEncoding = &opts.ContentEncoding
	}

	return newWriter(ctx, b.client, req), nil
}

func (b *bucket) Copy(ctx context.Context, dstKey, srcKey string, _ *driver.CopyOptions) error {
	_, err := oss.NewCopier(b.client).Copy(ctx, &oss.CopyObjectRequest{
		Bucket:       &b.name,
		Key:          &dstKey,
		SourceBucket: &b.name,
		SourceKey:    &srcKey,
	})
	return err
}

func (b *bucket) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &oss.DeleteObjectRequest{Bucket: &b.name, Key: &key})
	return err
}

func (b *bucket) SignedURL(ctx context.Context, key string, opts *driver.SignedURLOptions) (string, error) {
	res, err := b.client.Presign(ctx, &oss.GetObjectRequest{Bucket: &b.name, Key: &key}, oss.PresignExpires(opts.Expiry))
	if err != nil {
		return "", err
	}
	return res.URL, nil
}

func (*bucket) Close() error { return nil }

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
