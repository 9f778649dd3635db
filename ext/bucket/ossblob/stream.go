package ossblob

import (
	"context"
	"io"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"gocloud.dev/blob/driver"
)

type reader struct {
	body io.ReadCloser
	raw  *oss.RangeReader
}

func (r *reader) Read(p []byte) (int, error) { return r.body.Read(p) }

func (r *reader) Close() error { return r.body.Close() }

func (r *reader) As(i interface{}) bool {
	p, ok := i.(**oss.RangeReader)
	if ok {
		*p = r.raw
	}
	return ok
}

func (*reader) Attributes() *driver.ReaderAttributes {
	return &driver.ReaderAttributes{}
}

// writer streams into a single PutObject call through a pipe
type writer struct {
	req  oss.PutObjectRequest
	pw   *io.PipeWriter
	done chan struct{}
	err  error
}

func newWriter(ctx context.Context, client *oss.Client, req oss.PutObjectRequest) *writer {
	pr, pw := io.Pipe()
	req.Body = pr

	w := &writer{req: req, pw: pw, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		_, w.err = client.PutObject(ctx, &w.req)
		pr.CloseWithError(w.err)
	}()
	return w
}

func (w *writer) Write(p []byte) (int, error) { return w.pw.Write(p) }

func (w *writer) Close() error {
	w.pw.Close()
	<-w.done
	return w.err
}

func (w *writer) As(i interface{}) bool {
	p, ok := i.(**oss.PutObjectRequest)
	if ok {
		*p = &w.req
	}
	return ok
}
