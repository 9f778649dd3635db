package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/goto/salt/log"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"

	"github.com/goto/folio/internal/errors"
)

const (
	EntityMetadata = "metadata"

	maxPageBytes = 1 << 20
)

var titleSelector = cascadia.MustCompile("title")

// TitleFetcher reads the <title> of remote pages linked as blog references.
type TitleFetcher struct {
	client *retryablehttp.Client
}

func NewTitleFetcher(logger log.Logger, timeout time.Duration, retryMax int) *TitleFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = logger

	return &TitleFetcher{client: client}
}

func (f *TitleFetcher) FetchTitle(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.InvalidArgument(EntityMetadata, "URL is required")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.InvalidArgument(EntityMetadata, "invalid url: "+err.Error())
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.InternalError(EntityMetadata, "Error fetching title", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", errors.InternalError(EntityMetadata, "Error fetching title",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return TitleFrom(io.LimitReader(resp.Body, maxPageBytes))
}

// TitleFrom returns the first non empty <title> of an html document
func TitleFrom(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", errors.InternalError(EntityMetadata, "Error fetching title", err)
	}

	for _, node := range titleSelector.MatchAll(doc) {
		if node.FirstChild == nil {
			continue
		}
		if title := strings.TrimSpace(node.FirstChild.Data); title != "" {
			return title, nil
		}
	}
	return "", errors.NotFound(EntityMetadata, "No <title> tag found")
}
