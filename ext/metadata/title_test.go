package metadata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goto/salt/log"
	"github.com/stretchr/testify/assert"

	"github.com/goto/folio/ext/metadata"
	"github.com/goto/folio/internal/errors"
)

func TestTitleFetcher(t *testing.T) {
	ctx := context.Background()
	fetcher := metadata.NewTitleFetcher(log.NewNoop(), time.Second, 0)

	t.Run("returns error when url is empty", func(t *testing.T) {
		_, err := fetcher.FetchTitle(ctx, " ")

		assert.True(t, errors.IsErrorType(err, errors.ErrInvalidArgument))
		assert.EqualError(t, err, "URL is required")
	})
	t.Run("returns title of the page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html><head><title> Effective Go </title></head><body></body></html>"))
		}))
		defer srv.Close()

		title, err := fetcher.FetchTitle(ctx, srv.URL)

		assert.Nil(t, err)
		assert.Equal(t, "Effective Go", title)
	})
	t.Run("returns not found when page has no title", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html><body><h1>untitled</h1></body></html>"))
		}))
		defer srv.Close()

		_, err := fetcher.FetchTitle(ctx, srv.URL)

		assert.True(t, errors.IsErrorType(err, errors.ErrNotFound))
		assert.EqualError(t, err, "No <title> tag found")
	})
	t.Run("returns internal error when page cannot be fetched", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := fetcher.FetchTitle(ctx, srv.URL)

		assert.True(t, errors.IsErrorType(err, errors.ErrInternalError))
		assert.True(t, strings.HasPrefix(err.Error(), "Error fetching title"))
	})
}

func TestTitleFrom(t *testing.T) {
	title, err := metadata.TitleFrom(strings.NewReader("<title></title><svg><title>icon</title></svg>"))

	assert.Nil(t, err)
	assert.Equal(t, "icon", title)
}
