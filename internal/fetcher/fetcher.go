// Package fetcher downloads gas-logging exports from well-site data servers,
// over HTTP with retry and rate limiting or over FTP.
package fetcher

import (
	"context"
	"io"
	"strings"
)

// Fetcher defines the interface for downloading remote datasets.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// ForURL returns the fetcher matching the URL scheme: FTPFetcher for ftp://,
// HTTPFetcher otherwise.
func ForURL(url string, httpOpts HTTPOptions, ftpOpts FTPOptions) Fetcher {
	if strings.HasPrefix(url, "ftp://") {
		return NewFTPFetcher(ftpOpts)
	}
	return NewHTTPFetcher(httpOpts)
}
