// Package fetch downloads remote FASTA files to local paths.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a whole download, body included.
const DefaultTimeout = 60 * time.Second

// ErrBadStatus is returned for any non-2xx response.
var ErrBadStatus = errors.New("unexpected HTTP status")

// Result describes a finished download.
type Result struct {
	Path  string
	Bytes int64
}

type Fetcher struct {
	Client  *http.Client
	Timeout time.Duration
	// Dir receives files downloaded without an explicit destination.
	// Empty means os.TempDir().
	Dir string
}

func New(timeout time.Duration) *Fetcher {
	return &Fetcher{Client: http.DefaultClient, Timeout: timeout}
}

// DefaultPath names a fresh destination for url-only downloads.
func (f *Fetcher) DefaultPath() string {
	dir := f.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "camel-"+uuid.NewString()+".fa")
}

// Fetch GETs url into dest (created or truncated). An empty dest gets a
// generated name. The file is removed again if anything fails.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (Result, error) {
	if dest == "" {
		dest = f.DefaultPath()
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, err
	}
	logrus.WithFields(logrus.Fields{"url": url, "dest": dest}).Info("download started")

	resp, err := client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return Result{}, err
	}
	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return Result{}, fmt.Errorf("download %s: %w", url, err)
	}
	logrus.WithFields(logrus.Fields{"url": url, "dest": dest, "bytes": n}).Debug("download finished")
	return Result{Path: dest, Bytes: n}, nil
}
