package reader

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ErrEmptyDownload marks a remote fetch that succeeded but carried no data.
var ErrEmptyDownload = errors.New("download returned no data")

// DownloadError reports a failed remote package fetch; Unwrap exposes the
// network or payload cause.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Open opens a package stored at a filesystem path.
func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening package %s: %w", path, err)
	}
	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenBytes opens a package held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	br := bytes.NewReader(data)
	return OpenReaderAt(br, br.Size())
}

// OpenReaderAt opens a package from random-access storage.
func OpenReaderAt(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	return newReader(zr)
}

// OpenStream opens a package from a sequential stream. Zip archives need
// random access (the central directory sits at the end), so the stream is
// buffered fully first.
func OpenStream(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering package stream: %w", err)
	}
	return OpenBytes(data)
}

// OpenFile opens a package from an already-opened file. The reader takes
// ownership and closes it.
func OpenFile(f *os.File) (*Reader, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("inspecting package file: %w", err)
	}
	r, err := OpenReaderAt(f, info.Size())
	if err != nil {
		return nil, err
	}
	r.closer = f
	return r, nil
}

// OpenURL downloads a package and opens it. Network failures, non-2xx
// responses, and empty payloads each surface as a *DownloadError.
func OpenURL(url string) (*Reader, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	if len(data) == 0 {
		return nil, &DownloadError{URL: url, Err: ErrEmptyDownload}
	}
	return OpenBytes(data)
}
