package table

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ReadOptions control how a source is loaded into a Table.
type ReadOptions struct {
	// Header supplies explicit column names; the first row is then data.
	Header []string
	// NoHeader names columns by zero-based position instead of consuming
	// the first row. Ignored when Header is set.
	NoHeader bool
	// Delimiter is the field separator for delimited text. Empty means
	// auto-detect.
	Delimiter string
	// Sheet selects the worksheet for spreadsheet sources.
	Sheet SheetRef
	// Encoding is the character set of delimited text (IANA name).
	Encoding string
}

// Reader loads spreadsheet and delimited sources into Tables. Sources may
// be local paths or http(s) URLs; remote content is fetched fully into
// memory before parsing.
type Reader struct {
	client *http.Client
}

// NewReader creates a Reader. The timeout bounds remote source fetches.
func NewReader(timeout time.Duration) *Reader {
	return &Reader{client: &http.Client{Timeout: timeout}}
}

// Read loads the source at path into a Table. The file kind is chosen by
// extension: .xlsx and .xls are spreadsheets (Sheet applies, Delimiter
// and Encoding are ignored); everything else is delimited text.
func (r *Reader) Read(src string, opts ReadOptions) (*Table, error) {
	data, name, err := r.fetch(src)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return readExcel(data, opts)
	default:
		return readDelimited(data, opts)
	}
}

// fetch returns the raw source bytes and the path component used for
// extension dispatch.
func (r *Reader) fetch(src string) ([]byte, string, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		u, err := url.Parse(src)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q: %v", ErrSourceNotFound, src, err)
		}
		resp, err := r.client.Get(src)
		if err != nil {
			return nil, "", fmt.Errorf("%w: fetching %q: %v", ErrSourceNotFound, src, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("%w: fetching %q: status %s", ErrSourceNotFound, src, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", fmt.Errorf("%w: reading %q: %v", ErrParse, src, err)
		}
		return data, path.Base(u.Path), nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %q", ErrSourceNotFound, src)
		}
		return nil, "", fmt.Errorf("%w: %q: %v", ErrSourceNotFound, src, err)
	}
	return data, src, nil
}
