package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/roach88/aftershock/internal/event"
)

// Stdin is the source name that reads the catalog from standard input.
const Stdin = "-"

// MaxBodyBytes caps how much catalog text is read from any source.
const MaxBodyBytes = 64 << 20

// ErrTooLarge is wrapped by the read Error for a source over MaxBodyBytes.
var ErrTooLarge = errors.New("source too large")

// Table is a parsed catalog.
type Table struct {
	Source    string
	Delimiter rune
	Header    []string // normalized, in source order
	Records   []event.Record
}

// Has reports whether the table has a column with the given normalized name.
func (t *Table) Has(column string) bool {
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// Error is returned for every ingestion failure.
type Error struct {
	Source string
	Op     string // "fetch", "read" or "parse"
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ingest %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNoHeader is returned when the source has no header row.
var ErrNoHeader = errors.New("no header row")

// Fetcher loads catalog sources.
type Fetcher struct {
	// Client is used for http and https sources. Nil means a client built by
	// NewHTTPClient with DefaultTimeout.
	Client *http.Client

	// Stdin is read for the "-" source. Nil means os.Stdin.
	Stdin io.Reader
}

// Fetch loads and parses source, which may be an http(s) URL, a file path
// or "-" for standard input.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*Table, error) {
	data, err := f.read(ctx, source)
	if err != nil {
		return nil, err
	}
	table, err := Parse(data)
	if err != nil {
		return nil, &Error{Source: source, Op: "parse", Err: err}
	}
	table.Source = source
	return table, nil
}

func (f *Fetcher) read(ctx context.Context, source string) ([]byte, error) {
	switch {
	case source == Stdin:
		r := f.Stdin
		if r == nil {
			r = os.Stdin
		}
		return readAll(source, r)
	case isURL(source):
		return f.get(ctx, source)
	default:
		file, err := os.Open(source)
		if err != nil {
			return nil, &Error{Source: source, Op: "read", Err: err}
		}
		defer file.Close()
		return readAll(source, file)
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Source: url, Op: "fetch", Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Source: url, Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Source: url, Op: "fetch", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return readAll(url, resp.Body)
}

func readAll(source string, r io.Reader) ([]byte, error) {
	return readLimited(source, r, MaxBodyBytes)
}

// readLimited reads up to limit bytes and fails rather than truncating a
// longer source.
func readLimited(source string, r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &Error{Source: source, Op: "read", Err: err}
	}
	if int64(len(data)) > limit {
		return nil, &Error{Source: source, Op: "read", Err: fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)}
	}
	return data, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Parse reads delimited text with a header row.
//
// The delimiter is detected from the header line (see SniffDelimiter).
// Header names are normalized with NormalizeHeader; cell values are trimmed.
// Rows shorter than the header leave the missing columns empty; blank lines
// are skipped.
func Parse(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	delim := SniffDelimiter(firstLine(data))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = delim != '\t' // would swallow empty tab-separated cells
	r.LazyQuotes = true

	rawHeader, err := r.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	header := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		header[i] = NormalizeHeader(h)
	}

	table := &Table{Delimiter: delim, Header: header}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		rec := make(event.Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = strings.TrimSpace(row[i])
			} else {
				rec[name] = ""
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

func firstLine(data []byte) string {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return string(bytes.TrimRight(data, "\r"))
}
