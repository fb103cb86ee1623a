package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/aftershock/internal/testutil"
)

const catalog = `Time, Magnitude ,Place
10 Oct 2025 - 5:14 PM,7.4,"Manay, Davao Oriental"
10 Oct 2025 - 5:40 PM,5.9,Tarragona

10 Oct 2025 - 6:02 PM,4.8
`

func TestParseComma(t *testing.T) {
	table, err := Parse([]byte(catalog))
	require.NoError(t, err)

	assert.Equal(t, ',', table.Delimiter)
	assert.Equal(t, []string{"time", "magnitude", "place"}, table.Header)
	require.Len(t, table.Records, 3)

	assert.Equal(t, "10 Oct 2025 - 5:14 PM", table.Records[0]["time"])
	assert.Equal(t, "7.4", table.Records[0]["magnitude"])
	assert.Equal(t, "Manay, Davao Oriental", table.Records[0]["place"])
	assert.Equal(t, "", table.Records[2]["place"], "short rows leave missing columns empty")
}

func TestParseDelimiters(t *testing.T) {
	records := testutil.Burst(3, testutil.Mainshock)

	for _, d := range Delimiters {
		t.Run(string(d), func(t *testing.T) {
			text := testutil.CSV(records, d, "time", "magnitude")
			table, err := Parse([]byte(text))
			require.NoError(t, err)

			assert.Equal(t, d, table.Delimiter)
			require.Len(t, table.Records, 3)
			assert.Equal(t, "3.2", table.Records[2]["magnitude"])
			assert.Equal(t, "10 Oct 2025 - 5:14 PM", table.Records[2]["time"])
		})
	}
}

func TestParseTabEmptyCells(t *testing.T) {
	table, err := Parse([]byte("time\tdepth\tmagnitude\n10 Oct 2025 - 5:14 PM\t\t7.4\n"))
	require.NoError(t, err)

	require.Len(t, table.Records, 1)
	assert.Equal(t, "", table.Records[0]["depth"])
	assert.Equal(t, "7.4", table.Records[0]["magnitude"])
}

func TestParseByteOrderMarkAndCRLF(t *testing.T) {
	text := "\xef\xbb\xbftime;magnitude\r\n10 Oct 2025 - 5:14 PM;7.4\r\n"
	table, err := Parse([]byte(text))
	require.NoError(t, err)

	assert.Equal(t, ';', table.Delimiter)
	assert.True(t, table.Has("time"))
	require.Len(t, table.Records, 1)
	assert.Equal(t, "7.4", table.Records[0]["magnitude"])
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', SniffDelimiter("a,b,c"))
	assert.Equal(t, '\t', SniffDelimiter("a\tb\tc"))
	assert.Equal(t, '|', SniffDelimiter("a|b|c"))
	assert.Equal(t, ';', SniffDelimiter("a;b;c"))
	assert.Equal(t, ';', SniffDelimiter(`"a,b";c;d`), "quoted delimiters are ignored")
	assert.Equal(t, ',', SniffDelimiter("a,b;c"), "ties go to the earlier candidate")
	assert.Equal(t, ',', SniffDelimiter("single"))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "date & time", NormalizeHeader("  Date &  Time "))
	assert.Equal(t, "magnitude", NormalizeHeader("MAGNITUDE"))
	assert.Equal(t, "tiefe", NormalizeHeader("TIEFE"))
	// Decomposed e + combining acute composes to the same key as é.
	assert.Equal(t, NormalizeHeader("R\u00e9gion"), NormalizeHeader("Re\u0301gion"))
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0644))

	f := &Fetcher{}
	table, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, table.Source)
	assert.Len(t, table.Records, 3)
}

func TestFetchMissingFile(t *testing.T) {
	f := &Fetcher{}
	_, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	var ingestErr *Error
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, "read", ingestErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadLimited(t *testing.T) {
	data, err := readLimited("catalog.csv", strings.NewReader("0123456789"), 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = readLimited("catalog.csv", strings.NewReader("0123456789A"), 10)
	require.Error(t, err)

	var ingestErr *Error
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, "read", ingestErr.Op)
	assert.Equal(t, "catalog.csv", ingestErr.Source)
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestFetchStdin(t *testing.T) {
	f := &Fetcher{Stdin: strings.NewReader(catalog)}
	table, err := f.Fetch(context.Background(), Stdin)
	require.NoError(t, err)
	assert.Len(t, table.Records, 3)
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(catalog))
	}))
	defer srv.Close()

	f := &Fetcher{Client: srv.Client()}

	table, err := f.Fetch(context.Background(), srv.URL+"/catalog.csv")
	require.NoError(t, err)
	assert.Len(t, table.Records, 3)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.csv")
	require.Error(t, err)
	var ingestErr *Error
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, "fetch", ingestErr.Op)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchURLCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalog))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &Fetcher{Client: srv.Client()}
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
