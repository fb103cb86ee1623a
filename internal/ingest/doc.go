// Package ingest loads the aftershock catalog: it fetches raw delimited text
// from a URL, a file or stdin, detects the delimiter, and parses rows into
// event records keyed by normalized header names.
//
// Ingestion is all-or-nothing. Any network, read or parse failure is
// returned as an *Error and no partial table is produced. There are no
// retries.
package ingest
