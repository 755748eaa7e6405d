// Package csvimport ingests operator-uploaded CSV files of indicator
// releases.
//
// Parsing follows RFC4180: quoted fields may contain the delimiter,
// embedded newlines and doubled-quote escapes. The first non-blank line
// names the columns; short rows are right-padded, long rows truncated, and
// blank lines skipped. Every row is validated before anything is written;
// a single bad row rejects the whole file, with the response carrying the
// first ten errors and the total count.
//
// Accepted rows flow through the same reconciliation engine as the agency
// adapters, and the raw file is archived to object storage when configured.
package csvimport
