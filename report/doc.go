// Package report renders alignment results and ingest summaries as plain
// text for the command line.
package report
