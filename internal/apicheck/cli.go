package apicheck

import "os"

// ShowHelp prints usage information for the api check tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Pokédex API Check
=================

Probes a running query API and verifies that lookups are sorted and
distinct, filters and limits are honoured, and repeated requests answer
identically. Exits non-zero when any check fails.

Usage:
  go run ./cmd/apicheck [options]

Options:
  -url string
        Base URL of the API (default "http://localhost:8000")
  -workers int
        Number of concurrent checkers (default 4)
  -probes int
        Maximum number of types and countries probed individually (default 20)
  -timeout duration
        HTTP request timeout (default 10s)
  -log-format string
        text or json (default "text")
  -verbose
        Log every passing check
  -help
        Show this help message

Examples:
  go run ./cmd/apicheck
  go run ./cmd/apicheck -url http://localhost:9000 -workers 8 -verbose
`)
}
