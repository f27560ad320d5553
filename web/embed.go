// Package web holds the dashboard page compiled into the binary.
package web

import _ "embed"

//go:embed dashboard.html
var Dashboard []byte
