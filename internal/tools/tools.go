//go:build tools
// +build tools

// Package tools pins build-time tool dependencies, so that `go generate`
// runs a version of stringer recorded in go.mod.
package tools

import (
	_ "golang.org/x/tools/cmd/stringer"
)
