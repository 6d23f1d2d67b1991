// cmd/qmlc/main.go
package main

import (
	qmlc "github.com/CodeMeister99/QML-Compare/internal/commands"
)

// Build-time variables, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = qmlc.SetVersionInfo
	executeCmd     = qmlc.Execute
)

// main starts the qmlc CLI by delegating to the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
