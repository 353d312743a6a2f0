// Package version carries build metadata, set with -ldflags -X.
package version

var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
