package app

import "fmt"

// Build metadata, overridden through ldflags:
//
//	go build -ldflags "-X github.com/heartmarshall/pidgin-backend/internal/app.Version=1.2.0" ./cmd/server
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the one-line build description logged at startup.
func BuildVersion() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", serviceName, Version, Commit, BuildTime)
}
