// Package version identifies the running build to connected clients.
package version

import (
	"fmt"
	"os"
	"time"
)

// Version is the base build version, overridable at link time:
//
//	go build -ldflags "-X github.com/tranvh/menuboard/internal/version.Version=1.4.0"
var Version = "dev"

var startedAt = time.Now().Unix()

// String returns the version announced to clients. The process start
// timestamp is appended so every restart looks like a new version and
// forces clients to reload. The APP_VERSION environment variable
// overrides the whole string.
func String() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	return fmt.Sprintf("%s-%d", Version, startedAt)
}
