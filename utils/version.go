package utils

import (
	"runtime"
	"time"
)

var (
	BuildDate   = ""
	BuildName   = "dev"
	VersionName = "0"
)

func init() {
	if BuildDate == "" {
		BuildDate = time.Now().Format("2006-01-02")
	}

	// strip out possible semver v
	if len(VersionName) > 0 && VersionName[0] == 'v' {
		VersionName = VersionName[1:]
	} else if VersionName == "main" {
		VersionName = "edge"
	}
}

// VersionString is the one line representation printed by the version command.
func VersionString() string {
	return VersionName + " " + BuildDate + " " + BuildName + " (" + runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
