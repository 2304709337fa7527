// Package blockpad holds build metadata shared by the blockpad packages.
package blockpad

import (
	_ "embed"
	"regexp"
	"runtime"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Commit is set at link time with -ldflags "-X github.com/iw2rmb/blockpad.Commit=...".
var Commit = ""

// Version returns the release version in SemVer format (without `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// BuildInfo is the one-line description printed by `blockpad version`.
func BuildInfo() string {
	var sb strings.Builder
	sb.WriteString("blockpad v")
	sb.WriteString(Version())
	if c := strings.TrimSpace(Commit); c != "" {
		if len(c) > 12 {
			c = c[:12]
		}
		sb.WriteString(" (" + c + ")")
	}
	sb.WriteString(" " + runtime.GOOS + "/" + runtime.GOARCH)
	return sb.String()
}

// UserAgent identifies outbound HTTP requests.
func UserAgent() string {
	return "blockpad/" + Version() + " (" + runtime.GOOS + ")"
}
