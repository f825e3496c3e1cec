package cli

import (
	"fmt"

	"github.com/blang/semver"
)

// Version is the release of this build; overridden with
// -ldflags "-X github.com/Fepozopo/histeq/pkg/cli.Version=...".
var Version = "0.3.0"

// ParseVersion parses v leniently ("v1.2", " 1.2.3 " are accepted).
func ParseVersion(v string) (semver.Version, error) {
	sv, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid version %q: %w", v, err)
	}
	return sv, nil
}

// VersionString reports the build version, flagging builds whose Version is
// not valid semver.
func VersionString() string {
	sv, err := ParseVersion(Version)
	if err != nil {
		return fmt.Sprintf("histeq %s (unparsed: %v)", Version, err)
	}
	return "histeq v" + sv.String()
}

// CheckMinVersion reports whether the build satisfies a minimum version,
// e.g. one pinned in a .env file via HISTEQ_MIN_VERSION.
func CheckMinVersion(minVer string) error {
	want, err := ParseVersion(minVer)
	if err != nil {
		return err
	}
	have, err := ParseVersion(Version)
	if err != nil {
		return err
	}
	if have.LT(want) {
		return fmt.Errorf("histeq %s is older than required %s", have, want)
	}
	return nil
}
