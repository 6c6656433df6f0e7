// Package cli contains helper functions related to flag parsing and logging.
package cli

import (
	"fmt"

	"github.com/coreos/go-semver/semver"
	"github.com/dustin/go-humanize"
	cli "github.com/peterebden/go-cli-init/v5/flags"
	"github.com/thought-machine/go-flags"
)

// ParseFlagsOrDie parses the app's flags and dies if unsuccessful.
// Also dies if any unexpected arguments are passed.
// It returns the active command if there is one.
func ParseFlagsOrDie(appname string, data interface{}) string {
	return cli.ParseFlagsOrDie(appname, data, nil)
}

// ParseFlags parses the app's flags and returns the parser, any extra arguments
// and any error encountered. Most callers want ParseFlagsOrDie; this one is for
// apps that need to inspect flags before deciding whether a parse failure matters.
func ParseFlags(appname string, data interface{}, args []string) (*flags.Parser, []string, error) {
	return cli.ParseFlags(appname, data, args, flags.PassDoubleDash, nil, nil)
}

// ParseFlagsFromArgsOrDie is similar to ParseFlagsOrDie but allows control over the
// flags passed.
// It returns the active command if there is one.
func ParseFlagsFromArgsOrDie(appname string, data interface{}, args []string) string {
	return cli.ParseFlagsFromArgsOrDie(appname, data, args, nil)
}

// ActiveCommand returns the name of the currently active command.
func ActiveCommand(command *flags.Command) string {
	return cli.ActiveCommand(command)
}

// A ByteSize is used for flags and config fields that represent some quantity of
// bytes that can be passed as human-readable quantities (eg. "10M").
type ByteSize uint64

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (b *ByteSize) UnmarshalFlag(in string) error {
	b2, err := humanize.ParseBytes(in)
	*b = ByteSize(b2)
	return flagsError(err)
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (b *ByteSize) UnmarshalText(text []byte) error {
	return b.UnmarshalFlag(string(text))
}

// A Duration is used for flags that represent a time duration; it's just a wrapper
// around time.Duration that implements the flags.Unmarshaler and
// encoding.TextUnmarshaler interfaces.
type Duration = cli.Duration

// A Version is an extension to semver.Version that implements the flags interfaces
// so it can be used as a flag or config field.
type Version struct {
	semver.Version
	IsSet bool
}

// NewVersion creates a new version from the given string.
func NewVersion(in string) (*Version, error) {
	v := &Version{}
	return v, v.UnmarshalFlag(in)
}

// MustNewVersion creates a new version and dies if it is not parseable.
func MustNewVersion(in string) *Version {
	v, err := NewVersion(in)
	if err != nil {
		log.Fatalf("Failed to parse version %s: %s", in, err)
	}
	return v
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (v *Version) UnmarshalText(text []byte) error {
	return v.UnmarshalFlag(string(text))
}

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (v *Version) UnmarshalFlag(in string) error {
	if err := v.Set(in); err != nil {
		return flagsError(err)
	}
	v.IsSet = true
	return nil
}

// String implements the fmt.Stringer interface
func (v Version) String() string {
	return v.Version.String()
}

// Unset resets this version to the default.
func (v *Version) Unset() {
	*v = Version{}
}

// flagsError converts an error to a flags.Error, which is required for flag parsing.
func flagsError(err error) error {
	if err == nil {
		return nil
	}
	return &flags.Error{Type: flags.ErrMarshal, Message: err.Error()}
}
