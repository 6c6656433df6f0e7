package core

import "github.com/coreos/go-semver/semver"

// RawVersion is the unparsed raw version of scarab.
const RawVersion = "0.3.1"

// ScarabVersion is the current version of scarab.
var ScarabVersion = *semver.New(RawVersion)
