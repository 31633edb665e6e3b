package buildconfig

// overridden at build time via -ldflags
var version = "snapshot"

func Version() string {
	return version
}
