// Package version exposes the bialog build version.
package version

// version is overridden at build time with -ldflags "-X".
//
//nolint:gochecknoglobals // Set by the linker.
var version = "dev"

// GetVersion returns the build version.
func GetVersion() string {
	return version
}
