// Package platform resolves the host operating system and architecture
// to the vcpkg triplet used when installing dependencies.
package platform

import "runtime"

// Descriptor identifies a host operating system and CPU architecture.
// Values follow Go's runtime naming ("linux", "darwin", "windows";
// "amd64", "arm64").
type Descriptor struct {
	OS   string
	Arch string
}

// Current returns the descriptor for the running process.
func Current() Descriptor {
	return Descriptor{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// Triplet returns the vcpkg triplet for the given host.
//
// Windows builds use the mingw toolchain rather than MSVC. macOS is the
// only platform where the architecture matters; anything that is not
// arm64 falls back to x64-osx. Every other OS resolves to x64-linux.
func Triplet(d Descriptor) string {
	switch d.OS {
	case "windows":
		return "x64-mingw-static"
	case "darwin":
		if d.Arch == "arm64" {
			return "arm64-osx"
		}
		return "x64-osx"
	default:
		return "x64-linux"
	}
}
