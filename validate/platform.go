package validate

import "strings"

// Platform classifies a host operating system family for validation
// dispatch. Only Unix-like platforms are supported; everything else fails
// explicitly rather than degrading silently.
type Platform int

const (
	// PlatformUnknown is any OS family this package cannot classify.
	PlatformUnknown Platform = iota
	// PlatformUnix covers Linux and the BSDs.
	PlatformUnix
	// PlatformDarwin is macOS.
	PlatformDarwin
	// PlatformWindows is Windows.
	PlatformWindows
)

// String returns the string representation of the platform.
func (p Platform) String() string {
	switch p {
	case PlatformUnix:
		return "unix"
	case PlatformDarwin:
		return "darwin"
	case PlatformWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// Supported returns true if script validation is implemented for the platform.
func (p Platform) Supported() bool {
	return p == PlatformUnix
}

// ClassifyOS maps an OS-identifying string, such as runtime.GOOS or a
// vendor "OS name" value, to a Platform. Matching is case-insensitive and
// locale-independent (ASCII lowering only, so Turkish-style casing rules
// cannot change the result).
func ClassifyOS(name string) Platform {
	n := lowerASCII(name)
	switch {
	// Darwin must be checked before Windows: "darwin" contains "win".
	case strings.Contains(n, "darwin") || strings.Contains(n, "mac"):
		return PlatformDarwin
	case strings.Contains(n, "win"):
		return PlatformWindows
	case strings.Contains(n, "sunos") || strings.Contains(n, "solaris") ||
		strings.Contains(n, "illumos"):
		return PlatformUnknown
	case strings.Contains(n, "linux") || strings.Contains(n, "bsd") ||
		strings.Contains(n, "dragonfly") || strings.Contains(n, "nux") ||
		strings.Contains(n, "nix"):
		return PlatformUnix
	default:
		return PlatformUnknown
	}
}

// lowerASCII lowers A-Z only, ignoring locale casing tables.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
