package validate

import "testing"

func TestClassifyOS(t *testing.T) {
	tests := []struct {
		name string
		want Platform
	}{
		{"linux", PlatformUnix},
		{"Linux", PlatformUnix},
		{"LINUX", PlatformUnix},
		{"freebsd", PlatformUnix},
		{"openbsd", PlatformUnix},
		{"netbsd", PlatformUnix},
		{"dragonfly", PlatformUnix},
		{"GNU/Linux", PlatformUnix},
		{"unix", PlatformUnix},
		{"darwin", PlatformDarwin},
		{"Mac OS X", PlatformDarwin},
		{"macOS", PlatformDarwin},
		{"windows", PlatformWindows},
		{"Windows 11", PlatformWindows},
		{"WIN32", PlatformWindows},
		{"SunOS", PlatformUnknown},
		{"solaris", PlatformUnknown},
		{"illumos", PlatformUnknown},
		{"plan9", PlatformUnknown},
		{"", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyOS(tt.name); got != tt.want {
				t.Errorf("ClassifyOS(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestPlatform_Supported(t *testing.T) {
	if !PlatformUnix.Supported() {
		t.Error("PlatformUnix must be supported")
	}
	for _, p := range []Platform{PlatformDarwin, PlatformWindows, PlatformUnknown} {
		if p.Supported() {
			t.Errorf("%v must not be supported", p)
		}
	}
}

func TestPlatform_String(t *testing.T) {
	tests := []struct {
		platform Platform
		want     string
	}{
		{PlatformUnix, "unix"},
		{PlatformDarwin, "darwin"},
		{PlatformWindows, "windows"},
		{PlatformUnknown, "unknown"},
		{Platform(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.platform.String(); got != tt.want {
			t.Errorf("Platform(%d).String() = %q, want %q", tt.platform, got, tt.want)
		}
	}
}
