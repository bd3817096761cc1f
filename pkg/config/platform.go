package config

import "runtime"

// CurrentPlatform reports the running OS's platform convention. linux also
// covers macOS (darwin); any other GOOS defaults to windows.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "linux", "darwin":
		return Linux
	case "windows":
		return Windows
	default:
		return Windows
	}
}
