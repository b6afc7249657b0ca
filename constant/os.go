package constant

// Values of runtime.GOOS the launchers branch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
