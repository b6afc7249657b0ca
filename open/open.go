// Package open hands files and URLs to the system's default handler or to a named application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/reelcast/reelcast/constant"
)

// Start opens input with the default handler without waiting for it.
func Start(input string) error {
	cmd, err := Command(input, "")
	if err != nil {
		return err
	}
	return cmd.Start()
}

// StartWith opens input with app without waiting for it. An empty app means the default handler.
func StartWith(input, app string) error {
	cmd, err := Command(input, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command builds the command opening input on the current OS.
func Command(input, app string) (*exec.Cmd, error) {
	name, args, ok := commandLine(runtime.GOOS, input, app)
	if !ok {
		return nil, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return exec.Command(name, args...), nil
}

// commandLine returns the program and arguments opening input on goos.
func commandLine(goos, input, app string) (string, []string, bool) {
	if app == "" {
		switch goos {
		case constant.Windows:
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return rundll, []string{"url.dll,FileProtocolHandler", input}, true
		case constant.Darwin:
			return "open", []string{input}, true
		case constant.Linux:
			return "xdg-open", []string{input}, true
		case constant.Android:
			return "termux-open", []string{input}, true
		}
		return "", nil, false
	}

	switch goos {
	case constant.Windows:
		// start needs '&' escaped in multi-parameter URLs
		return "cmd", []string{"/C", "start", "", app, strings.ReplaceAll(input, "&", "^&")}, true
	case constant.Darwin:
		return "open", []string{"-a", app, input}, true
	case constant.Linux:
		return app, []string{input}, true
	case constant.Android:
		return "termux-open", []string{"--choose", input}, true
	}
	return "", nil, false
}
