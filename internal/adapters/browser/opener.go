package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener implements ports.LinkOpener
type Opener struct {
	goos string
}

// NewOpener creates an opener for the running operating system
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// Open opens rawURL in the default browser
func (o *Opener) Open(rawURL string) error {
	cmd, err := o.Command(rawURL)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command returns the exec.Cmd that would open rawURL
func (o *Opener) Command(rawURL string) (*exec.Cmd, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", u), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", u), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", u), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}

// ValidateURL checks that rawURL is absolute and uses a scheme a browser can open
func ValidateURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return "", fmt.Errorf("invalid url %q: missing host", rawURL)
		}
	case "file":
	default:
		return "", fmt.Errorf("cannot open %q: unsupported scheme %q", rawURL, u.Scheme)
	}

	return u.String(), nil
}
