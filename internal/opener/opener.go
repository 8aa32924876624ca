// Package opener hands detail links to an external program.
package opener

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/browser"

	"github.com/pders01/featured/internal/config"
	"github.com/pders01/featured/internal/debuglog"
	"github.com/pders01/featured/internal/validation"
)

// ErrNotAbsolute is returned for links with no scheme and host, which
// happens when no detail base is configured.
var ErrNotAbsolute = errors.New("link is not an absolute URL")

type Opener struct {
	command   []string
	validator *validation.URLValidator

	browse func(url string) error
	start  func(cmd *exec.Cmd) error
}

func New(cfg *config.Config) *Opener {
	return &Opener{
		command:   strings.Fields(cfg.Opener.Command),
		validator: validation.NewEndpointValidator(),
		browse:    browser.OpenURL,
		start:     startDetached,
	}
}

// Open launches the configured command with link as its last argument,
// or the system browser when no command is set.
func (o *Opener) Open(link string) error {
	if !strings.Contains(link, "://") {
		return fmt.Errorf("opening %q: %w", link, ErrNotAbsolute)
	}
	normalized, err := o.validator.ValidateAndNormalize(link)
	if err != nil {
		return fmt.Errorf("opening %q: %w", link, err)
	}

	if len(o.command) == 0 {
		debuglog.Debugf("opening %s in browser", normalized)
		if err := o.browse(normalized); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		return nil
	}

	name := o.command[0]
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("opener %s not found: %w", name, err)
	}

	args := append(append([]string{}, o.command[1:]...), normalized)
	debuglog.Debugf("opening %s with %s", normalized, name)
	if err := o.start(exec.Command(name, args...)); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

// Command reports the configured program, or "browser".
func (o *Opener) Command() string {
	if len(o.command) == 0 {
		return "browser"
	}
	return o.command[0]
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
