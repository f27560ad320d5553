package systemd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
)

// DefaultBinary is resolved through PATH.
const DefaultBinary = "systemctl"

// Systemctl implements domain.ServiceManager by spawning systemctl.
type Systemctl struct {
	bin string
}

var _ domain.ServiceManager = (*Systemctl)(nil)

// New returns a client that runs bin (DefaultBinary when empty).
func New(bin string) *Systemctl {
	if bin == "" {
		bin = DefaultBinary
	}
	return &Systemctl{bin: bin}
}

// IsActive runs "systemctl is-active <service>" and returns its trimmed stdout.
// is-active exits non-zero for every state but "active", so a non-zero exit is
// not an error here; only a failure to run the binary is.
func (s *Systemctl) IsActive(ctx context.Context, service string) (string, error) {
	cmd := exec.CommandContext(ctx, s.bin, "is-active", service)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("systemctl is-active %s: %w", service, err)
		}
	}
	return strings.TrimSpace(string(out)), nil
}

// Control runs "systemctl <action> <service>" once.
func (s *Systemctl) Control(ctx context.Context, action domain.Action, service string) error {
	cmd := exec.CommandContext(ctx, s.bin, string(action), service)
	if output, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return fmt.Errorf("systemctl %s %s: %w", action, service, err)
		}
		return fmt.Errorf("systemctl %s %s: %w: %s", action, service, err, msg)
	}
	return nil
}
