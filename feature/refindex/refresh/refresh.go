package refresh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no refresh command is set.
var ErrNotConfigured = errors.New("index refresh command not configured")

// CommandRefresher rebuilds the reference index by running an external command.
type CommandRefresher struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a CommandRefresher.
func New(cfg Config, logger *zap.Logger) *CommandRefresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandRefresher{cfg: cfg, logger: logger}
}

// Configured reports whether a command is set.
func (r *CommandRefresher) Configured() bool {
	return strings.TrimSpace(r.cfg.Command) != ""
}

// Refresh runs the command and waits for it to finish.
func (r *CommandRefresher) Refresh(ctx context.Context) error {
	if !r.Configured() {
		return ErrNotConfigured
	}

	if r.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", r.cfg.Command)
	cmd.Dir = r.cfg.Dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	// Children may keep the output pipe open after a kill.
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	r.logger.Info("Running index refresh command", zap.String("command", r.cfg.Command))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("index refresh failed: %w: %s", err, lastLine(out.String()))
	}
	r.logger.Info("Index refresh completed", zap.Duration("duration", time.Since(start)))
	r.logger.Debug("Index refresh output", zap.String("output", out.String()))
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
