package commands

import (
	"strings"

	"github.com/goliatone/go-glossary/internal/logging"
	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// Command loggers live under one namespace with a child per command package,
// so hosts can raise or silence command noise independently of the services
// the commands drive.
const commandNamespace = "glossary.commands"

// CommandLogger returns the logger for one command package. Every entry it
// emits carries component and command_module fields.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandNamespace+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

// EnsureLogger substitutes a no-op logger for nil so handlers can log
// unconditionally.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
