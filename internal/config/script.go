package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"ofsconsole/internal/domain"
)

// Script is a batch of commands loaded from a TOML file
type Script struct {
	Address     string       `toml:"address"`
	Schedule    string       `toml:"schedule"`
	StopOnError *bool        `toml:"stop_on_error"`
	Steps       []ScriptStep `toml:"steps"`
}

// ScriptStep is one command of a Script
type ScriptStep struct {
	Args []string `toml:"args"`
	Verb string   `toml:"verb"`
}

// LoadScript reads and validates a batch script
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a batch script
func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := toml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("invalid script: no steps")
	}
	for i, step := range script.Steps {
		verb := strings.ToUpper(strings.TrimSpace(step.Verb))
		if verb == "" {
			return nil, fmt.Errorf("invalid script: step %d has no verb", i+1)
		}
		script.Steps[i].Verb = verb
	}

	return &script, nil
}

// ShouldStopOnError reports whether a refused step ends the run (default true)
func (s *Script) ShouldStopOnError() bool {
	return s.StopOnError == nil || *s.StopOnError
}

// Commands converts the steps to commands in order
func (s *Script) Commands() []domain.Command {
	commands := make([]domain.Command, 0, len(s.Steps))
	for _, step := range s.Steps {
		commands = append(commands, domain.NewCommand(domain.Verb(step.Verb), step.Args...))
	}
	return commands
}

// HasLogin reports whether any step authenticates
func (s *Script) HasLogin() bool {
	for _, step := range s.Steps {
		if domain.Verb(step.Verb) == domain.VerbLogin {
			return true
		}
	}
	return false
}
