// package results reads simulation output from files or from a command
package results

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/mcview/internal/models"
	"github.com/desertthunder/mcview/internal/shared"
	"gopkg.in/yaml.v3"
)

// Source produces results for a requested number of simulations.
type Source interface {
	Fetch(ctx context.Context, n int) (*models.Results, error)
}

// Load reads results from path, choosing the decoder from the file extension (.json, .yaml, .yml, .toml).
func Load(path string) (*models.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrResultsNotFound, path)
		}
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return Decode(data, format)
}

// Decode parses data in the named format and validates the result.
func Decode(data []byte, format string) (*models.Results, error) {
	var r models.Results
	var err error

	switch format {
	case "json":
		err = json.Unmarshal(data, &r)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &r)
	case "toml":
		err = toml.Unmarshal(data, &r)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResults, err)
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResults, err)
	}
	return &r, nil
}

// FileSource serves the same results file for every request.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context, n int) (*models.Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}

// CommandSource runs an external command that prints JSON results to stdout.
//
// "{n}" in the template is replaced with the requested number of simulations.
type CommandSource struct {
	Template string
}

// Args expands the template for n.
func (s CommandSource) Args(n int) []string {
	return strings.Fields(strings.ReplaceAll(s.Template, "{n}", strconv.Itoa(n)))
}

func (s CommandSource) Fetch(ctx context.Context, n int) (*models.Results, error) {
	args := s.Args(n)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty command", shared.ErrSourceUnavailable)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s: %s", shared.ErrSourceUnavailable, args[0], msg)
	}

	return Decode(stdout.Bytes(), "json")
}

// NewSource picks a [CommandSource] when a command is configured and a [FileSource] otherwise.
func NewSource(c shared.ResultsConfig) (Source, error) {
	switch {
	case strings.TrimSpace(c.Command) != "":
		return CommandSource{Template: c.Command}, nil
	case c.Path != "":
		return FileSource{Path: c.Path}, nil
	default:
		return nil, fmt.Errorf("%w: no results path or command configured", shared.ErrMissingConfig)
	}
}
