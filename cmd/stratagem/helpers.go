package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"stratagem/internal/format"
	"stratagem/pkg/planner"
)

// loadInput reads a case snapshot from a YAML or JSON file. The format is
// picked by extension; anything that is not .json is parsed as YAML.
func loadInput(path string) (planner.Input, error) {
	var in planner.Input
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read case file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &in); err != nil {
			return in, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if in.CaseID == "" {
		return in, fmt.Errorf("%s: case_id is required", path)
	}
	return in, nil
}

// resolveNow applies the --now flag, defaulting to today. The pipeline never
// reads the clock itself; the CLI boundary fixes the evaluation date.
func resolveNow(in *planner.Input, flagValue string) error {
	if flagValue != "" {
		now, err := time.Parse("2006-01-02", flagValue)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		in.Now = now
		return nil
	}
	if in.Now.IsZero() {
		in.Now = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return nil
}

// tableMode maps the --format flag onto a render mode. "json" is handled
// before rendering and never reaches here.
func tableMode(flagValue string) (format.Mode, error) {
	switch flagValue {
	case "", "ascii":
		return format.ASCII, nil
	case "markdown", "md":
		return format.Markdown, nil
	default:
		return format.ASCII, fmt.Errorf("unknown format %q (want ascii, markdown, or json)", flagValue)
	}
}
