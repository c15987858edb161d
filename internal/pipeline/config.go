// Package pipeline builds line-processing pipelines on top of lazyseq from a YAML description.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config describes how merged lines are processed.
type Config struct {
	// Prefix tags every line with the index of the input it was read from.
	Prefix bool `yaml:"prefix,omitempty"`

	// Stages are applied in order.
	Stages []Stage `yaml:"stages"`
}

// Stage is one processing step. Exactly one field must be set.
type Stage struct {
	Grep   string      `yaml:"grep,omitempty"`
	Dedupe bool        `yaml:"dedupe,omitempty"`
	Limit  uint64      `yaml:"limit,omitempty"`
	Skip   uint64      `yaml:"skip,omitempty"`
	Sort   string      `yaml:"sort,omitempty"`
	Upper  bool        `yaml:"upper,omitempty"`
	Lower  bool        `yaml:"lower,omitempty"`
	Batch  *BatchStage `yaml:"batch,omitempty"`
}

// BatchStage joins consecutive lines.
type BatchStage struct {
	Size      uint64 `yaml:"size"`
	Separator string `yaml:"separator"`
}

// Sort orders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ErrInvalidStage is returned for stages that do not set exactly one operation.
var ErrInvalidStage = errors.New("invalid stage")

// Load decodes a configuration from r and validates it.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile decodes the configuration stored in the file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pipeline: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Validate checks that every stage sets exactly one valid operation.
func (c *Config) Validate() error {
	for i, stage := range c.Stages {
		if err := stage.validate(); err != nil {
			return fmt.Errorf("stage %d: %w", i, err)
		}
	}

	return nil
}

func (s Stage) validate() error {
	set := 0

	for _, ok := range []bool{
		s.Grep != "", s.Dedupe, s.Limit > 0, s.Skip > 0, s.Sort != "", s.Upper, s.Lower, s.Batch != nil,
	} {
		if ok {
			set++
		}
	}

	if set != 1 {
		return fmt.Errorf("%w: %d operations set, want 1", ErrInvalidStage, set)
	}

	switch {
	case s.Grep != "":
		if _, err := regexp.Compile(s.Grep); err != nil {
			return fmt.Errorf("%w: grep: %w", ErrInvalidStage, err)
		}

	case s.Sort != "":
		if s.Sort != SortAsc && s.Sort != SortDesc {
			return fmt.Errorf("%w: sort must be %q or %q, got %q", ErrInvalidStage, SortAsc, SortDesc, s.Sort)
		}

	case s.Batch != nil:
		if s.Batch.Size == 0 {
			return fmt.Errorf("%w: batch size must be positive", ErrInvalidStage)
		}
	}

	return nil
}
