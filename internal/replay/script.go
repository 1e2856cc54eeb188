// Package replay drives a dialog from a scripted touch session on a fake
// clock and records what happened.
package replay

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/touchgate/internal/core/touch"
	"github.com/colonyops/touchgate/internal/gate"
)

// DefaultTimeout is how long a replay keeps running after its last scripted
// event before giving up on a result.
const DefaultTimeout = 5 * time.Second

// DefaultFrame is the simulated time between scheduler passes.
const DefaultFrame = 10 * time.Millisecond

// Script is a recorded touch session.
type Script struct {
	Dialog    string        `yaml:"dialog"`
	Message   string        `yaml:"message"`
	Label     string        `yaml:"label"`
	NoCancel  bool          `yaml:"no_cancel"`
	Threshold time.Duration `yaml:"threshold"`
	Frame     time.Duration `yaml:"frame"`
	Timeout   time.Duration `yaml:"timeout"`
	Events    []Event       `yaml:"events"`
	Updates   []Update      `yaml:"updates"`
}

// Event is one touch event at a time offset from the start of the replay.
type Event struct {
	At   time.Duration `yaml:"at"`
	Kind string        `yaml:"kind"`
	X    int           `yaml:"x"`
	Y    int           `yaml:"y"`
}

// Update replaces the dialog body at a time offset.
type Update struct {
	At   time.Duration `yaml:"at"`
	Body string        `yaml:"body"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if s.Dialog == "" {
		s.Dialog = string(gate.KindConfirm)
	}
	if s.Frame == 0 {
		s.Frame = DefaultFrame
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the script is runnable.
func (s *Script) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("dialog", s.Dialog, func(v string) error {
			_, err := gate.ParseKind(v)
			return err
		}),
		criterio.Run("threshold", s.Threshold, nonNegative),
		criterio.Run("frame", s.Frame, positive),
		criterio.Run("timeout", s.Timeout, positive),
		s.validateEvents(),
		s.validateUpdates(),
	)
}

func (s *Script) validateEvents() error {
	var errs criterio.FieldErrorsBuilder
	var prev time.Duration
	for i, e := range s.Events {
		field := fmt.Sprintf("events[%d]", i)
		if _, err := touch.ParseKind(e.Kind); err != nil {
			errs = errs.Append(field+".kind", err)
		}
		if e.At < prev {
			errs = errs.Append(field+".at", fmt.Errorf("%s is before the previous event at %s", e.At, prev))
		}
		prev = e.At
	}
	return errs.ToError()
}

func (s *Script) validateUpdates() error {
	var errs criterio.FieldErrorsBuilder
	var prev time.Duration
	for i, u := range s.Updates {
		if u.At < prev {
			errs = errs.Append(fmt.Sprintf("updates[%d].at", i),
				fmt.Errorf("%s is before the previous update at %s", u.At, prev))
		}
		prev = u.At
	}
	return errs.ToError()
}

// End returns the offset of the last scripted event or update.
func (s *Script) End() time.Duration {
	var end time.Duration
	if n := len(s.Events); n > 0 {
		end = s.Events[n-1].At
	}
	if n := len(s.Updates); n > 0 {
		end = max(end, s.Updates[n-1].At)
	}
	return end
}

func nonNegative(d time.Duration) error {
	if d < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func positive(d time.Duration) error {
	if d <= 0 {
		return errors.New("must be positive")
	}
	return nil
}
