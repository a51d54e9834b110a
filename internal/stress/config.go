// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stress

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Queue kinds accepted by Config.Queue.
const (
	QueueMPSC   = "mpsc"
	QueueLocked = "locked"
	QueueBoth   = "both"
)

// valueStride separates producers in the value space: producer p
// enqueues p*valueStride + i.
const valueStride = 10000

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("stress: invalid config")

// Duration is a time.Duration that reads and writes as "1.5s" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config describes one stress run.
type Config struct {
	// Number of producer goroutines
	Producers int `yaml:"producers"`
	// Values enqueued by each producer (at most 10000)
	ItemsPerProducer int `yaml:"items_per_producer"`
	// mpsc, locked, or both (locked is then the oracle for mpsc)
	Queue string `yaml:"queue"`
	// Consumer gives up after this long
	Timeout Duration `yaml:"timeout"`
	// Producers yield with probability 1/YieldEvery after each enqueue; 0 disables
	YieldEvery int `yaml:"yield_every"`
	// Number of most recent consumed values kept for the report
	History int `yaml:"history"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

// DefaultConfig returns the 8 x 1000 workload against both queues.
func DefaultConfig() Config {
	return Config{
		Producers:        8,
		ItemsPerProducer: 1000,
		Queue:            QueueBoth,
		Timeout:          Duration(30 * time.Second),
		YieldEvery:       0,
		History:          16,
		LogLevel:         "INFO",
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig decodes YAML from r over DefaultConfig and validates it.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r, yaml.Strict())
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	switch {
	case c.Producers <= 0:
		return fmt.Errorf("%w: producers must be > 0, got %d", ErrInvalidConfig, c.Producers)
	case c.ItemsPerProducer <= 0 || c.ItemsPerProducer > valueStride:
		return fmt.Errorf("%w: items_per_producer must be in [1, %d], got %d",
			ErrInvalidConfig, valueStride, c.ItemsPerProducer)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be > 0", ErrInvalidConfig)
	case c.YieldEvery < 0:
		return fmt.Errorf("%w: yield_every must be >= 0", ErrInvalidConfig)
	case c.History < 0:
		return fmt.Errorf("%w: history must be >= 0", ErrInvalidConfig)
	}
	switch c.Queue {
	case QueueMPSC, QueueLocked, QueueBoth:
	default:
		return fmt.Errorf("%w: unknown queue %q", ErrInvalidConfig, c.Queue)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// NewLogger builds the logger described by the config.
func (c Config) NewLogger(w io.Writer) *Logger {
	level, _ := ParseLevel(c.LogLevel)
	if c.LogJSON {
		return NewJSON(w, level)
	}
	return NewText(w, level)
}
