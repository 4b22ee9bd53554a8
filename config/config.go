// Package config loads the wotschema command configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/wotschema"
	"github.com/reoring/wotschema/schemagraph"
)

// Configuration is the command configuration, intended to be provided by a
// yaml file and optionally modified by environment variables.
type Configuration struct {
	Log struct {
		// Level is the level at which operations are logged. This can be
		// error, warn, info, or debug.
		Level Loglevel `yaml:"level"`
		// Formatter is text or json.
		Formatter string `yaml:"formatter"`
	} `yaml:"log"`

	Decode struct {
		// MaxDepth bounds schema nesting, 0 means unlimited.
		MaxDepth int `yaml:"maxDepth"`
		// Strict makes warnings fail the command, not only errors.
		Strict bool `yaml:"strict"`
		// Severity overrides the severity of issue codes (ignore, info, warn
		// or error).
		Severity map[string]string `yaml:"severity"`
	} `yaml:"decode"`

	Output struct {
		// Format is json or yaml.
		Format string `yaml:"format"`
		// Language selects the diagnostic message catalog (en or ja).
		Language string `yaml:"language"`
	} `yaml:"output"`
}

// Loglevel is a logrus level name.
type Loglevel string

// UnmarshalYAML lowercases the level and checks it is known.
func (l *Loglevel) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	s = strings.ToLower(s)
	switch s {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid loglevel %s Must be one of [error, warn, info, debug]", s)
	}
	*l = Loglevel(s)
	return nil
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	c := new(Configuration)
	c.applyDefaults()
	return c
}

func (c *Configuration) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Formatter == "" {
		c.Log.Formatter = "text"
	}
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Output.Language == "" {
		c.Output.Language = "en"
	}
}

// Validate reports the first invalid setting.
func (c *Configuration) Validate() error {
	switch c.Log.Formatter {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported logging formatter: %q", c.Log.Formatter)
	}
	if c.Decode.MaxDepth < 0 {
		return fmt.Errorf("decode.maxDepth must not be negative: %d", c.Decode.MaxDepth)
	}
	for code, name := range c.Decode.Severity {
		if _, ok := wotschema.ParseSeverity(name); !ok {
			return fmt.Errorf("decode.severity.%s: unknown severity %q", code, name)
		}
	}
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %q", c.Output.Format)
	}
	switch c.Output.Language {
	case "en", "ja":
	default:
		return fmt.Errorf("unsupported language: %q", c.Output.Language)
	}
	return nil
}

// DecodeOptions maps the decode section onto decoder options.
func (c *Configuration) DecodeOptions() schemagraph.Options {
	opts := schemagraph.Options{MaxDepth: c.Decode.MaxDepth}
	if len(c.Decode.Severity) > 0 {
		opts.Severity = make(map[string]wotschema.Severity, len(c.Decode.Severity))
		for code, name := range c.Decode.Severity {
			opts.Severity[code], _ = wotschema.ParseSeverity(name)
		}
	}
	return opts
}

// Parse reads a yaml document. Unknown keys are rejected. Environment
// variables override file values: WOTSCHEMA_LOG_LEVEL, WOTSCHEMA_LOG_FORMATTER,
// WOTSCHEMA_DECODE_MAXDEPTH, WOTSCHEMA_DECODE_STRICT, WOTSCHEMA_OUTPUT_FORMAT
// and WOTSCHEMA_OUTPUT_LANGUAGE.
func Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	c := new(Configuration)
	dec := yaml.NewDecoder(bytes.NewReader(in))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := c.overrideFromEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load parses the file at path.
func Load(path string) (*Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (c *Configuration) overrideFromEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("WOTSCHEMA_LOG_LEVEL"); ok {
		var l Loglevel
		if err := yaml.Unmarshal([]byte(strconv.Quote(v)), &l); err != nil {
			return err
		}
		c.Log.Level = l
	}
	if v, ok := lookup("WOTSCHEMA_LOG_FORMATTER"); ok {
		c.Log.Formatter = v
	}
	if v, ok := lookup("WOTSCHEMA_DECODE_MAXDEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WOTSCHEMA_DECODE_MAXDEPTH: %w", err)
		}
		c.Decode.MaxDepth = n
	}
	if v, ok := lookup("WOTSCHEMA_DECODE_STRICT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WOTSCHEMA_DECODE_STRICT: %w", err)
		}
		c.Decode.Strict = b
	}
	if v, ok := lookup("WOTSCHEMA_OUTPUT_FORMAT"); ok {
		c.Output.Format = v
	}
	if v, ok := lookup("WOTSCHEMA_OUTPUT_LANGUAGE"); ok {
		c.Output.Language = v
	}
	return nil
}
