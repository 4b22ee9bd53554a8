package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/wotschema"
	"github.com/reoring/wotschema/config"
	"github.com/reoring/wotschema/graph"
	"github.com/reoring/wotschema/i18n"
	"github.com/reoring/wotschema/metrics"
	"github.com/reoring/wotschema/schemagraph"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app is the state shared by the subcommands.
type app struct {
	configPath  string
	format      string
	language    string
	logLevel    string
	maxDepth    int
	strict      bool
	showMetrics bool

	cfg      *config.Configuration
	logger   *log.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "wotschema",
		Short:         "`wotschema` reads WoT data schemas and Thing Descriptions from RDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to a yaml configuration file")
	pf.StringVarP(&a.format, "format", "f", "", "output format: json or yaml")
	pf.StringVar(&a.language, "lang", "", "diagnostic message language: en or ja")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: error, warn, info or debug")
	pf.IntVar(&a.maxDepth, "max-depth", 0, "maximum schema nesting, 0 for unlimited")
	pf.BoolVar(&a.strict, "strict", false, "fail on warnings as well as errors")
	pf.BoolVar(&a.showMetrics, "metrics", false, "print decoder metrics to stderr on exit")

	root.AddCommand(newDecodeCmd(a), newFormsCmd(a), newVersionCmd())
	return root
}

// setup resolves the configuration, applies flag overrides and configures
// logging, messages and metrics.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("lang") {
		cfg.Output.Language = a.language
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = config.Loglevel(a.logLevel)
	}
	if flags.Changed("max-depth") {
		cfg.Decode.MaxDepth = a.maxDepth
	}
	if flags.Changed("strict") {
		cfg.Decode.Strict = a.strict
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	a.cfg = cfg

	logger, err := configureLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	i18n.SetLanguage(cfg.Output.Language)

	a.registry = prometheus.NewRegistry()
	if a.metrics, err = metrics.New(a.registry); err != nil {
		return err
	}
	return nil
}

// configureLogging builds a logger from the log section.
func configureLogging(cfg *config.Configuration, w io.Writer) (*log.Logger, error) {
	l := log.New()
	l.SetOutput(w)
	l.SetLevel(logLevel(l, cfg.Log.Level))
	switch cfg.Log.Formatter {
	case "json":
		l.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "text", "":
		l.SetFormatter(&log.TextFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return nil, fmt.Errorf("unsupported logging formatter: %q", cfg.Log.Formatter)
	}
	l.Debugf("using %q logging formatter", cfg.Log.Formatter)
	return l, nil
}

func logLevel(l *log.Logger, level config.Loglevel) log.Level {
	lv, err := log.ParseLevel(string(level))
	if err != nil {
		lv = log.InfoLevel
		l.Warnf("error parsing level %q: %v, using %q", level, err, lv)
	}
	return lv
}

// decodeOptions returns decoder options wired to the command's logger and
// metrics.
func (a *app) decodeOptions() schemagraph.Options {
	opts := a.cfg.DecodeOptions()
	opts.Logger = a.logger.WithField("component", "decoder")
	opts.Metrics = a.metrics
	return opts
}

// threshold is the lowest severity that makes a command fail.
func (a *app) threshold() wotschema.Severity {
	if a.cfg.Decode.Strict {
		return wotschema.Warn
	}
	return wotschema.Error
}

func (a *app) loadGraph(path string) (*graph.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g := graph.New()
	n, err := g.ReadNQuads(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	a.logger.WithFields(log.Fields{"file": path, "quads": n}).Debug("graph loaded")
	return g, nil
}

// encode writes v in the configured output format.
func (a *app) encode(w io.Writer, v any) error {
	switch a.cfg.Output.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
}

// finish prints metrics when asked to and turns blocking issues into an
// error.
func (a *app) finish(cmd *cobra.Command, issues wotschema.Issues) error {
	if a.showMetrics {
		mfs, err := a.registry.Gather()
		if err != nil {
			return err
		}
		for _, mf := range mfs {
			if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
				return err
			}
		}
	}
	if blocking := issues.AtLeast(a.threshold()); len(blocking) > 0 {
		return fmt.Errorf("%d blocking issue(s): %w", len(blocking), blocking)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "`version` prints the program version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wotschema %s\n", version)
		},
	}
}

// issueView is the output form of a diagnostic.
type issueView struct {
	Path     string `json:"path" yaml:"path"`
	Code     string `json:"code" yaml:"code"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
	Node     string `json:"node,omitempty" yaml:"node,omitempty"`
}

func viewIssues(iss wotschema.Issues) []issueView {
	if len(iss) == 0 {
		return nil
	}
	out := make([]issueView, len(iss))
	for i, is := range iss {
		out[i] = issueView{Path: is.Path, Code: is.Code, Severity: is.Severity.String(), Message: is.Message, Node: is.Node}
	}
	return out
}
