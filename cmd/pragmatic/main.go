// Command pragmatic compacts plain JSON documents into JSON-LD using the terms
// declared in a vocabulary file. It can also generate Go constants for the
// declared term IRIs.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"sourcery.dny.nu/pragmatic"
	"sourcery.dny.nu/pragmatic/internal/json"
	"sourcery.dny.nu/pragmatic/internal/vocabfile"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	vocab    string
	typeName string
	logLevel string
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pragmatic",
		Short: "Compact JSON documents into JSON-LD",
		Long: `Pragmatic turns plain JSON documents into compacted JSON-LD.

Terms, the @type and the way @id is computed are declared per type in a
vocabulary file, written in YAML or JSON with comments. Input documents are
read from a file or from stdin.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.vocab, "vocab", "", "Vocabulary file (YAML or JSONC)")
	pf.StringVar(&opts.typeName, "type", "", "Type declared in the vocabulary")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	_ = cmd.MarkPersistentFlagRequired("vocab")
	_ = cmd.MarkPersistentFlagRequired("type")

	cmd.AddCommand(
		compactCmd(opts),
		contextCmd(opts),
		uncontextualizedCmd(opts),
		genCmd(opts),
	)

	return cmd
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// session holds everything a subcommand needs to work on a single type.
type session struct {
	logger    *slog.Logger
	vocab     *vocabfile.Vocabulary
	compactor *pragmatic.Compactor
	registry  *prometheus.Registry
}

func newSession(cmd *cobra.Command, opts *options) (*session, error) {
	logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)

	f, err := vocabfile.ReadFile(opts.vocab)
	if err != nil {
		return nil, err
	}

	vocab, err := f.Compile(logger)
	if err != nil {
		return nil, err
	}

	if _, ok := vocab.Schema(opts.typeName); !ok {
		return nil, fmt.Errorf("type %q is not declared in %s, known types: %s",
			opts.typeName, opts.vocab, strings.Join(vocab.Types(), ", "))
	}

	reg := prometheus.NewRegistry()
	metrics, err := pragmatic.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	return &session{
		logger: logger,
		vocab:  vocab,
		compactor: pragmatic.NewCompactor(
			pragmatic.WithLogger(logger),
			pragmatic.WithMetrics(metrics),
		),
		registry: reg,
	}, nil
}

// resource reads the input document and wraps it in a resource of the
// selected type. Without an argument, or with "-", stdin is read.
func (s *session) resource(cmd *cobra.Command, opts *options, args []string) (*pragmatic.Resource, error) {
	var (
		data []byte
		err  error
	)

	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var fields map[string]any
	if err := json.Decode(jsonc.ToJSON(data), &fields); err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	return s.vocab.Resource(opts.typeName, fields)
}

// report logs the compaction counters at debug level.
func (s *session) report() {
	families, err := s.registry.Gather()
	if err != nil {
		s.logger.Debug("failed to gather metrics", slog.Any("error", err))
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{slog.String("metric", mf.GetName())}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, slog.String(lp.GetName(), lp.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, slog.Float64("value", m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				attrs = append(attrs,
					slog.Uint64("count", m.GetHistogram().GetSampleCount()),
					slog.Float64("sum", m.GetHistogram().GetSampleSum()),
				)
			}
			s.logger.Debug("compaction", attrs...)
		}
	}
}

func writeJSON(w io.Writer, v any, indent bool) error {
	var (
		data []byte
		err  error
	)

	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
