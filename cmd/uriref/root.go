package main

import (
	"fmt"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uriref/internal/log"
	"github.com/ghettovoice/uriref/uri"
)

type options struct {
	LogFormat string
	LogLevel  string

	log *slog.Logger
}

func (o *options) logger() *slog.Logger {
	if o.log == nil {
		return log.Def
	}
	return o.log
}

func (o *options) setupLogger(cmd *cobra.Command) error {
	lvl, err := log.ParseLevel(o.LogLevel)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("--log-level: %w", err))
	}
	l, err := log.New(o.LogFormat, lvl, cmd.ErrOrStderr())
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("--log-format: %w", err))
	}
	o.log = l.With("cmd", cmd.Name())
	return nil
}

func parseNormalizeFlags(names []string) (uri.NormalizeFlags, error) {
	var flags uri.NormalizeFlags
	for _, name := range names {
		f, ok := uri.ParseNormalizeFlag(name)
		if !ok {
			return 0, errtrace.Wrap(fmt.Errorf("--normalize: unknown normalization %q", name))
		}
		flags |= f
	}
	return flags, nil
}

func newRootCommand() (*cobra.Command, *options) {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "uriref",
		Short:         "Work with RFC 3986 URI references",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return errtrace.Wrap(opts.setupLogger(cmd))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.LogFormat, "log-format", log.FormatConsole, "log format: console, dev or none")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "minimal log level: debug, info, warn or error")

	cmd.AddCommand(
		newParseCommand(opts),
		newResolveCommand(opts),
		newRelativizeCommand(opts),
		newNormalizeCommand(opts),
		newEquivalentCommand(opts),
		newHeadersCommand(opts),
	)
	return cmd, opts
}
