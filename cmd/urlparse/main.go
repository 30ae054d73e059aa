// Command urlparse parses URLs the way web browsers do and prints their components.
//
// Usage:
//
//	urlparse [flags] URL...
//	urlparse domain [flags] DOMAIN...
//	urlparse query [flags] QUERY
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/log"
	"github.com/ghettovoice/gourl/internal/util"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	format   string
	encoding string
	logLevel string
	devLog   bool
}

func (f *globalFlags) logger(w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, errorutil.NewInvalidArgumentError(err, "log level %q", f.logLevel)
	}
	return log.New(w, lvl, f.devLog), nil
}

// outputEncoding returns nil for UTF-8.
func (f *globalFlags) outputEncoding() (encoding.Encoding, error) {
	if f.encoding == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(f.encoding)
	if err != nil {
		return nil, errorutil.NewInvalidArgumentError(err, "encoding %q", f.encoding)
	}
	return enc, nil
}

func newRootCmd() *cobra.Command {
	var (
		gf      globalFlags
		base    string
		unicode bool
	)

	cmd := &cobra.Command{
		Use:   "urlparse [flags] URL...",
		Short: "Parse URLs the way web browsers do",
		Long: `Urlparse parses URLs according to the WHATWG URL Standard and prints
their components, origin, query parameters and validation errors.

Relative references are resolved against --base. With --encoding the query
of special URLs is encoded with a legacy encoding, as HTML documents do.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, &gf, base, unicode)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&gf.format, "format", "f", "yaml", "Output format (yaml, json, text)")
	pf.StringVarP(&gf.encoding, "encoding", "e", "", "Query encoding label, e.g. windows-1252 (default UTF-8)")
	pf.StringVar(&gf.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.BoolVar(&gf.devLog, "dev-log", false, "Use the developer log handler")

	cmd.Flags().StringVarP(&base, "base", "b", "", "Base URL to resolve relative references against")
	cmd.Flags().BoolVarP(&unicode, "unicode", "u", false, "Print hosts of href in Unicode")

	util.Must(cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{"yaml", "json", "text"}, cobra.ShellCompDirectiveNoFileComp)))

	cmd.AddCommand(newDomainCmd(&gf), newQueryCmd(&gf))
	return cmd
}

func printf(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err //errtrace:skip
}
