package main

import (
	"errors"
	"fmt"
	"io"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/query"
	"github.com/ghettovoice/gourl/uri"
)

type urlReport struct {
	Input    string       `json:"input" yaml:"input"`
	Href     string       `json:"href,omitempty" yaml:"href,omitempty"`
	Protocol string       `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Username string       `json:"username,omitempty" yaml:"username,omitempty"`
	Password string       `json:"password,omitempty" yaml:"password,omitempty"`
	Host     string       `json:"host,omitempty" yaml:"host,omitempty"`
	Hostname string       `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Port     string       `json:"port,omitempty" yaml:"port,omitempty"`
	Pathname string       `json:"pathname,omitempty" yaml:"pathname,omitempty"`
	Search   string       `json:"search,omitempty" yaml:"search,omitempty"`
	Hash     string       `json:"hash,omitempty" yaml:"hash,omitempty"`
	Origin   string       `json:"origin,omitempty" yaml:"origin,omitempty"`
	Params   []query.Pair `json:"params,omitempty" yaml:"params,omitempty"`
	Warnings []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Code     string       `json:"code,omitempty" yaml:"code,omitempty"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`
}

func newURLReport(input string, rec *uri.Record, opts *uri.RenderOptions) urlReport {
	u := uri.FromRecord(rec)
	return urlReport{
		Input:    input,
		Href:     rec.Render(opts),
		Protocol: u.Protocol(),
		Username: u.Username(),
		Password: u.Password(),
		Host:     u.Host(),
		Hostname: u.Hostname(),
		Port:     u.Port(),
		Pathname: u.Pathname(),
		Search:   u.Search(),
		Hash:     u.Hash(),
		Origin:   u.Origin().String(),
		Params:   u.SearchParams().Pairs(),
	}
}

func runParse(cmd *cobra.Command, args []string, gf *globalFlags, base string, unicode bool) error {
	logger, err := gf.logger(cmd.ErrOrStderr())
	if err != nil {
		return errtrace.Wrap(err)
	}
	enc, err := gf.outputEncoding()
	if err != nil {
		return errtrace.Wrap(err)
	}

	var baseRec *uri.Record
	if base != "" {
		baseRec, err = uri.BasicParse(base, nil, &uri.ParseOptions{Logger: logger})
		if err != nil {
			return errtrace.Wrap(errorutil.NewInvalidArgumentError(err, "base URL %q", base))
		}
	}

	renderOpts := &uri.RenderOptions{UnicodeHost: unicode}
	reports := make([]urlReport, 0, len(args))
	var errs []error
	for _, input := range args {
		var warnings []string
		rec, err := uri.BasicParse(input, baseRec, &uri.ParseOptions{
			Encoding: enc,
			Logger:   logger,
			OnValidationError: func(code uri.ValidationError) {
				warnings = append(warnings, string(code))
			},
		})
		if err != nil {
			if !errorutil.IsGrammarErr(err) {
				return errtrace.Wrap(err)
			}
			logger.Debug("URL parsing failed", "input", input, "error", err)
			r := urlReport{Input: input, Warnings: warnings, Error: err.Error()}
			var code uri.ValidationError
			if errors.As(err, &code) {
				r.Code = string(code)
			}
			reports = append(reports, r)
			errs = append(errs, err)
			continue
		}
		r := newURLReport(input, rec, renderOpts)
		r.Warnings = warnings
		reports = append(reports, r)
	}

	err = writeOutput(cmd.OutOrStdout(), gf.format, reports, func(w io.Writer) error {
		for _, r := range reports {
			var err error
			if r.Error != "" {
				err = printf(w, "%s\terror: %s\n", r.Input, r.Error)
			} else {
				err = printf(w, "%s\n", r.Href)
			}
			if err != nil {
				return errtrace.Wrap(err)
			}
		}
		return nil
	})
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(errorutil.JoinPrefix(fmt.Sprintf("%d of %d URLs failed to parse:", len(errs), len(args)), errs...))
}
