package main

import (
	"io"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gourl/host"
)

type domainReport struct {
	Input   string `json:"input" yaml:"input"`
	ASCII   string `json:"ascii" yaml:"ascii"`
	Unicode string `json:"unicode" yaml:"unicode"`
	Valid   bool   `json:"valid" yaml:"valid"`
}

func newDomainCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "domain [flags] DOMAIN...",
		Short: "Convert domains to ASCII and Unicode and check their validity",
		Long: `Domain runs each argument through the URL host parser and prints its
ASCII and Unicode forms. Inputs that are IP addresses or can not be
parsed get empty forms. Valid reports whether the domain passes strict
IDNA and DNS length checks.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]domainReport, 0, len(args))
			for _, d := range args {
				reports = append(reports, domainReport{
					Input:   d,
					ASCII:   host.DomainToASCII(d),
					Unicode: host.DomainToUnicode(d),
					Valid:   host.IsValidDomain(d),
				})
			}
			return errtrace.Wrap(writeOutput(cmd.OutOrStdout(), gf.format, reports, func(w io.Writer) error {
				for _, r := range reports {
					if err := printf(w, "%s\t%s\t%s\t%t\n", r.Input, r.ASCII, r.Unicode, r.Valid); err != nil {
						return errtrace.Wrap(err)
					}
				}
				return nil
			}))
		},
	}
}
