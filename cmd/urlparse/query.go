package main

import (
	"io"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gourl/query"
)

type queryReport struct {
	Pairs      []query.Pair `json:"pairs" yaml:"pairs"`
	Serialized string       `json:"serialized" yaml:"serialized"`
}

func newQueryCmd(gf *globalFlags) *cobra.Command {
	var sort bool

	cmd := &cobra.Command{
		Use:   "query [flags] QUERY",
		Short: "Decode an application/x-www-form-urlencoded query",
		Long: `Query decodes the argument into name-value pairs and serializes them back.
A leading '?' is ignored. With --encoding the serialization uses a legacy encoding.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := gf.outputEncoding()
			if err != nil {
				return errtrace.Wrap(err)
			}

			params := query.Parse(args[0])
			if sort {
				params.Sort()
			}
			pairs := params.Pairs()
			r := queryReport{Pairs: pairs, Serialized: query.Encode(pairs, enc)}
			if r.Pairs == nil {
				r.Pairs = []query.Pair{}
			}

			return errtrace.Wrap(writeOutput(cmd.OutOrStdout(), gf.format, r, func(w io.Writer) error {
				for name, value := range params.All() {
					if err := printf(w, "%s\t%s\n", name, value); err != nil {
						return errtrace.Wrap(err)
					}
				}
				return nil
			}))
		},
	}
	cmd.Flags().BoolVarP(&sort, "sort", "s", false, "Sort pairs by name")
	return cmd
}
