package main

import (
	"fmt"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/samber/lo"

	"github.com/YuminosukeSato/mllab/dataset"
)

func datasetsCmd() *commander.Command {
	var show string
	cmd := &commander.Command{
		UsageLine: "datasets [options]",
		Short:     "list the built-in datasets",
		Long: `
list the built-in datasets, or print the rows of one of them.

	$ mllab datasets -show playtennis
`,
		Flag: *flag.NewFlagSet("datasets", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&show, "show", "", "print the rows of this dataset")

	cmd.Run = guard("datasets", func(_ []string) error {
		if show != "" {
			d, err := dataset.Load(show)
			if err != nil {
				return err
			}
			printRows(d)
			return nil
		}
		for _, name := range dataset.Names() {
			d, err := dataset.Load(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%-12s %3d samples  features: %s\n",
				name, d.NumSamples(), strings.Join(d.FeatureNames, ", "))
		}
		return nil
	})
	return cmd
}

func printRows(d *dataset.Dataset) {
	fmt.Fprintf(stdout, "%s\tlabel\n", strings.Join(d.FeatureNames, "\t"))
	for i, row := range d.Features {
		cells := lo.Map(row, func(v float64, j int) string {
			if name := d.CategoryName(j, v); name != "" {
				return name
			}
			return fmt.Sprintf("%g", v)
		})
		fmt.Fprintf(stdout, "%s\t%g\n", strings.Join(cells, "\t"), d.Labels[i])
	}
}
