package cmd

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yodaproject/yoda/conf"
)

var binningsPath string

var binningsCmd = &cobra.Command{
	Use:   "binnings [--path P] [FILE]",
	Short: "Explain a binning rules file, and which rule a path would use",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file := viper.GetString("binnings")
		if len(args) == 1 {
			file = args[0]
		}
		rules := conf.NewBinnings()
		if file != "" {
			var err error
			rules, err = conf.ReadBinnings(file)
			if err != nil {
				log.Fatalf("can't read binnings file %q: %s", file, err)
			}
		}
		explain(os.Stdout, rules, binningsPath)
	},
}

func init() {
	rootCmd.AddCommand(binningsCmd)
	binningsCmd.Flags().StringVar(&binningsPath, "path", "", "show which rule a histogram path matches")
}

func explain(w io.Writer, rules conf.Binnings, path string) {
	if path != "" {
		i, b := rules.Match(path)
		fmt.Fprintf(w, "path %q gets rule %d\n", path, i)
		fmt.Fprintf(w, "## [%q] pattern=%q edges=%s\n", b.Name, b.Pattern.String(), b.Spec)
		fmt.Fprintln(w)
	}
	all := append(append([]conf.Binning(nil), rules.Rules...), rules.Default)
	for _, b := range all {
		edges := b.Edges()
		fmt.Fprintln(w, "#", b.Name)
		fmt.Fprintf(w, "pattern: %10q\n", b.Pattern.String())
		fmt.Fprintf(w, "kind:    %10s\n", b.Kind)
		fmt.Fprintf(w, "edges:   %10s\n", b.Spec)
		fmt.Fprintf(w, "bins:    %10d [%g, %g)\n", len(edges)-1, edges[0], edges[len(edges)-1])
		fmt.Fprintln(w)
	}
}
