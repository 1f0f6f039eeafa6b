package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yodaproject/yoda/format"
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Convert between formats, chosen by file suffix (.yoda, .aida, .dat, optionally .gz)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		in, out := args[0], args[1]
		objs, err := format.ReadFile(in)
		if err != nil {
			log.Fatalf("can't read %q: %s", in, err)
		}
		if err := format.WriteFile(out, objs, precision()); err != nil {
			log.Fatalf("can't write %q: %s", out, err)
		}
		log.Infof("converted %d objects from %s to %s", len(objs), in, out)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
