package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/format"
)

var catCmd = &cobra.Command{
	Use:   "cat FILE...",
	Short: "Print the objects of one or more files in the native format",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var all []ao.Object
		for _, name := range args {
			objs, err := format.ReadFile(name)
			if err != nil {
				log.Fatalf("can't read %q: %s", name, err)
			}
			all = append(all, objs...)
		}
		if err := format.WriteFile("-", all, precision()); err != nil {
			log.Fatalf("can't write objects: %s", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
