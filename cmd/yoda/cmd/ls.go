package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/format"
)

var lsDump bool

var lsCmd = &cobra.Command{
	Use:   "ls FILE...",
	Short: "List the objects in one or more files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		for _, name := range args {
			objs, err := format.ReadFile(name)
			if err != nil {
				log.Fatalf("can't read %q: %s", name, err)
			}
			if fi, err := os.Stat(name); err == nil {
				fmt.Printf("# %s (%s, %d objects)\n", name, humanize.Bytes(uint64(fi.Size())), len(objs))
			} else {
				fmt.Printf("# %s (%d objects)\n", name, len(objs))
			}
			for _, o := range objs {
				fmt.Println(describe(o))
				if lsDump {
					dumper.Dump(o)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVar(&lsDump, "dump", false, "also dump the full internal state of each object")
}

type binned interface {
	NumBins() int
	NumEntries(includeOverflows bool) uint64
}

type pointSet interface {
	NumPoints() int
}

// describe returns one line summarizing o.
func describe(o ao.Object) string {
	switch v := o.(type) {
	case binned:
		return fmt.Sprintf("%-10s %-40s %8s bins %12s entries", o.Type(), o.Path(),
			humanize.Comma(int64(v.NumBins())), humanize.Comma(int64(v.NumEntries(true))))
	case pointSet:
		return fmt.Sprintf("%-10s %-40s %8s points", o.Type(), o.Path(), humanize.Comma(int64(v.NumPoints())))
	}
	return fmt.Sprintf("%-10s %s", o.Type(), o.Path())
}
