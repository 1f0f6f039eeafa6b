package cmd

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/format"
	"github.com/yodaproject/yoda/util"
	"golang.org/x/sync/errgroup"
)

var (
	mergeOut  string
	mergeJobs int
)

var mergeCmd = &cobra.Command{
	Use:   "merge -o OUT FILE...",
	Short: "Add up objects with the same path and type across files",
	Long: `Reads all files concurrently. Histograms and profiles with equal path and type are
added (their binnings must match), point sets with equal path are combined, and
everything else is kept as is. The output is ordered by path.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sets, err := readAll(args, mergeJobs)
		if err != nil {
			log.Fatal(err)
		}
		merged, err := mergeObjects(sets)
		if err != nil {
			log.Fatalf("can't merge: %s", err)
		}
		if err := format.WriteFile(mergeOut, merged, precision()); err != nil {
			log.Fatalf("can't write %q: %s", mergeOut, err)
		}
		log.Infof("merged %d files into %d objects", len(args), len(merged))
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVarP(&mergeOut, "output", "o", "-", "output file. - writes the native format to stdout")
	mergeCmd.Flags().IntVarP(&mergeJobs, "jobs", "j", 4, "how many files to read at the same time")
}

// readAll reads up to jobs files at a time, keeping the result order of the arguments.
func readAll(files []string, jobs int) ([][]ao.Object, error) {
	g, _ := errgroup.WithContext(context.Background())
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	result := make([][]ao.Object, len(files))
	for i, name := range files {
		pos, name := i, name
		g.Go(func() error {
			objs, err := format.ReadFile(name)
			if err != nil {
				return fmt.Errorf("can't read %q: %s", name, err)
			}
			result[pos] = objs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// mergeObjects folds every object into the first one with the same path and type.
// The first object of each group is modified in place.
func mergeObjects(sets [][]ao.Object) ([]ao.Object, error) {
	type key struct {
		path, typ string
	}
	seen := make(map[key]ao.Object)
	var out []ao.Object
	for _, objs := range sets {
		for _, o := range objs {
			k := key{o.Path(), o.Type()}
			first, ok := seen[k]
			if !ok {
				seen[k] = o
				out = append(out, o)
				continue
			}
			if err := add(first, o); err != nil {
				return nil, fmt.Errorf("%s %s: %w", k.typ, k.path, err)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path() != out[j].Path() {
			return util.NaturalLess(out[i].Path(), out[j].Path())
		}
		return out[i].Type() < out[j].Type()
	})
	return out, nil
}

// add adds o into dst. Both have the same type.
func add(dst, o ao.Object) error {
	switch d := dst.(type) {
	case *ao.Histo1D:
		return d.Add(o.(*ao.Histo1D))
	case *ao.Histo2D:
		return d.Add(o.(*ao.Histo2D))
	case *ao.Profile1D:
		return d.Add(o.(*ao.Profile1D))
	case *ao.Profile2D:
		return d.Add(o.(*ao.Profile2D))
	case *ao.Scatter1D:
		d.Combine(o.(*ao.Scatter1D))
	case *ao.Scatter2D:
		d.Combine(o.(*ao.Scatter2D))
	case *ao.Scatter3D:
		d.Combine(o.(*ao.Scatter3D))
	default:
		return fmt.Errorf("can't add objects of type %s", dst.Type())
	}
	return nil
}
