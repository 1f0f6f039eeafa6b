package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spenczar/tdigest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/conf"
	"github.com/yodaproject/yoda/format"
)

var (
	bookPath      string
	bookTitle     string
	bookOut       string
	bookQuantiles []string
)

var bookCmd = &cobra.Command{
	Use:   "book --path P [--binnings F] [--quantiles q,...] SAMPLES",
	Short: "Fill a new histogram from a file of \"x [weight]\" lines",
	Long: `Books a histogram at the given path, with the edges of the first binning rule
whose pattern matches the path, and fills it from the samples file (- for stdin).
Requested quantiles of the raw samples are stored as Quantile<q> annotations.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rules := conf.NewBinnings()
		if file := viper.GetString("binnings"); file != "" {
			var err error
			rules, err = conf.ReadBinnings(file)
			if err != nil {
				log.Fatalf("can't read binnings file %q: %s", file, err)
			}
		}
		quantiles, err := parseQuantiles(bookQuantiles)
		if err != nil {
			log.Fatal(err)
		}
		_, binning := rules.Match(bookPath)

		var in io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				log.Fatalf("can't open samples: %s", err)
			}
			defer f.Close()
			in = f
		}

		h, err := book(in, bookPath, bookTitle, binning, quantiles)
		if err != nil {
			log.Fatalf("can't book %q: %s", bookPath, err)
		}
		if err := format.WriteFile(bookOut, []ao.Object{h}, precision()); err != nil {
			log.Fatalf("can't write %q: %s", bookOut, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
	bookCmd.Flags().StringVar(&bookPath, "path", "", "path of the new histogram")
	bookCmd.Flags().StringVar(&bookTitle, "title", "", "title of the new histogram")
	bookCmd.Flags().StringVarP(&bookOut, "output", "o", "-", "output file. - writes the native format to stdout")
	bookCmd.Flags().StringSliceVar(&bookQuantiles, "quantiles", nil, "comma separated quantiles in [0, 1] to record, e.g. 0.5,0.99")
	bookCmd.MarkFlagRequired("path")
}

func parseQuantiles(in []string) ([]float64, error) {
	out := make([]float64, 0, len(in))
	for _, s := range in {
		q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || q < 0 || q > 1 {
			return nil, fmt.Errorf("invalid quantile %q: must be a number in [0, 1]", s)
		}
		out = append(out, q)
	}
	return out, nil
}

// book fills a histogram with the edges of b from "x [weight]" lines.
// Malformed lines are logged and skipped.
func book(r io.Reader, path, title string, b conf.Binning, quantiles []float64) (*ao.Histo1D, error) {
	h, err := ao.NewHisto1D(b.Edges(), path, title)
	if err != nil {
		return nil, err
	}
	h.SetAnnotation("Binning", b.Name+" "+b.Spec)

	digest := tdigest.New()
	var samples int
	scanner := bufio.NewScanner(r)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		x, w, err := parseSample(line)
		if err == nil {
			err = h.Fill(x, w)
		}
		if err != nil {
			log.WithFields(log.Fields{"line": lineNum, "err": err}).Warn("skipping sample")
			continue
		}
		digest.Add(x, 1)
		samples++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if samples > 0 {
		for _, q := range quantiles {
			key := "Quantile" + strconv.FormatFloat(q, 'g', -1, 64)
			h.SetAnnotation(key, strconv.FormatFloat(digest.Quantile(q), 'g', -1, 64))
		}
	}
	return h, nil
}

func parseSample(line string) (float64, float64, error) {
	fields := strings.Fields(line)
	if len(fields) > 2 {
		return 0, 0, fmt.Errorf("expected \"x [weight]\", got %d fields", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad value %q", fields[0])
	}
	w := 1.0
	if len(fields) == 2 {
		if w, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return 0, 0, fmt.Errorf("bad weight %q", fields[1])
		}
	}
	return x, w, nil
}
