// Package errors defines the error kinds returned by the binning, aggregation and format packages.
// Every kind is a string type so values compare by content and can be switched on by type.
package errors

import "fmt"

// Range is returned for coordinates outside an axis, bin indices beyond the bin count,
// invalid edges and invalid outflow index pairs.
type Range string

func NewRange(err string) Range {
	return Range(err)
}

func NewRangef(format string, a ...interface{}) Range {
	return Range(fmt.Sprintf(format, a...))
}

func (r Range) Error() string {
	return string(r)
}

// ErrNoBin is returned by 2D lookups that land inside the axis range but in a gap.
var ErrNoBin = NewRange("no bin at the given coordinates")

// BinningMismatch is returned when combining aggregations whose binnings differ.
type BinningMismatch string

func NewBinningMismatch(err string) BinningMismatch {
	return BinningMismatch(err)
}

func NewBinningMismatchf(format string, a ...interface{}) BinningMismatch {
	return BinningMismatch(fmt.Sprintf(format, a...))
}

func (b BinningMismatch) Error() string {
	return string(b)
}

// DegenerateStatistics is returned when a derived statistic is undefined,
// e.g. a mean with zero total weight.
type DegenerateStatistics string

func NewDegenerateStatistics(err string) DegenerateStatistics {
	return DegenerateStatistics(err)
}

func NewDegenerateStatisticsf(format string, a ...interface{}) DegenerateStatistics {
	return DegenerateStatistics(fmt.Sprintf(format, a...))
}

func (d DegenerateStatistics) Error() string {
	return string(d)
}

// Format is returned for unidentifiable file formats and unreadable streams.
type Format string

func NewFormat(err string) Format {
	return Format(err)
}

func NewFormatf(format string, a ...interface{}) Format {
	return Format(fmt.Sprintf(format, a...))
}

func (f Format) Error() string {
	return string(f)
}

// Grid is returned for 2D structural changes that would break the bin layout:
// overlapping bins, non-rectangular merges, rebinning of irregular axes
// and erasing interior bins of a 1D axis.
type Grid string

func NewGrid(err string) Grid {
	return Grid(err)
}

func NewGridf(format string, a ...interface{}) Grid {
	return Grid(fmt.Sprintf(format, a...))
}

func (g Grid) Error() string {
	return string(g)
}
