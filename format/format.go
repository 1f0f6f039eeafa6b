// Package format reads and writes analysis objects.
//
// Three encodings are supported, selected by file suffix:
//
//	.yoda  the native block-structured text format
//	.aida  the legacy AIDA XML interchange format (point sets only)
//	.dat   a flat text table format for inspection
//
// A trailing .gz on any of them means the stream is gzip compressed.
package format

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/pgzip"
	"github.com/yodaproject/yoda/ao"
	"github.com/yodaproject/yoda/errors"
	"github.com/yodaproject/yoda/stats"
)

var (
	// metric format.lines_read is the number of lines consumed by the native and flat readers
	linesRead = stats.NewCounter32("format.lines_read")
	// metric format.lines_skipped is the number of malformed lines that were reported and skipped
	linesSkipped = stats.NewCounter32("format.lines_skipped")
	// metric format.bytes_read is the number of bytes consumed by the line based readers
	bytesRead = stats.NewCounter64("format.bytes_read")
	// metric format.objects_read is the number of analysis objects materialized by all readers
	objectsRead = stats.NewCounter32("format.objects_read")
	// metric format.objects_dropped is the number of blocks that could not be turned into an object
	objectsDropped = stats.NewCounter32("format.objects_dropped")
	// metric format.objects_written is the number of analysis objects written by all writers
	objectsWritten = stats.NewCounter32("format.objects_written")
	// metric format.read_duration is how long it takes to read one stream
	readDuration = stats.NewLatencyHistogram15s32("format.read_duration")
	// metric format.reads_in_flight is the number of streams being read right now
	readsInFlight = stats.NewGauge32("format.reads_in_flight")
)

// track accounts for one stream read. Call the returned func when the read is done.
func track() func() {
	pre := time.Now()
	readsInFlight.Inc()
	return func() {
		readsInFlight.Dec()
		readDuration.Value(time.Since(pre))
	}
}

// Reader decodes a stream into analysis objects.
type Reader interface {
	Read(r io.Reader) ([]ao.Object, error)
}

// Writer encodes analysis objects to a stream.
type Writer interface {
	Write(w io.Writer, objs []ao.Object) error
	// SetPrecision sets the number of significant digits after the decimal point.
	// -1 means the shortest representation that reads back exactly.
	SetPrecision(p int)
}

// suffix returns the lower-cased extension of name, ignoring a trailing .gz,
// and whether the .gz was present.
func suffix(name string) (string, bool) {
	lower := strings.ToLower(name)
	gz := strings.HasSuffix(lower, ".gz")
	if gz {
		lower = strings.TrimSuffix(lower, ".gz")
	}
	i := strings.LastIndex(lower, ".")
	if i == -1 {
		return lower, gz
	}
	return lower[i+1:], gz
}

func unidentified(name string) error {
	return errors.NewFormatf("Format cannot be identified from string '%s'", name)
}

// ReaderFor returns the reader matching the suffix of name.
func ReaderFor(name string) (Reader, error) {
	ext, _ := suffix(name)
	switch ext {
	case "yoda":
		return NewYODAReader(), nil
	case "aida":
		return NewAIDAReader(), nil
	case "dat":
		return NewFlatReader(), nil
	}
	return nil, unidentified(name)
}

// WriterFor returns the writer matching the suffix of name.
func WriterFor(name string) (Writer, error) {
	ext, _ := suffix(name)
	switch ext {
	case "yoda":
		return NewYODAWriter(), nil
	case "aida":
		return NewAIDAWriter(), nil
	case "dat":
		return NewFlatWriter(), nil
	}
	return nil, unidentified(name)
}

// ReadFile reads all objects from the named file, decompressing .gz files.
// The name "-" reads the native format from stdin.
func ReadFile(name string) ([]ao.Object, error) {
	if name == "-" {
		return NewYODAReader().Read(os.Stdin)
	}
	reader, err := ReaderFor(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if _, gz := suffix(name); gz {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.NewFormatf("%s: %s", name, err)
		}
		defer zr.Close()
		r = zr
	}
	return reader.Read(r)
}

// WriteFile writes objs to the named file, compressing .gz files.
// The name "-" writes the native format to stdout.
// A negative precision keeps the default of the chosen writer.
func WriteFile(name string, objs []ao.Object, precision int) error {
	var writer Writer
	if name == "-" {
		writer = NewYODAWriter()
	} else {
		var err error
		writer, err = WriterFor(name)
		if err != nil {
			return err
		}
	}
	if precision >= 0 {
		writer.SetPrecision(precision)
	}
	if name == "-" {
		return writer.Write(os.Stdout, objs)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, gz := suffix(name); gz {
		zw := pgzip.NewWriter(f)
		if err := writer.Write(zw, objs); err != nil {
			zw.Close()
			f.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	if err := writer.Write(f, objs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
