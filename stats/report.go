package stats

import (
	"io"
	"strconv"
	"time"
)

// Report writes every registered metric to w in graphite plaintext format,
// sorted by name. A non-empty prefix gets a trailing dot if it lacks one.
func Report(w io.Writer, prefix string) error {
	return report(w, prefix, time.Now())
}

func report(w io.Writer, prefix string, now time.Time) error {
	if prefix != "" && prefix[len(prefix)-1] != '.' {
		prefix += "."
	}
	var buf []byte
	for _, name := range registry.names() {
		metric := registry.get(name)
		if metric == nil {
			continue
		}
		buf = metric.ReportGraphite([]byte(prefix+name+"."), buf, now)
	}
	_, err := w.Write(buf)
	return err
}

// appendLine appends one line "<prefix><key> <val> <unix ts>\n".
func appendLine(buf, prefix []byte, key string, val uint64, now time.Time) []byte {
	buf = append(buf, prefix...)
	buf = append(buf, key...)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, val, 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, now.Unix(), 10)
	return append(buf, '\n')
}
