// Package logger provides the text formatter used by the yoda tools with github.com/sirupsen/logrus.
// Lines look like:
//
//	2024-01-02T15:04:05Z [WARNING] [yoda] skipping malformed line context=YODA_HISTO1D line=12
package logger

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultTimestampFormat = time.RFC3339

// TextFormatter renders entries as "[timestamp] [LEVEL] [module] message k=v ..." with sorted fields.
type TextFormatter struct {
	// DisableTimestamp drops the timestamp, for output that is already timestamped
	DisableTimestamp bool

	TimestampFormat string

	// ModuleName is printed in brackets before the message when set.
	ModuleName string
}

// Setup installs a TextFormatter for module on the standard logrus logger,
// writing to w at the given level name.
func Setup(module, level string, w io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %s", level, err)
	}
	logrus.SetOutput(w)
	logrus.SetFormatter(&TextFormatter{ModuleName: module})
	logrus.SetLevel(lvl)
	return nil
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if !f.DisableTimestamp {
		format := f.TimestampFormat
		if format == "" {
			format = defaultTimestampFormat
		}
		b.WriteString(entry.Time.Format(format))
		b.WriteByte(' ')
	}

	b.WriteByte('[')
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString("] ")

	if f.ModuleName != "" {
		b.WriteByte('[')
		b.WriteString(f.ModuleName)
		b.WriteString("] ")
	}

	b.WriteString(entry.Message)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		appendValue(b, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func needsQuoting(text string) bool {
	if len(text) == 0 {
		return true
	}
	for _, ch := range text {
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '-' || ch == '.' || ch == '_' || ch == '/') {
			return true
		}
	}
	return false
}

func appendValue(b *bytes.Buffer, value interface{}) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case error:
		s = v.Error()
	default:
		fmt.Fprint(b, v)
		return
	}
	if needsQuoting(s) {
		fmt.Fprintf(b, "%q", s)
		return
	}
	b.WriteString(s)
}
