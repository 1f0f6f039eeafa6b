// Package conf reads the binning rule file used when booking new histograms.
package conf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/grafana/configparser"
	"github.com/yodaproject/yoda/util"
)

// Kind of edge generator.
type Kind int

const (
	Linear Kind = iota
	Log
	LinLog
	Explicit
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "lin"
	case Log:
		return "log"
	case LinLog:
		return "linlog"
	case Explicit:
		return "explicit"
	}
	return "unknown"
}

// Binnings holds the binning rule definitions
type Binnings struct {
	Rules   []Binning
	Default Binning
}

// Binning describes the bin edges used for histograms whose path matches Pattern.
type Binning struct {
	Name    string
	Pattern *regexp.Regexp
	Kind    Kind
	Spec    string // the edges option as written

	// Linear and Log
	N      int
	Lo, Hi float64

	// LinLog
	Max, Linear, Subbin uint64

	// Explicit
	Explicit []float64
}

// NewBinnings creates an instance of Binnings with a catchall default of 100 bins over [0, 1).
func NewBinnings() Binnings {
	return Binnings{
		Default: Binning{
			Name:    "default",
			Pattern: regexp.MustCompile(""),
			Kind:    Linear,
			Spec:    "lin:100:0:1",
			N:       100,
			Lo:      0,
			Hi:      1,
		},
	}
}

// ReadBinnings returns the binning rules from a binnings.conf file and adds the default.
// Rules are matched in file order.
func ReadBinnings(file string) (Binnings, error) {
	config, err := configparser.ReadFile(file)
	if err != nil {
		return Binnings{}, err
	}
	_, sections, err := config.AllSections()
	if err != nil {
		return Binnings{}, err
	}

	result := NewBinnings()

	for _, s := range sections {
		name := strings.TrimSpace(s.Name())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		pattern := s.ValueOfWithoutComments("pattern")
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Binnings{}, fmt.Errorf("[%s]: failed to parse pattern %q: %s", name, pattern, err.Error())
		}
		item, err := ParseEdges(s.ValueOfWithoutComments("edges"))
		if err != nil {
			return Binnings{}, fmt.Errorf("[%s]: %s", name, err.Error())
		}
		item.Name = name
		item.Pattern = re
		result.Rules = append(result.Rules, item)
	}

	return result, nil
}

// ParseEdges parses an edges specification:
//
//	lin:N:lo:hi            N equal-width bins
//	log:N:lo:hi            N bins equally spaced in log(x), lo > 0
//	linlog:max:linear:sub  linear-log bins up to max
//	explicit:e0,e1,...     the given edges
func ParseEdges(spec string) (Binning, error) {
	spec = strings.TrimSpace(spec)
	parts := strings.Split(spec, ":")
	b := Binning{Spec: spec}
	switch parts[0] {
	case "lin", "log":
		if len(parts) != 4 {
			return b, fmt.Errorf("failed to parse edges %q: expected %s:N:lo:hi", spec, parts[0])
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 {
			return b, fmt.Errorf("failed to parse edges %q: bad bin count %q", spec, parts[1])
		}
		lo, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return b, fmt.Errorf("failed to parse edges %q: bad low edge %q", spec, parts[2])
		}
		hi, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return b, fmt.Errorf("failed to parse edges %q: bad high edge %q", spec, parts[3])
		}
		if !(lo < hi) {
			return b, fmt.Errorf("failed to parse edges %q: low edge must be below high edge", spec)
		}
		b.Kind, b.N, b.Lo, b.Hi = Linear, n, lo, hi
		if parts[0] == "log" {
			if lo <= 0 {
				return b, fmt.Errorf("failed to parse edges %q: log binning needs a positive low edge", spec)
			}
			b.Kind = Log
		}
	case "linlog":
		if len(parts) != 4 {
			return b, fmt.Errorf("failed to parse edges %q: expected linlog:max:linear:subbin", spec)
		}
		var vals [3]uint64
		for i, p := range parts[1:] {
			v, err := strconv.ParseUint(p, 10, 64)
			if err != nil || v == 0 {
				return b, fmt.Errorf("failed to parse edges %q: bad value %q", spec, p)
			}
			vals[i] = v
		}
		b.Kind, b.Max, b.Linear, b.Subbin = LinLog, vals[0], vals[1], vals[2]
	case "explicit":
		if len(parts) != 2 {
			return b, fmt.Errorf("failed to parse edges %q: expected explicit:e0,e1,...", spec)
		}
		for _, p := range strings.Split(parts[1], ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return b, fmt.Errorf("failed to parse edges %q: bad edge %q", spec, p)
			}
			if n := len(b.Explicit); n > 0 && !(v > b.Explicit[n-1]) {
				return b, fmt.Errorf("failed to parse edges %q: edges must be strictly increasing", spec)
			}
			b.Explicit = append(b.Explicit, v)
		}
		if len(b.Explicit) < 2 {
			return b, fmt.Errorf("failed to parse edges %q: need at least 2 edges", spec)
		}
		b.Kind = Explicit
	default:
		return b, fmt.Errorf("failed to parse edges %q: unknown kind %q", spec, parts[0])
	}
	return b, nil
}

// Edges returns the bin edges described by b.
func (b Binning) Edges() []float64 {
	switch b.Kind {
	case Log:
		return util.LogSpace(b.N, b.Lo, b.Hi)
	case LinLog:
		return util.LinLogSpace(b.Max, b.Linear, b.Subbin)
	case Explicit:
		return append([]float64(nil), b.Explicit...)
	}
	return util.LinSpace(b.N, b.Lo, b.Hi)
}

// Match returns the first rule whose pattern matches path, or the default.
// It also returns the index of the rule, len(Rules) for the default.
func (a Binnings) Match(path string) (int, Binning) {
	for i, r := range a.Rules {
		if r.Pattern.MatchString(path) {
			return i, r
		}
	}
	return len(a.Rules), a.Default
}
