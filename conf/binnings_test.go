package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConf(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "binnings.conf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %s", err)
	}
	return path
}

func TestReadBinnings(t *testing.T) {
	cases := []struct {
		in       string
		expErr   bool
		expNames []string
		expKinds []Kind
	}{
		{
			in:       "",
			expNames: nil,
		},
		{
			in: `
# jets get a wide range
[jets]
pattern = ^/ANALYSIS/jet
edges = lin:50:0:500   # GeV

[pt]
pattern = _pT$
edges = log:20:1:1000

[latency]
pattern = latency
edges = linlog:1024:4:4

[eta]
pattern = eta
edges = explicit:-2.5,-1,0,1,2.5
`,
			expNames: []string{"jets", "pt", "latency", "eta"},
			expKinds: []Kind{Linear, Log, LinLog, Explicit},
		},
		{
			in: `
[bad]
pattern = (
edges = lin:1:0:1
`,
			expErr: true,
		},
		{
			in: `
[bad]
pattern = x
edges = lin:0:0:1
`,
			expErr: true,
		},
	}
	for i, c := range cases {
		rules, err := ReadBinnings(writeConf(t, c.in))
		if (err != nil) != c.expErr {
			t.Fatalf("case %d, exp err %t, got err %v", i, c.expErr, err)
		}
		if err != nil {
			continue
		}
		var names []string
		var kinds []Kind
		for _, r := range rules.Rules {
			names = append(names, r.Name)
			kinds = append(kinds, r.Kind)
		}
		if diff := cmp.Diff(c.expNames, names); diff != "" {
			t.Fatalf("case %d: rule names mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(c.expKinds, kinds); diff != "" {
			t.Fatalf("case %d: rule kinds mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestMatch(t *testing.T) {
	rules, err := ReadBinnings(writeConf(t, `
[jets]
pattern = ^/ANALYSIS/jet
edges = lin:2:0:10

[all-analysis]
pattern = ^/ANALYSIS/
edges = explicit:0,1,5
`))
	if err != nil {
		t.Fatalf("failed to read rules: %s", err)
	}
	cases := []struct {
		path     string
		expIdx   int
		expEdges []float64
	}{
		{"/ANALYSIS/jet_pT", 0, []float64{0, 5, 10}},
		{"/ANALYSIS/met", 1, []float64{0, 1, 5}},
		{"/OTHER/x", 2, nil},
	}
	for _, c := range cases {
		i, b := rules.Match(c.path)
		if i != c.expIdx {
			t.Fatalf("path %q: expected rule %d, got %d", c.path, c.expIdx, i)
		}
		if c.expEdges == nil {
			if b.Name != "default" || len(b.Edges()) != 101 {
				t.Fatalf("path %q: expected the default binning, got %q with %d edges", c.path, b.Name, len(b.Edges()))
			}
			continue
		}
		if diff := cmp.Diff(c.expEdges, b.Edges()); diff != "" {
			t.Fatalf("path %q: edges mismatch (-want +got):\n%s", c.path, diff)
		}
	}
}

func TestParseEdges(t *testing.T) {
	cases := []struct {
		spec   string
		expErr bool
	}{
		{"lin:10:0:1", false},
		{"log:3:1:1000", false},
		{"log:3:0:1000", true},
		{"lin:3:1:1", true},
		{"linlog:100:10:0", true},
		{"explicit:0,2,1", true},
		{"explicit:0", true},
		{"cubic:1:2:3", true},
		{"lin:x:0:1", true},
	}
	for _, c := range cases {
		_, err := ParseEdges(c.spec)
		if (err != nil) != c.expErr {
			t.Fatalf("spec %q: expected error %t, got %v", c.spec, c.expErr, err)
		}
	}
}
