// Package ao provides the analysis objects: binned histograms and profiles built on
// the axis package, point sets (scatters), and the functions converting between them.
//
// Objects are not safe for concurrent mutation; callers serialize access.
package ao

import (
	"sort"
	"strconv"
)

// Type names, as written by the native format.
const (
	TypeHisto1D   = "Histo1D"
	TypeHisto2D   = "Histo2D"
	TypeProfile1D = "Profile1D"
	TypeProfile2D = "Profile2D"
	TypeScatter1D = "Scatter1D"
	TypeScatter2D = "Scatter2D"
	TypeScatter3D = "Scatter3D"
)

// ScaledByKey is the annotation tracking the accumulated weight scale factor.
const ScaledByKey = "ScaledBy"

// Object is implemented by every analysis object.
type Object interface {
	Type() string
	Path() string
	SetPath(path string)
	Title() string
	SetTitle(title string)
	Annotation(key string) (string, bool)
	SetAnnotation(key, value string)
	RmAnnotation(key string)
	AnnotationKeys() []string
}

// AnalysisObject holds the identity shared by all analysis objects: a path,
// a title and free-form string annotations.
type AnalysisObject struct {
	path        string
	title       string
	annotations map[string]string
}

func newAnalysisObject(path, title string) AnalysisObject {
	return AnalysisObject{
		path:        path,
		title:       title,
		annotations: make(map[string]string),
	}
}

func (a *AnalysisObject) Path() string {
	return a.path
}

func (a *AnalysisObject) SetPath(path string) {
	a.path = path
}

func (a *AnalysisObject) Title() string {
	return a.title
}

func (a *AnalysisObject) SetTitle(title string) {
	a.title = title
}

func (a *AnalysisObject) Annotation(key string) (string, bool) {
	v, ok := a.annotations[key]
	return v, ok
}

func (a *AnalysisObject) SetAnnotation(key, value string) {
	if a.annotations == nil {
		a.annotations = make(map[string]string)
	}
	a.annotations[key] = value
}

func (a *AnalysisObject) RmAnnotation(key string) {
	delete(a.annotations, key)
}

// AnnotationKeys returns the annotation keys in sorted order.
func (a *AnalysisObject) AnnotationKeys() []string {
	keys := make([]string, 0, len(a.annotations))
	for k := range a.annotations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a *AnalysisObject) cloneIdentity() AnalysisObject {
	c := newAnalysisObject(a.path, a.title)
	for k, v := range a.annotations {
		c.annotations[k] = v
	}
	return c
}

// recordScale multiplies the ScaledBy annotation by f.
func (a *AnalysisObject) recordScale(f float64) {
	cur := 1.0
	if v, ok := a.annotations[ScaledByKey]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cur = parsed
		}
	}
	a.SetAnnotation(ScaledByKey, strconv.FormatFloat(cur*f, 'g', -1, 64))
}
