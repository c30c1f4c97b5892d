package location

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/iris-locator-mcp/internal/detection"
	"github.com/ironsheep/iris-locator-mcp/internal/imaging"
)

var (
	// ErrInvalidParams is wrapped by every Params.Validate failure.
	ErrInvalidParams = errors.New("invalid pipeline parameters")

	// ErrUnknownPreset is returned when a preset name is not defined.
	ErrUnknownPreset = errors.New("unknown preset")
)

// DefaultPreset is used when no preset is named.
const DefaultPreset = "otsu-canny"

// CannyThresholds configures the optional edge pass after binarization.
type CannyThresholds struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Params configures one pipeline run.
type Params struct {
	// KernelSize is the side of the structuring element, in pixels.
	KernelSize int `yaml:"kernel_size" json:"kernel_size"`

	// KernelShape is "rect" (default when empty) or "ellipse".
	KernelShape imaging.StructuringShape `yaml:"kernel_shape" json:"kernel_shape"`

	// Threshold picks the binarization policy.
	Threshold imaging.ThresholdPolicy `yaml:"threshold" json:"threshold"`

	// Canny enables an edge pass on the binary image when set.
	Canny *CannyThresholds `yaml:"canny" json:"canny,omitempty"`

	// BlurRadius is the Gaussian pre-blur radius. Zero disables it.
	BlurRadius float64 `yaml:"blur_radius" json:"blur_radius"`

	// Hough transform settings. See detection.HoughParams.
	DP        float64 `yaml:"dp" json:"dp"`
	MinDist   float64 `yaml:"min_dist" json:"min_dist"`
	Param1    float64 `yaml:"param1" json:"param1"`
	Param2    float64 `yaml:"param2" json:"param2"`
	MinRadius int     `yaml:"min_radius" json:"min_radius"`
	MaxRadius int     `yaml:"max_radius" json:"max_radius"`
}

// Validate reports the first parameter that is out of range.
func (p Params) Validate() error {
	if p.KernelSize < 1 {
		return fmt.Errorf("%w: kernel_size must be at least 1, got %d", ErrInvalidParams, p.KernelSize)
	}
	switch p.KernelShape {
	case "", imaging.ShapeRect, imaging.ShapeEllipse:
	default:
		return fmt.Errorf("%w: unknown kernel_shape %q", ErrInvalidParams, p.KernelShape)
	}
	if !p.Threshold.Valid() {
		return fmt.Errorf("%w: unknown threshold policy %q", ErrInvalidParams, p.Threshold)
	}

	floats := []namedValue{
		{"blur_radius", p.BlurRadius},
		{"dp", p.DP},
		{"min_dist", p.MinDist},
		{"param1", p.Param1},
		{"param2", p.Param2},
	}
	if p.Canny != nil {
		floats = append(floats, namedValue{"canny.low", p.Canny.Low}, namedValue{"canny.high", p.Canny.High})
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidParams, f.name, f.v)
		}
	}

	if p.MinRadius < 0 {
		return fmt.Errorf("%w: min_radius must be non-negative, got %d", ErrInvalidParams, p.MinRadius)
	}
	if p.MaxRadius < 0 {
		return fmt.Errorf("%w: max_radius must be non-negative, got %d", ErrInvalidParams, p.MaxRadius)
	}
	if p.MaxRadius > 0 && p.MinRadius > p.MaxRadius {
		return fmt.Errorf("%w: min_radius %d exceeds max_radius %d", ErrInvalidParams, p.MinRadius, p.MaxRadius)
	}
	return nil
}

type namedValue struct {
	name string
	v    float64
}

// Hough returns the circle search settings of p. The gradient band is about
// KernelSize pixels wide, so both of its edges are pooled into the radius.
func (p Params) Hough() detection.HoughParams {
	return detection.HoughParams{
		DP:        p.DP,
		MinDist:   p.MinDist,
		Param1:    p.Param1,
		Param2:    p.Param2,
		MinRadius: p.MinRadius,
		MaxRadius: p.MaxRadius,
		BandWidth: float64(p.KernelSize),
	}
}

// clone returns a copy of p that shares no pointers with it.
func (p Params) clone() Params {
	if p.Canny != nil {
		c := *p.Canny
		p.Canny = &c
	}
	return p
}

// Presets returns the built-in parameter sets.
func Presets() map[string]Params {
	return map[string]Params{
		// Morphology with a 9x9 element, Otsu, then Canny before the
		// Hough search. Centers land on a 2px grid.
		"otsu-canny": {
			KernelSize:  9,
			KernelShape: imaging.ShapeRect,
			Threshold:   imaging.ThresholdOtsu,
			Canny:       &CannyThresholds{Low: 5, High: 100},
			DP:          2,
			Param1:      5,
			Param2:      100,
			MinRadius:   0,
			MaxRadius:   100,
		},
		// A thin 3x3 gradient band fed straight to the Hough search.
		"triangle": {
			KernelSize:  3,
			KernelShape: imaging.ShapeRect,
			Threshold:   imaging.ThresholdTriangle,
			DP:          1,
			Param1:      100,
			Param2:      25,
			MinRadius:   10,
			MaxRadius:   120,
		},
		// Wide gradient band with a coarse accumulator for large captures.
		"triangle-wide": {
			KernelSize:  9,
			KernelShape: imaging.ShapeRect,
			Threshold:   imaging.ThresholdTriangle,
			DP:          2,
			Param1:      100,
			Param2:      50,
			MinRadius:   20,
			MaxRadius:   150,
		},
	}
}

// PresetSet is a named collection of parameter sets.
type PresetSet struct {
	presets map[string]Params
}

// NewPresetSet returns a set holding the built-in presets.
func NewPresetSet() *PresetSet {
	return &PresetSet{presets: Presets()}
}

// Get returns a copy of the named preset. An empty name selects
// DefaultPreset.
func (s *PresetSet) Get(name string) (Params, error) {
	if name == "" {
		name = DefaultPreset
	}
	p, ok := s.presets[name]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, s.Names())
	}
	return p.clone(), nil
}

// Names returns the preset names in sorted order.
func (s *PresetSet) Names() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type presetFile struct {
	Presets map[string]yaml.Node `yaml:"presets"`
}

// LoadPresets reads a YAML preset file and merges it over the built-in
// presets. Fields a file entry leaves out keep the value of the built-in
// preset of the same name; a new name starts from DefaultPreset. Every
// resulting preset must validate.
//
// A missing file is not an error: the built-in set is returned.
func LoadPresets(path string) (*PresetSet, error) {
	set := NewPresetSet()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, fmt.Errorf("error reading preset file: %w", err)
	}
	if err := set.Merge(data); err != nil {
		return nil, fmt.Errorf("error parsing preset file %s: %w", path, err)
	}
	return set, nil
}

// Merge applies YAML preset overrides to s.
func (s *PresetSet) Merge(data []byte) error {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}

	names := make([]string, 0, len(file.Presets))
	for name := range file.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	merged := make(map[string]Params, len(s.presets)+len(names))
	for name, p := range s.presets {
		merged[name] = p
	}
	for _, name := range names {
		base, ok := s.presets[name]
		if !ok {
			base = s.presets[DefaultPreset]
		}
		base = base.clone()

		node := file.Presets[name]
		if err := node.Decode(&base); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
		if err := base.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
		merged[name] = base
	}

	s.presets = merged
	return nil
}
