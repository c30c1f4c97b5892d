package location

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sort"
	"sync"

	"github.com/ironsheep/iris-locator-mcp/internal/detection"
	"github.com/ironsheep/iris-locator-mcp/internal/imaging"
)

// ErrUnknownBackend is returned by Init for a name nobody registered.
var ErrUnknownBackend = errors.New("unknown backend")

// NativeBackend is the name of the pure Go backend.
const NativeBackend = "native"

// Backend supplies the image operations the pipeline is built from.
//
// All methods take zero-origin grayscale images and must not modify them.
// A Backend that also implements io.Closer is closed by Teardown.
type Backend interface {
	Name() string
	MorphGradient(g *image.Gray, size int, shape imaging.StructuringShape) *image.Gray
	Threshold(g *image.Gray, policy imaging.ThresholdPolicy) (*image.Gray, uint8, error)
	Canny(g *image.Gray, low, high float64) *image.Gray
	HoughCircles(g *image.Gray, p detection.HoughParams) []detection.Circle
}

// Opener creates a Backend. It runs once per Init that selects it.
type Opener func() (Backend, error)

var (
	registryMu sync.Mutex
	registry   = map[string]Opener{
		NativeBackend: func() (Backend, error) { return nativeBackend{}, nil },
	}
	active Backend
)

// Register makes a backend available to Init under name. Registering a
// name twice replaces the earlier opener.
func Register(name string, open Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = open
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Init selects the process-wide backend. An empty name selects the native
// backend. Calling Init again with the active backend's name does nothing;
// a different name tears the current backend down first.
func Init(name string) error {
	if name == "" {
		name = NativeBackend
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if active != nil && active.Name() == name {
		return nil
	}
	open, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	b, err := open()
	if err != nil {
		return fmt.Errorf("failed to initialize backend %s: %w", name, err)
	}

	if err := closeActive(); err != nil {
		if c, ok := b.(io.Closer); ok {
			_ = c.Close()
		}
		return err
	}
	active = b
	return nil
}

// Teardown releases the active backend. It is safe to call when nothing
// was initialized, and more than once.
func Teardown() error {
	registryMu.Lock()
	defer registryMu.Unlock()
	return closeActive()
}

// Active returns the selected backend, initializing the native one if
// Init was never called.
func Active() Backend {
	registryMu.Lock()
	defer registryMu.Unlock()
	if active == nil {
		active = nativeBackend{}
	}
	return active
}

func closeActive() error {
	if active == nil {
		return nil
	}
	b := active
	active = nil
	if c, ok := b.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close backend %s: %w", b.Name(), err)
		}
	}
	return nil
}

// nativeBackend runs everything in pure Go.
type nativeBackend struct{}

func (nativeBackend) Name() string { return NativeBackend }

func (nativeBackend) MorphGradient(g *image.Gray, size int, shape imaging.StructuringShape) *image.Gray {
	return imaging.MorphGradient(g, size, shape)
}

func (nativeBackend) Threshold(g *image.Gray, policy imaging.ThresholdPolicy) (*image.Gray, uint8, error) {
	return imaging.AutoThreshold(g, policy)
}

func (nativeBackend) Canny(g *image.Gray, low, high float64) *image.Gray {
	return imaging.Canny(g, low, high)
}

func (nativeBackend) HoughCircles(g *image.Gray, p detection.HoughParams) []detection.Circle {
	return detection.HoughCircles(g, p)
}
