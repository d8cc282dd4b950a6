package device

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/geom"
)

// Profile describes a target device: its page size in points, the safe
// margins its UI chrome covers, and its physical constraints.
type Profile struct {
	Name        string                 `json:"name"`
	Title       string                 `json:"title"`
	Width       float64                `json:"width"`
	Height      float64                `json:"height"`
	SafeMargins geom.Margins           `json:"safe_margins"`
	Constraints geom.DeviceConstraints `json:"constraints"`
	Builtin     bool                   `json:"builtin"`
	Source      string                 `json:"source,omitempty"` // file a user profile was loaded from
}

// Canvas returns the page canvas of the device.
func (p Profile) Canvas() geom.Canvas {
	return geom.Canvas{Width: p.Width, Height: p.Height, Margins: p.SafeMargins}
}

// Touch reports whether the device has a touch or pen screen.
func (p Profile) Touch() bool { return p.Constraints.MinTouchTargetPt > 0 }

func (p Profile) String() string {
	return fmt.Sprintf("%s (%.1f × %.1f pt)", p.Name, p.Width, p.Height)
}

// Validate checks that p is usable as a rescale target.
func (p Profile) Validate() error {
	if err := errors.ValidateDeviceName(p.Name); err != nil {
		return err
	}
	if !p.Canvas().Valid() {
		return errors.New(errors.ErrCodeInvalidDevice, "device %s: size %v × %v with margins %v leaves no safe area",
			p.Name, p.Width, p.Height, p.SafeMargins)
	}
	c := p.Constraints
	if c.MinFontPt < 0 || c.MinStrokePt < 0 || c.MinTouchTargetPt < 0 || c.GrayscaleLevels < 0 || c.MaxGrayFillArea < 0 {
		return errors.New(errors.ErrCodeInvalidDevice, "device %s: constraints must not be negative", p.Name)
	}
	return nil
}

// =============================================================================
// Profile files
// =============================================================================

// profileFile is the TOML form of a profile:
//
//	name = "slate-7"
//	title = "Slate 7"
//	width = 360
//	height = 480
//	safe_margins = [16, 12, 16, 12]
//
//	[constraints]
//	min_font_pt = 7
//	min_stroke_pt = 0.4
//	min_touch_target_pt = 26
//	grayscale_levels = 16
type profileFile struct {
	Name        string                 `toml:"name"`
	Title       string                 `toml:"title"`
	Width       float64                `toml:"width"`
	Height      float64                `toml:"height"`
	SafeMargins [4]float64             `toml:"safe_margins"`
	Constraints geom.DeviceConstraints `toml:"constraints"`
}

// Decode parses a TOML profile and validates it.
func Decode(data []byte) (Profile, error) {
	var f profileFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidDevice, err, "parse device profile")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Profile{}, errors.New(errors.ErrCodeInvalidDevice, "unknown keys in device profile: %v", undecoded)
	}
	m := f.SafeMargins
	p := Profile{
		Name:        f.Name,
		Title:       f.Title,
		Width:       f.Width,
		Height:      f.Height,
		SafeMargins: geom.Margins{Top: m[0], Right: m[1], Bottom: m[2], Left: m[3]},
		Constraints: f.Constraints,
	}
	if p.Title == "" {
		p.Title = p.Name
	}
	return p, p.Validate()
}

// Encode renders p in the TOML profile format.
func Encode(p Profile) ([]byte, error) {
	m := p.SafeMargins
	f := profileFile{
		Name:        p.Name,
		Title:       p.Title,
		Width:       p.Width,
		Height:      p.Height,
		SafeMargins: [4]float64{m.Top, m.Right, m.Bottom, m.Left},
		Constraints: p.Constraints,
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(f); err != nil {
		return nil, fmt.Errorf("encode device profile: %w", err)
	}
	return []byte(sb.String()), nil
}

// ParseFile reads a TOML profile from path.
func ParseFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read %s: %w", path, err)
	}
	p, err := Decode(data)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	p.Source = path
	return p, nil
}

// =============================================================================
// Registry
// =============================================================================

// Registry is a named set of profiles, safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry returns a registry holding the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range Builtin() {
		r.profiles[p.Name] = p
	}
	return r
}

// Register adds or replaces a profile.
func (r *Registry) Register(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Name] = p
	return nil
}

// Lookup returns the profile called name.
func (r *Registry) Lookup(name string) (Profile, error) {
	r.mu.RLock()
	p, ok := r.profiles[name]
	r.mu.RUnlock()
	if !ok {
		return Profile{}, errors.Wrap(errors.ErrCodeDeviceNotFound,
			&errors.UnknownError{What: "device", Name: name, Known: r.Names()},
			"unknown device %q", name)
	}
	return p, nil
}

// Names returns the registered profile names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.profiles))
	for n := range r.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Profiles returns the registered profiles sorted by name.
func (r *Registry) Profiles() []Profile {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(names))
	for _, n := range names {
		if p, ok := r.profiles[n]; ok {
			out = append(out, p)
		}
	}
	return out
}

// LoadFile parses a profile file and registers it.
func (r *Registry) LoadFile(path string) (Profile, error) {
	p, err := ParseFile(path)
	if err != nil {
		return Profile{}, err
	}
	return p, r.Register(p)
}

// LoadDir registers every *.toml profile in dir and returns how many were
// loaded. A missing directory is not an error.
func (r *Registry) LoadDir(dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(paths)
	n := 0
	for _, path := range paths {
		if _, err := r.LoadFile(path); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
