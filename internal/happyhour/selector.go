package happyhour

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Days is the set of weekdays a window applies to: either every day
// or an explicit list of weekday indices (0=Sunday .. 6=Saturday).
type Days struct {
	All  bool
	List []int
}

// UnmarshalYAML accepts either the scalar "all" or a list of weekday
// indices.
func (d *Days) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if !strings.EqualFold(s, "all") {
			return fmt.Errorf("days must be \"all\" or a list of weekday indices, got %q", s)
		}
		d.All = true
		return nil
	}

	var list []int
	if err := value.Decode(&list); err != nil {
		return err
	}
	for _, day := range list {
		if day < 0 || day > 6 {
			return fmt.Errorf("weekday index out of range: %d", day)
		}
	}
	d.List = list
	return nil
}

// MarshalJSON renders "all" or the weekday list, mirroring the YAML
// form in API responses.
func (d Days) MarshalJSON() ([]byte, error) {
	if d.All {
		return []byte(`"all"`), nil
	}
	parts := make([]string, len(d.List))
	for i, day := range d.List {
		parts[i] = fmt.Sprintf("%d", day)
	}
	return []byte("[" + strings.Join(parts, ",") + "]"), nil
}

// Contains reports whether the given weekday is covered.
func (d Days) Contains(weekday time.Weekday) bool {
	if d.All {
		return true
	}
	for _, day := range d.List {
		if day == int(weekday) {
			return true
		}
	}
	return false
}

// Window is one time-boxed promotional window. The hour range is
// end-exclusive: [StartHour, EndHour).
type Window struct {
	Name       string   `json:"name" yaml:"name"`
	Days       Days     `json:"days" yaml:"days"`
	StartHour  int      `json:"startHour" yaml:"start_hour"`
	EndHour    int      `json:"endHour" yaml:"end_hour"`
	Discount   int      `json:"discount" yaml:"discount"`
	Categories []string `json:"categories" yaml:"categories"`
}

// Selector picks the active promotional window for a moment in time.
// Windows are checked in declared order; the first match wins.
type Selector struct {
	windows []Window
}

// windowFile is the on-disk YAML shape of the window table.
type windowFile struct {
	Windows []Window `yaml:"windows"`
}

// DefaultWindows returns the built-in window table.
func DefaultWindows() []Window {
	return []Window{
		{
			Name:       "Weekday Afternoon",
			Days:       Days{List: []int{1, 2, 3, 4, 5}},
			StartHour:  14,
			EndHour:    17,
			Discount:   20,
			Categories: []string{"starters", "beverages"},
		},
		{
			Name:       "Weekend Evening",
			Days:       Days{List: []int{0, 6}},
			StartHour:  16,
			EndHour:    19,
			Discount:   15,
			Categories: []string{"starters", "desserts"},
		},
	}
}

// NewSelector builds a selector, validating each window.
func NewSelector(windows []Window) (*Selector, error) {
	for i, w := range windows {
		if w.StartHour < 0 || w.StartHour > 23 {
			return nil, fmt.Errorf("window %d (%s): start hour out of range: %d", i, w.Name, w.StartHour)
		}
		if w.EndHour < 0 || w.EndHour > 24 {
			return nil, fmt.Errorf("window %d (%s): end hour out of range: %d", i, w.Name, w.EndHour)
		}
		if w.StartHour >= w.EndHour {
			return nil, fmt.Errorf("window %d (%s): empty hour range [%d,%d)", i, w.Name, w.StartHour, w.EndHour)
		}
		if w.Discount < 0 || w.Discount > 100 {
			return nil, fmt.Errorf("window %d (%s): discount percent out of range: %d", i, w.Name, w.Discount)
		}
	}

	s := &Selector{windows: make([]Window, len(windows))}
	copy(s.windows, windows)
	return s, nil
}

// LoadSelector reads the window table from a YAML file. An empty path
// uses the built-in table.
func LoadSelector(path string, logger zerolog.Logger) (*Selector, error) {
	logger = logger.With().Str("component", "happyhour-selector").Logger()

	if path == "" {
		logger.Info().Msg("using built-in happy-hour windows")
		return NewSelector(DefaultWindows())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read happy-hour table %s: %w", path, err)
	}

	var file windowFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse happy-hour table %s: %w", path, err)
	}

	s, err := NewSelector(file.Windows)
	if err != nil {
		return nil, fmt.Errorf("invalid happy-hour table %s: %w", path, err)
	}

	logger.Info().Int("window_count", len(file.Windows)).Str("file", path).Msg("happy-hour windows loaded")
	return s, nil
}

// Active returns the first declared window covering now, or nil when
// no window is active. The comparison uses the local wall-clock hour
// of the supplied timestamp; the end hour is exclusive.
func (s *Selector) Active(now time.Time) *Window {
	weekday := now.Weekday()
	hour := now.Hour()

	for _, w := range s.windows {
		if w.Days.Contains(weekday) && hour >= w.StartHour && hour < w.EndHour {
			active := w
			return &active
		}
	}
	return nil
}

// Windows returns a copy of the configured window table.
func (s *Selector) Windows() []Window {
	windows := make([]Window, len(s.windows))
	copy(windows, s.windows)
	return windows
}
