package happyhour

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at builds a timestamp on a fixed week: 2025-06-01 was a Sunday.
func at(weekday time.Weekday, hour, minute int) time.Time {
	return time.Date(2025, time.June, 1+int(weekday), hour, minute, 0, 0, time.UTC)
}

func TestSelector_Active_EndHourExclusive(t *testing.T) {
	selector, err := NewSelector([]Window{
		{
			Name:      "Afternoon",
			Days:      Days{All: true},
			StartHour: 14,
			EndHour:   17,
			Discount:  20,
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "before start", now: at(time.Monday, 13, 59), want: false},
		{name: "at start", now: at(time.Monday, 14, 0), want: true},
		{name: "mid window", now: at(time.Monday, 15, 30), want: true},
		{name: "last minute", now: at(time.Monday, 16, 59), want: true},
		{name: "at end sharp", now: at(time.Monday, 17, 0), want: false},
		{name: "after end", now: at(time.Monday, 18, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := selector.Active(tt.now)
			if tt.want {
				require.NotNil(t, active)
				assert.Equal(t, "Afternoon", active.Name)
			} else {
				assert.Nil(t, active)
			}
		})
	}
}

func TestSelector_Active_DayFilter(t *testing.T) {
	selector, err := NewSelector([]Window{
		{
			Name:      "Weekdays Only",
			Days:      Days{List: []int{1, 2, 3, 4, 5}},
			StartHour: 14,
			EndHour:   17,
			Discount:  20,
		},
	})
	require.NoError(t, err)

	assert.NotNil(t, selector.Active(at(time.Wednesday, 15, 0)))
	assert.Nil(t, selector.Active(at(time.Sunday, 15, 0)))
	assert.Nil(t, selector.Active(at(time.Saturday, 15, 0)))
}

func TestSelector_Active_FirstDeclaredWindowWins(t *testing.T) {
	selector, err := NewSelector([]Window{
		{Name: "First", Days: Days{All: true}, StartHour: 14, EndHour: 17, Discount: 20},
		{Name: "Second", Days: Days{All: true}, StartHour: 14, EndHour: 18, Discount: 30},
	})
	require.NoError(t, err)

	active := selector.Active(at(time.Monday, 15, 0))
	require.NotNil(t, active)
	assert.Equal(t, "First", active.Name)

	// Outside the first window the second still applies
	active = selector.Active(at(time.Monday, 17, 30))
	require.NotNil(t, active)
	assert.Equal(t, "Second", active.Name)
}

func TestSelector_Active_NoWindows(t *testing.T) {
	selector, err := NewSelector(nil)
	require.NoError(t, err)

	assert.Nil(t, selector.Active(at(time.Monday, 15, 0)))
}

func TestNewSelector_RejectsBadWindows(t *testing.T) {
	tests := []struct {
		name   string
		window Window
	}{
		{
			name:   "start hour out of range",
			window: Window{Name: "Bad", Days: Days{All: true}, StartHour: 24, EndHour: 25, Discount: 10},
		},
		{
			name:   "empty range",
			window: Window{Name: "Bad", Days: Days{All: true}, StartHour: 17, EndHour: 17, Discount: 10},
		},
		{
			name:   "inverted range",
			window: Window{Name: "Bad", Days: Days{All: true}, StartHour: 18, EndHour: 14, Discount: 10},
		},
		{
			name:   "discount over 100",
			window: Window{Name: "Bad", Days: Days{All: true}, StartHour: 14, EndHour: 17, Discount: 120},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSelector([]Window{tt.window})
			assert.Error(t, err)
		})
	}
}

func TestLoadSelector_FromYAML(t *testing.T) {
	content := `
windows:
  - name: Weekday Afternoon
    days: [1, 2, 3, 4, 5]
    start_hour: 14
    end_hour: 17
    discount: 20
    categories: [starters, beverages]
  - name: All Day Chai
    days: all
    start_hour: 7
    end_hour: 11
    discount: 10
    categories: [beverages]
`
	path := filepath.Join(t.TempDir(), "happy_hour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	selector, err := LoadSelector(path, zerolog.Nop())
	require.NoError(t, err)

	active := selector.Active(at(time.Tuesday, 14, 30))
	require.NotNil(t, active)
	assert.Equal(t, "Weekday Afternoon", active.Name)
	assert.Equal(t, 20, active.Discount)
	assert.Equal(t, []string{"starters", "beverages"}, active.Categories)

	active = selector.Active(at(time.Sunday, 8, 0))
	require.NotNil(t, active)
	assert.Equal(t, "All Day Chai", active.Name)
}

func TestLoadSelector_RejectsBadDayScalar(t *testing.T) {
	content := `
windows:
  - name: Broken
    days: weekends
    start_hour: 14
    end_hour: 17
    discount: 20
`
	path := filepath.Join(t.TempDir(), "happy_hour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadSelector(path, zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadSelector_EmptyPathUsesDefaults(t *testing.T) {
	selector, err := LoadSelector("", zerolog.Nop())
	require.NoError(t, err)

	assert.NotEmpty(t, selector.Windows())
}
