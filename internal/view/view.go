// Package view holds the display state of the station list: which stations
// are visible, how they are ordered and which message is shown.
package view

import (
	"context"
	"slices"
	"sync"

	"github.com/rubiojr/gasolineras/internal/locate"
	"github.com/rubiojr/gasolineras/internal/pipeline"
	"github.com/rubiojr/gasolineras/internal/station"
	"github.com/rubiojr/gasolineras/internal/translations"
)

// Mode selects how the visible list is built.
type Mode int

const (
	// ModeCriteria filters by province, locality and postal code and sorts
	// by price.
	ModeCriteria Mode = iota
	// ModeNearby sorts by distance from the located origin.
	ModeNearby
	// ModeFavorites shows the stored favorites.
	ModeFavorites
)

func (m Mode) String() string {
	switch m {
	case ModeNearby:
		return "nearby"
	case ModeFavorites:
		return "favorites"
	default:
		return "criteria"
	}
}

// Model is safe for concurrent use.
type Model struct {
	tr translations.Translations

	mu        sync.Mutex
	mode      Mode
	prevMode  Mode
	filter    station.Filter
	origin    *station.Coordinates
	radiusKm  float64
	loading   bool
	loadErr   string
	geoErr    string
	snapshot  *pipeline.Snapshot
	favorites []station.Station
}

func New(tr translations.Translations) *Model {
	return &Model{
		tr:      tr,
		mode:    ModeCriteria,
		filter:  station.DefaultFilter(),
		loading: true,
	}
}

// SetLoading marks a fetch in progress.
func (m *Model) SetLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = true
}

// SetSnapshot replaces the station list and clears any load error.
func (m *Model) SetSnapshot(s *pipeline.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = s
	m.loading = false
	m.loadErr = ""
}

// SetError records a failed fetch. The previous snapshot stays visible.
func (m *Model) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.loadErr = m.tr.LoadError
	}
}

// Apply folds a pipeline update into the model.
func (m *Model) Apply(u pipeline.Update) {
	if u.Err != nil {
		m.SetError(u.Err)
		return
	}
	m.SetSnapshot(u.Snapshot)
}

// SetFilter switches to criteria mode with f. When the province changes and
// the locality does not, the locality is cleared.
func (m *Model) SetFilter(f station.Filter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.Province != m.filter.Province && f.Locality == m.filter.Locality {
		f.Locality = ""
	}
	if f.Fuel == "" {
		f.Fuel = station.DefaultFuel
	}
	m.filter = f
	m.mode = ModeCriteria
	m.geoErr = ""
}

// ResetFilter restores the default filter.
func (m *Model) ResetFilter() {
	m.SetFilter(station.DefaultFilter())
}

// SetRadius limits nearby results to km. Zero or less shows every station.
func (m *Model) SetRadius(km float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.radiusKm = km
}

// Locate asks l for the current position. On success the model switches to
// nearby mode. On failure the mode is kept and GeolocationError returns the
// message for err.
func (m *Model) Locate(ctx context.Context, l locate.Locator) error {
	pos, err := locate.Locate(ctx, l)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.geoErr = m.tr.GeolocationMessage(err)
		return err
	}
	m.origin = &pos
	m.mode = ModeNearby
	m.geoErr = ""
	return nil
}

// ShowFavorites switches to the favorites list, or back to the mode that was
// active before.
func (m *Model) ShowFavorites(show bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case show && m.mode != ModeFavorites:
		m.prevMode = m.mode
		m.mode = ModeFavorites
	case !show && m.mode == ModeFavorites:
		m.mode = m.prevMode
	}
}

// SetFavorites replaces the favorites list.
func (m *Model) SetFavorites(favs []station.Station) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites = slices.Clone(favs)
}

// Visible returns the stations to display for the current mode.
func (m *Model) Visible() []station.Station {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode == ModeFavorites {
		return slices.Clone(m.favorites)
	}
	if m.snapshot == nil {
		return nil
	}
	if m.mode == ModeNearby && m.origin != nil {
		return station.WithinRadius(station.RankByDistance(m.snapshot.Stations, *m.origin), m.radiusKm)
	}
	return station.Apply(m.snapshot.Stations, m.filter)
}

// Provinces lists the provinces of the current snapshot.
func (m *Model) Provinces() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil
	}
	return station.Provinces(m.snapshot.Stations)
}

// Localities lists the localities of the selected province, or every
// locality when no province is selected.
func (m *Model) Localities() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil
	}
	return station.LocalitiesIn(m.snapshot.Stations, m.filter.Province)
}

func (m *Model) FavoritesCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.favorites)
}

func (m *Model) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *Model) Filter() station.Filter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

// Origin returns the located position, if any.
func (m *Model) Origin() (station.Coordinates, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.origin == nil {
		return station.Coordinates{}, false
	}
	return *m.origin, true
}

func (m *Model) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// LoadError returns the message of the last failed fetch, or "".
func (m *Model) LoadError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// GeolocationError returns the message of the last failed Locate, or "".
func (m *Model) GeolocationError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.geoErr
}

func (m *Model) Snapshot() *pipeline.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// Translations returns the message set the model was built with.
func (m *Model) Translations() translations.Translations {
	return m.tr
}
