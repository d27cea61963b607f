package provider

import (
	"math"

	"github.com/map-service/internal/domain"
)

const (
	DefaultWidth  = 1024
	DefaultAspect = 16.0 / 9.0
	DefaultZoom   = 14
)

// MapBase adds rendering parameters to Base. Concrete providers embed it and
// implement the MapRenderer methods it does not cover.
type MapBase struct {
	Base

	width    int
	height   int
	zoom     int
	style    string
	user     string
	location string
}

// NewMapBase resolves size and zoom defaults from options, applies args on top
// and assigns the coordinate when both latitude and longitude are given.
func NewMapBase(identity domain.ProviderIdentity, args Args, options Options) MapBase {
	width := DefaultSize(options)
	aspect, ok := OptionFloat(options, OptionAspect)
	if !ok || aspect <= 0 {
		aspect = DefaultAspect
	}
	zoom, ok := OptionInt(options, OptionZoom)
	if !ok {
		zoom = DefaultZoom
	}

	apiKey := ""
	if args.API != nil {
		apiKey = *args.API
	}
	m := MapBase{
		Base:  NewBase(identity, apiKey),
		width: width,
		zoom:  zoom,
	}
	if args.Width != nil {
		m.width = *args.Width
	}
	// height follows the resolved width unless given explicitly
	m.height = int(math.Round(float64(m.width) / aspect))
	if args.Height != nil {
		m.height = *args.Height
	}
	if args.MapZoom != nil {
		m.zoom = *args.MapZoom
	}
	if args.Style != nil {
		m.style = *args.Style
	}
	if args.User != nil {
		m.user = *args.User
	}
	if args.Location != nil {
		m.location = *args.Location
	}
	if args.Latitude != nil && args.Longitude != nil {
		m.Set(*args.Latitude, *args.Longitude, args.Altitude)
	}
	return m
}

// DefaultSize picks the image width: stored width option, then host content width, then 1024.
func DefaultSize(options Options) int {
	if w, ok := OptionInt(options, OptionWidth); ok && w > 0 {
		return w
	}
	if w, ok := OptionInt(options, OptionContentWidth); ok && w > 0 {
		return w
	}
	return DefaultWidth
}

// SetBundle updates width, height, map_zoom and location when present, then
// assigns the coordinate fields. The result reflects the coordinate assignment.
func (m *MapBase) SetBundle(bundle Bundle) bool {
	return m.AssignBundle(bundle) == nil
}

func (m *MapBase) AssignBundle(bundle Bundle) error {
	if v, ok := toInt(bundle[KeyHeight]); ok {
		m.height = v
	}
	if v, ok := toInt(bundle[KeyWidth]); ok {
		m.width = v
	}
	if v, ok := toInt(bundle[KeyMapZoom]); ok {
		m.zoom = v
	}
	if v, ok := toString(bundle[KeyLocation]); ok {
		m.location = v
	}
	return m.Base.AssignBundle(bundle)
}

func (m *MapBase) Width() int       { return m.width }
func (m *MapBase) Height() int      { return m.height }
func (m *MapBase) Zoom() int        { return m.zoom }
func (m *MapBase) Style() string    { return m.style }
func (m *MapBase) User() string     { return m.user }
func (m *MapBase) Location() string { return m.location }

func (m *MapBase) Params() domain.MapParams {
	return domain.MapParams{
		Width:    m.width,
		Height:   m.height,
		Zoom:     m.zoom,
		Style:    m.style,
		User:     m.user,
		Location: m.location,
	}
}

// MapHTML renders nothing: dynamic maps are left to providers that support them.
func (m *MapBase) MapHTML(static bool) string {
	return ""
}
