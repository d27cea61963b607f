package provider

import (
	"context"
	"net/url"

	"github.com/map-service/internal/domain"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/pkg/utils"
)

// Bundle is the key/value form accepted by SetBundle and ArgsFromBundle.
type Bundle = map[string]interface{}

// Bundle keys.
const (
	KeyAPI       = "api"
	KeyLatitude  = "latitude"
	KeyLongitude = "longitude"
	KeyAltitude  = "altitude"
	KeyWidth     = "width"
	KeyHeight    = "height"
	KeyMapZoom   = "map_zoom"
	KeyUser      = "user"
	KeyStyle     = "style"
	KeyLocation  = "location"

	// short forms accepted in place of the full coordinate keys
	KeyLat = "lat"
	KeyLng = "lng"
	KeyLon = "lon"
	KeyAlt = "alt"
)

var (
	latitudeKeys  = []string{KeyLatitude, KeyLat}
	longitudeKeys = []string{KeyLongitude, KeyLng, KeyLon}
	altitudeKeys  = []string{KeyAltitude, KeyAlt}
)

// Base holds the coordinate state and transport shared by every provider.
// An instance serves one logical request at a time.
type Base struct {
	identity domain.ProviderIdentity
	apiKey   string
	coord    domain.Coordinate
	fetcher  *Fetcher
}

func NewBase(identity domain.ProviderIdentity, apiKey string) Base {
	return Base{
		identity: identity,
		apiKey:   apiKey,
		fetcher:  NewFetcher(),
	}
}

func (b *Base) Identity() domain.ProviderIdentity {
	return b.identity
}

func (b *Base) APIKey() string {
	return b.apiKey
}

// SetFetcher replaces the transport, mostly for tests.
func (b *Base) SetFetcher(f *Fetcher) {
	if f != nil {
		b.fetcher = f
	}
}

// Set assigns coordinates in positional form.
func (b *Base) Set(lat, lng, alt interface{}) bool {
	return b.Assign(lat, lng, alt) == nil
}

// Assign is Set reporting why validation failed. Latitude and longitude must both
// be numeric; altitude is stored only when numeric, otherwise a previous one is cleared.
func (b *Base) Assign(lat, lng, alt interface{}) error {
	latitude, ok := toFloat(lat)
	if !ok {
		return apperrors.NewValidationError("latitude is not numeric")
	}
	longitude, ok := toFloat(lng)
	if !ok {
		return apperrors.NewValidationError("longitude is not numeric")
	}

	b.coord.Latitude = &latitude
	b.coord.Longitude = &longitude
	b.coord.Altitude = nil
	if altitude, ok := toFloat(alt); ok {
		b.coord.Altitude = &altitude
	}
	return nil
}

// SetBundle assigns coordinates from a bundle with latitude and longitude keys
// (or their lat/lng/lon short forms).
func (b *Base) SetBundle(bundle Bundle) bool {
	return b.AssignBundle(bundle) == nil
}

// AssignBundle is SetBundle reporting why validation failed.
func (b *Base) AssignBundle(bundle Bundle) error {
	latRaw, hasLat := utils.FirstOf(bundle, latitudeKeys...)
	lngRaw, hasLng := utils.FirstOf(bundle, longitudeKeys...)
	if !hasLat || latRaw == nil || !hasLng || lngRaw == nil {
		return apperrors.NewValidationError("latitude and longitude are both required")
	}
	altRaw, _ := utils.FirstOf(bundle, altitudeKeys...)
	return b.Assign(latRaw, lngRaw, altRaw)
}

// SetCoordinate assigns a typed coordinate; it fails when latitude or longitude is missing.
func (b *Base) SetCoordinate(c domain.Coordinate) bool {
	if !c.HasPosition() {
		return false
	}
	return b.Set(*c.Latitude, *c.Longitude, c.Altitude)
}

// Get returns a copy of the coordinate; ok is false when nothing has been set.
func (b *Base) Get() (domain.Coordinate, bool) {
	if b.coord.IsEmpty() {
		return domain.Coordinate{}, false
	}
	out := domain.Coordinate{}
	if b.coord.Latitude != nil {
		v := *b.coord.Latitude
		out.Latitude = &v
	}
	if b.coord.Longitude != nil {
		v := *b.coord.Longitude
		out.Longitude = &v
	}
	if b.coord.Altitude != nil {
		v := *b.coord.Altitude
		out.Altitude = &v
	}
	return out, true
}

// Position returns latitude and longitude when both are set.
func (b *Base) Position() (lat, lng float64, ok bool) {
	if !b.coord.HasPosition() {
		return 0, 0, false
	}
	return *b.coord.Latitude, *b.coord.Longitude, true
}

func (b *Base) FetchJSON(ctx context.Context, rawURL string, query url.Values) (interface{}, error) {
	return b.fetcher.FetchJSON(ctx, rawURL, query)
}

func (b *Base) FetchJSONResponse(ctx context.Context, rawURL string, query url.Values) (*JSONResponse, error) {
	return b.fetcher.FetchJSONResponse(ctx, rawURL, query)
}
