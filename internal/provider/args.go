package provider

import (
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/pkg/utils"
)

// Args configures a provider at construction. Nil fields take the documented
// defaults: stored options for api/user/style/width/zoom, 1024 px width,
// width/aspect height, no coordinate.
type Args struct {
	API       *string
	Latitude  *float64
	Longitude *float64
	Altitude  *float64
	Width     *int
	Height    *int
	MapZoom   *int
	User      *string
	Style     *string
	Location  *string
}

// String returns a pointer to s for use in Args.
func String(s string) *string { return &s }

// Float returns a pointer to f for use in Args.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i for use in Args.
func Int(i int) *int { return &i }

// ArgsFromBundle converts a key/value configuration. Unknown keys are ignored;
// present keys with a value of the wrong kind are a validation error.
func ArgsFromBundle(bundle Bundle) (Args, error) {
	var args Args

	strs := []struct {
		key string
		dst **string
	}{
		{KeyAPI, &args.API},
		{KeyUser, &args.User},
		{KeyStyle, &args.Style},
		{KeyLocation, &args.Location},
	}
	for _, f := range strs {
		raw, ok := bundle[f.key]
		if !ok || raw == nil {
			continue
		}
		s, ok := toString(raw)
		if !ok {
			return Args{}, apperrors.NewValidationError(f.key + " must be a string")
		}
		*f.dst = &s
	}

	floats := []struct {
		keys []string
		dst  **float64
	}{
		{latitudeKeys, &args.Latitude},
		{longitudeKeys, &args.Longitude},
		{altitudeKeys, &args.Altitude},
	}
	for _, f := range floats {
		raw, ok := utils.FirstOf(bundle, f.keys...)
		if !ok || raw == nil {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			return Args{}, apperrors.NewValidationError(f.keys[0] + " is not numeric")
		}
		*f.dst = &v
	}

	ints := []struct {
		key string
		dst **int
	}{
		{KeyWidth, &args.Width},
		{KeyHeight, &args.Height},
		{KeyMapZoom, &args.MapZoom},
	}
	for _, f := range ints {
		raw, ok := bundle[f.key]
		if !ok || raw == nil {
			continue
		}
		v, ok := toInt(raw)
		if !ok {
			return Args{}, apperrors.NewValidationError(f.key + " is not numeric")
		}
		*f.dst = &v
	}

	return args, nil
}
