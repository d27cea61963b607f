package provider

// Stored option names read when construction args leave a value unset.
const (
	OptionContentWidth = "content_width"
	OptionWidth        = "sloc_width"
	OptionAspect       = "sloc_aspect"
	OptionZoom         = "sloc_zoom"
)

// Options exposes host-application settings to providers.
type Options interface {
	Get(key string) (interface{}, bool)
}

// MapOptions is an in-memory Options.
type MapOptions map[string]interface{}

func (m MapOptions) Get(key string) (interface{}, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// ChainOptions consults each source in order and returns the first hit.
type ChainOptions []Options

func (c ChainOptions) Get(key string) (interface{}, bool) {
	for _, opts := range c {
		if opts == nil {
			continue
		}
		if v, ok := opts.Get(key); ok {
			return v, true
		}
	}
	return nil, false
}

// OptionString reads a non-empty string option.
func OptionString(opts Options, key string) (string, bool) {
	if opts == nil {
		return "", false
	}
	v, ok := opts.Get(key)
	if !ok {
		return "", false
	}
	s, ok := toString(v)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// OptionFloat reads a numeric option.
func OptionFloat(opts Options, key string) (float64, bool) {
	if opts == nil {
		return 0, false
	}
	v, ok := opts.Get(key)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// OptionInt reads a numeric option rounded to an int.
func OptionInt(opts Options, key string) (int, bool) {
	f, ok := OptionFloat(opts, key)
	if !ok {
		return 0, false
	}
	return toInt(f)
}
