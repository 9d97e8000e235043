package config

import (
	"time"
)

// Option keys as they appear in config files and Resolve overlays
const (
	KeyDataURLAttribute = "data-url-attribute"
	KeyContainerClass   = "container-class"
	KeyItemClass        = "item-class"
	KeyItemActiveClass  = "item-active-class"
	KeyTermClass        = "term-class"
	KeySuggestClass     = "suggest-class"
	KeyDelimiterText    = "delimiter-text"
	KeyDelimiterClass   = "delimiter-class"
	KeyTextClass        = "text-class"
	KeyTermMinLength    = "term-min-length"
	KeyCacheSize        = "cache-size"
	KeyTimeout          = "timeout"

	// older name for data-url-attribute
	keyDataURLLegacy = "data-url"
)

// Options is the resolved widget configuration. It is not modified after Resolve.
type Options struct {
	DataURLAttribute string
	ContainerClass   string
	ItemClass        string
	ItemActiveClass  string
	TermClass        string
	SuggestClass     string
	DelimiterText    string
	DelimiterClass   string
	TextClass        string
	TermMinLength    int

	// CacheSize bounds the result cache with LRU eviction; 0 keeps every entry
	CacheSize int
	// Timeout bounds a single fetch; 0 leaves it to the transport
	Timeout time.Duration

	// Extra holds keys Resolve did not recognise
	Extra map[string]any
}

// DefaultOptions returns the built-in option table
func DefaultOptions() Options {
	return Options{
		DataURLAttribute: "suggestableUrl",
		ContainerClass:   "suggestable-container",
		ItemClass:        "suggestable-item",
		ItemActiveClass:  "suggestable-item-active",
		TermClass:        "suggestable-term",
		SuggestClass:     "suggestable-suggest",
		DelimiterText:    " — ",
		DelimiterClass:   "suggestable-delimiter",
		TextClass:        "suggestable-text",
		TermMinLength:    3,
		Extra:            map[string]any{},
	}
}

// Resolve overlays user supplied values onto DefaultOptions.
// Values are not validated; a value of the wrong type leaves the default in place.
func Resolve(overrides map[string]any) Options {
	opts := DefaultOptions()
	for k, v := range overrides {
		switch k {
		case KeyDataURLAttribute, keyDataURLLegacy:
			setString(&opts.DataURLAttribute, v)
		case KeyContainerClass:
			setString(&opts.ContainerClass, v)
		case KeyItemClass:
			setString(&opts.ItemClass, v)
		case KeyItemActiveClass:
			setString(&opts.ItemActiveClass, v)
		case KeyTermClass:
			setString(&opts.TermClass, v)
		case KeySuggestClass:
			setString(&opts.SuggestClass, v)
		case KeyDelimiterText:
			setString(&opts.DelimiterText, v)
		case KeyDelimiterClass:
			setString(&opts.DelimiterClass, v)
		case KeyTextClass:
			setString(&opts.TextClass, v)
		case KeyTermMinLength:
			setInt(&opts.TermMinLength, v)
		case KeyCacheSize:
			setInt(&opts.CacheSize, v)
		case KeyTimeout:
			setDuration(&opts.Timeout, v)
		default:
			opts.Extra[k] = v
		}
	}
	return opts
}

func setString(dst *string, v any) {
	if s, ok := v.(string); ok {
		*dst = s
	}
}

func setInt(dst *int, v any) {
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case int32:
		*dst = int(n)
	case uint64:
		*dst = int(n)
	case float64:
		*dst = int(n)
	}
}

// setDuration accepts a duration, a Go duration string, or milliseconds
func setDuration(dst *time.Duration, v any) {
	switch d := v.(type) {
	case time.Duration:
		*dst = d
	case string:
		if parsed, err := time.ParseDuration(d); err == nil {
			*dst = parsed
		}
	default:
		var ms int
		setInt(&ms, v)
		if ms > 0 {
			*dst = time.Duration(ms) * time.Millisecond
		}
	}
}
