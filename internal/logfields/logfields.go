package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLocale     = "locale"
	KeyCategory   = "category"
	KeyPath       = "path"
	KeyPage       = "page"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Locale(tag string) slog.Attr {
	if tag == "" {
		tag = "root"
	}
	return slog.String(KeyLocale, tag)
}
func Category(key string) slog.Attr { return slog.String(KeyCategory, key) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Page(id string) slog.Attr      { return slog.String(KeyPage, id) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func BuildID(id string) slog.Attr   { return slog.String(KeyBuildID, id) }
func URL(u string) slog.Attr        { return slog.String(KeyURL, u) }

// Duration reports d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
