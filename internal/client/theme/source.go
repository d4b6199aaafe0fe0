package theme

import (
	"os"
	"strings"
)

// Scheme is the OS-level appearance a "system" theme resolves against.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// Source reports the current OS color scheme. The store polls it while the
// watcher runs, so an implementation only needs a cheap synchronous probe.
// Desktop integrations (D-Bus settings portal, AppKit, registry) can satisfy
// this interface; the defaults below keep the core free of platform code.
type Source interface {
	Current() Scheme
}

// StaticSource always reports the same scheme.
type StaticSource struct {
	Scheme Scheme
}

func (s StaticSource) Current() Scheme { return s.Scheme }

// EnvSource reads the scheme from an environment variable on every probe.
// Anything other than "dark" (case-insensitive) counts as light.
type EnvSource struct {
	// Key is the variable to read; empty means DefaultEnvKey.
	Key string
}

// DefaultEnvKey is the variable consulted when EnvSource.Key is empty.
const DefaultEnvKey = "LIFEBOARD_COLOR_SCHEME"

func (s EnvSource) Current() Scheme {
	key := s.Key
	if key == "" {
		key = DefaultEnvKey
	}
	if strings.EqualFold(os.Getenv(key), string(SchemeDark)) {
		return SchemeDark
	}
	return SchemeLight
}
