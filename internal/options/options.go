package options

import (
	"context"
	"fmt"
	"strings"
)

// Format names a payload layout version.
type Format string

const (
	// FormatV1 is the legacy inline-shift layout that also reports the raw
	// bytes at offsets 10..15.
	FormatV1 Format = "v1"
	// FormatV2 is the packed layout decoded through the shared integer helper.
	FormatV2 Format = "v2"

	DefaultFormat = FormatV2
)

var formatAliases = map[string]Format{
	"v1":     FormatV1,
	"legacy": FormatV1,
	"v2":     FormatV2,
	"packed": FormatV2,
}

// ParseFormat resolves a format name or alias. Empty input selects the default.
func ParseFormat(input string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(input))
	if name == "" {
		return DefaultFormat, nil
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown payload format %q (want v1|legacy|v2|packed)", input)
}

// Policy controls how drivers treat short payloads.
type Policy struct {
	Strict bool
}

type contextKey struct{}

// WithPolicy stores the decode policy inside the context.
func WithPolicy(ctx context.Context, p Policy) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PolicyFrom retrieves the decode policy from context. The zero Policy
// (permissive zero-fill) is returned when none was set.
func PolicyFrom(ctx context.Context) Policy {
	if p, ok := ctx.Value(contextKey{}).(Policy); ok {
		return p
	}
	return Policy{}
}
