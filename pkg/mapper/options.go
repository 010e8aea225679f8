package mapper

import (
	"context"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/driver"
	internalopts "github.com/arkieguy/RAK4631-Helium-Mapper/internal/options"
)

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// Format selects the payload layout: "v1"/"legacy" or "v2"/"packed".
	// Empty selects v2.
	Format string
	// Strict rejects payloads shorter than MinLength instead of zero-filling.
	Strict bool
}

func (opts DecodeOptions) toInternal(ctx context.Context) (context.Context, driver.Detection, error) {
	format, err := internalopts.ParseFormat(opts.Format)
	if err != nil {
		return ctx, driver.Detection{}, err
	}
	ctx = internalopts.WithPolicy(ctx, internalopts.Policy{Strict: opts.Strict})
	return ctx, driver.Detection{Format: format}, nil
}
