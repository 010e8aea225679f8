package driver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/frame"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/options"
	"github.com/arkieguy/RAK4631-Helium-Mapper/internal/reading"
)

// Detection contains the information required to pick a driver. The uplink
// port is deliberately absent: it is reserved for per-port layout dispatch.
type Detection struct {
	Format options.Format
}

// Driver decodes uplinks once selected.
type Driver interface {
	Name() string
	Process(context.Context, *frame.Uplink) (reading.SensorReading, error)
}

var (
	regMu    sync.RWMutex
	registry []registeredDriver
)

type registeredDriver struct {
	detect Detection
	driver Driver
}

// Register stores a driver/detection pair in memory.
func Register(det Detection, drv Driver) {
	regMu.Lock()
	defer regMu.Unlock()
	registry = append(registry, registeredDriver{detect: det, driver: drv})
}

// Lookup returns the first driver that matches the detection key.
func Lookup(det Detection) (Driver, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, rd := range registry {
		if rd.detect.Format == det.Format {
			return rd.driver, nil
		}
	}
	return nil, fmt.Errorf("driver not found for format %q (registered: %s)", det.Format, strings.Join(formatsLocked(), ", "))
}

// Formats lists the registered format versions in sorted order.
func Formats() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return formatsLocked()
}

func formatsLocked() []string {
	names := make([]string, 0, len(registry))
	for _, rd := range registry {
		names = append(names, string(rd.detect.Format))
	}
	sort.Strings(names)
	return names
}
