package entities

import (
	"fmt"
	"math"
)

// Route is an IPv4 route as handed to the kernel. Duplicates are not detected here.
type Route struct {
	Destination IPv4Prefix
	Gateway     IPv4Address
	Metric      int
	Device      InterfaceName
}

// Validate checks the destination prefix, metric and device
func (r Route) Validate() error {
	if err := r.Destination.Validate(); err != nil {
		return err
	}
	// the kernel stores the metric as a u32
	if r.Metric < 0 || int64(r.Metric) > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrInvalidMetric, r.Metric)
	}
	if r.Device.IsZero() {
		return ErrInvalidInterfaceName
	}
	return nil
}

// String renders the route the way route(8) would be asked for it
func (r Route) String() string {
	return fmt.Sprintf("%s gw %s metric %d dev %s", r.Destination, r.Gateway, r.Metric, r.Device)
}
