package geofence

import "errors"

var (
	ErrGeoFenceNotFound = errors.New("geofence not found")

	// ErrNoActiveFence is returned when a WFH capture is requested but no
	// active fence exists to substitute coordinates from.
	ErrNoActiveFence = errors.New("no active geofence configured")
)
