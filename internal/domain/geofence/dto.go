package geofence

import (
	"github.com/hadirly/hadir-backend-go/internal/pkg/validator"
)

type CreateGeoFenceRequest struct {
	Name            string  `json:"name"`
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	RadiusMeters    float64 `json:"radius_meters"`
}

func (r *CreateGeoFenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidLatitude(r.CenterLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_latitude",
			Message: "center_latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.CenterLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_longitude",
			Message: "center_longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateGeoFenceRequest struct {
	ID              string   `json:"-"`
	Name            *string  `json:"name,omitempty"`
	CenterLatitude  *float64 `json:"center_latitude,omitempty"`
	CenterLongitude *float64 `json:"center_longitude,omitempty"`
	RadiusMeters    *float64 `json:"radius_meters,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

func (r *UpdateGeoFenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.CenterLatitude != nil && !validator.IsValidLatitude(*r.CenterLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_latitude",
			Message: "center_latitude must be between -90 and 90",
		})
	}

	if r.CenterLongitude != nil && !validator.IsValidLongitude(*r.CenterLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_longitude",
			Message: "center_longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GeoFenceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	RadiusMeters    float64 `json:"radius_meters"`
	Active          bool    `json:"active"`
}

// Capture is a location fix accepted for an attendance record, either the
// validated device fix or the WFH substitution.
type Capture struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
	WithinFence    bool
	FenceID        *string
}
