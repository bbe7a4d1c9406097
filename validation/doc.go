// Package validation checks request input and reports failures as 400
// AppErrors listing every offending field.
//
// Struct tags cover request bodies:
//
//	type registerRequest struct {
//	    HospitalID string  `json:"hospitalId" validate:"required"`
//	    Lat        float64 `json:"lat" validate:"latitude"`
//	}
//	if err := validation.Validate(req); err != nil { ... }
//
// The chainable Validator covers values that are not structs:
//
//	err := validation.New().Phone("to", to).Coordinates("location", lat, lng).Validate()
package validation
