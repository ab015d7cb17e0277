// Package validation checks action payloads before they reach the network.
//
// Request structs are validated with struct tags:
//
//	type SendEventRequest struct {
//	    ChatID string `json:"chat_id" validate:"required"`
//	    Event  Event  `json:"event"`
//	}
//	err := validation.Validate(req)
//
// Loose values such as query-string ids go through a Validator:
//
//	err := validation.New().Required("organization_id", id).Validate()
//
// Both return *errors.AppError values recognized by errors.IsValidation.
package validation
