// Package validation provides input validation for scorer records, tool
// configuration and custom template definitions.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as
// *errors.AppError values carrying a per-field breakdown under the
// "fields" detail key.
//
// # Struct Tag Validation
//
//	type Label struct {
//	    Span     []int   `json:"span" validate:"required,len=2"`
//	    EntityID *string `json:"entity_id" validate:"required"`
//	}
//	err := validation.Validate(label)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("user_template", tpl).Contains("user_template", tpl, "{prompt}")
//	if v.HasErrors() { ... v.Summary() ... }
package validation
