// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/mantra/internal/models"
)

// CodeValidation is the APIError code for constraint failures.
const CodeValidation = "VALIDATION_ERROR"

var (
	instance     *validator.Validate
	instanceOnce sync.Once
)

// FieldError is one failed constraint. Field is the json name when the
// struct field has one.
type FieldError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"-"`
	Message string      `json:"message"`
}

// Errors lists every failed constraint of one request, in field order.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// ToAPIError renders the failures as the HTTP error payload. A single
// failure keeps its own message; several are prefixed by field.
func (e Errors) ToAPIError() *models.APIError {
	switch len(e) {
	case 0:
		return &models.APIError{Code: CodeValidation, Message: "validation failed"}
	case 1:
		return &models.APIError{
			Code:    CodeValidation,
			Message: e[0].Message,
			Details: map[string]interface{}{"field": e[0].Field, "tag": e[0].Tag},
		}
	}

	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return &models.APIError{
		Code:    CodeValidation,
		Message: strings.Join(parts, "; "),
		Details: map[string]interface{}{"fields": []FieldError(e)},
	}
}

// Validator returns the shared validator with json field names and the
// content_kind tag registered.
func Validator() *validator.Validate {
	instanceOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)

		// Registration only fails for an empty tag or a nil func.
		_ = v.RegisterValidation("content_kind", func(fl validator.FieldLevel) bool {
			_, err := models.ParseContentKind(fl.Field().String())
			return err == nil
		})
		instance = v
	})
	return instance
}

// ValidateStruct checks s against its validate tags. It returns nil when s
// is valid.
func ValidateStruct(s interface{}) Errors {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "request", Tag: "struct", Message: err.Error()}}
	}

	out := make(Errors, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return out
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// message renders fe as a sentence about the field.
func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "content_kind":
		return field + " must be one of: post, event, merchandise, club"
	case "eq=actors|content_kind":
		return field + " must be actors or one of: post, event, merchandise, club"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit(fe.Kind()))
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit(fe.Kind()))
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

func unit(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	}
	return ""
}
