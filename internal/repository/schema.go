package repository

import (
	"asset-registry-api/internal/model"
	"asset-registry-api/pkg/validation"
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldViolation is one failed storage rule.
type FieldViolation struct {
	Path    string
	Message string
}

// SchemaError reports every field of a record that violates the storage
// schema. Its text follows the "<Entity> validation failed: <path>: <msg>"
// form clients already parse.
type SchemaError struct {
	Entity     string
	Violations []FieldViolation
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Path + ": " + v.Message
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, ", "))
}

// SchemaValidator checks records against their storage rules before they are
// written.
type SchemaValidator struct {
	validate *validator.Validate
}

// NewSchemaValidator registers the record rules on a fresh validator.
func NewSchemaValidator() *SchemaValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Dates validate as their wire string so "required" rejects the zero date.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(model.Date); ok {
			return d.String()
		}
		return nil
	}, model.Date{})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "emailshape", matches(validation.EmailPattern))
	mustRegister(v, "phone", matches(validation.PhonePattern))
	mustRegister(v, "pincode", matches(validation.PincodePattern))
	mustRegister(v, "bankaccount", matches(validation.BankAccountPattern))
	mustRegister(v, "ifsc", matches(validation.IFSCPattern))

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		e, ok := sl.Current().Interface().(model.Employee)
		if !ok {
			return
		}
		if n, assigned := e.System.SystemNumber(); assigned && n == "" {
			sl.ReportError(n, "systemNumber", "System", "required", "")
		}
	}, model.Employee{})

	return &SchemaValidator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Check validates record and returns a *SchemaError naming every failing
// path, or nil.
func (s *SchemaValidator) Check(entity string, record interface{}) error {
	err := s.validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s validation failed: %w", entity, err)
	}

	schemaErr := &SchemaError{Entity: entity}
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		schemaErr.Violations = append(schemaErr.Violations, FieldViolation{
			Path:    path,
			Message: violationMessage(path, fe),
		})
	}
	return schemaErr
}

func violationMessage(path string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("Path `%s` is required.", path)
	case "gte":
		return fmt.Sprintf("Path `%s` (%v) is less than minimum allowed value (%s).", path, fe.Value(), fe.Param())
	case "lte":
		return fmt.Sprintf("Path `%s` (%v) is more than maximum allowed value (%s).", path, fe.Value(), fe.Param())
	case "min":
		return fmt.Sprintf("Path `%s` (`%v`) is shorter than the minimum allowed length (%s).", path, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("Validator failed for path `%s` with value `%v`", path, fe.Value())
	}
}

// validatedStore runs the schema check before every write.
type validatedStore[T any] struct {
	Store[T]
	entity string
	schema *SchemaValidator
}

// Validated wraps next so that Create and Replace reject records that fail
// the storage schema. entity is the display name used in error text.
func Validated[T any](entity string, next Store[T], schema *SchemaValidator) Store[T] {
	return &validatedStore[T]{Store: next, entity: entity, schema: schema}
}

func (s *validatedStore[T]) Create(ctx context.Context, record T) (*T, error) {
	if err := s.schema.Check(s.entity, &record); err != nil {
		return nil, err
	}
	return s.Store.Create(ctx, record)
}

// Replace reports an unknown id as ErrRecordNotFound even when the record is
// also invalid.
func (s *validatedStore[T]) Replace(ctx context.Context, id uuid.UUID, record T) (*T, error) {
	if err := s.schema.Check(s.entity, &record); err != nil {
		if _, getErr := s.Store.Get(ctx, id); errors.Is(getErr, ErrRecordNotFound) {
			return nil, getErr
		}
		return nil, err
	}
	return s.Store.Replace(ctx, id, record)
}
