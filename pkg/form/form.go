// Package form holds the editable state of an employee or system form. A Form
// is immutable; every change returns a new value.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"asset-registry-api/internal/model"
	"asset-registry-api/pkg/validation"
)

// Form is a snapshot of raw field values keyed by schema path.
type Form struct {
	schema *validation.Schema
	values map[string]string
}

// NewEmployee returns an empty employee form with the record defaults applied.
func NewEmployee() Form {
	return newForm(validation.EmployeeSchema, map[string]string{
		"isActive":             "true",
		"isStayingCompanyRoom": "false",
		"isUsingCompanySystem": "false",
	})
}

// NewSystem returns an empty system form with the record defaults applied.
func NewSystem() Form {
	return newForm(validation.SystemSchema, map[string]string{
		"isActive": "true",
	})
}

func newForm(schema *validation.Schema, defaults map[string]string) Form {
	values := make(map[string]string, len(schema.Paths()))
	for _, p := range schema.Paths() {
		values[p] = defaults[p]
	}
	return Form{schema: schema, values: values}
}

// Schema returns the schema the form is built on.
func (f Form) Schema() *validation.Schema {
	return f.schema
}

// Set returns a copy of the form with path set to value.
func (f Form) Set(path, value string) (Form, error) {
	if f.schema == nil || !f.schema.Has(path) {
		return f, fmt.Errorf("unknown field %q", path)
	}
	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	values[path] = value
	return Form{schema: f.schema, values: values}, nil
}

// MustSet is Set for paths known at compile time.
func (f Form) MustSet(path, value string) Form {
	next, err := f.Set(path, value)
	if err != nil {
		panic(err)
	}
	return next
}

// Value returns the raw value of path.
func (f Form) Value(path string) string {
	return f.values[path]
}

// Values returns a copy of every field value.
func (f Form) Values() map[string]string {
	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	return values
}

// FieldError validates a single field, as done when the field loses focus.
func (f Form) FieldError(path string) string {
	return validation.ValidateField(f.schema, path, f.values[path])
}

// Validate validates the whole form, as done on submit.
func (f Form) Validate() validation.Errors {
	return validation.ValidateForm(f.schema, f.values)
}

// Employee converts an employee form into a record.
func (f Form) Employee() (model.Employee, error) {
	if f.schema != validation.EmployeeSchema {
		return model.Employee{}, fmt.Errorf("form is not an employee form")
	}
	e := model.Employee{}
	if err := apply(f, employeeBindings, &e); err != nil {
		return model.Employee{}, err
	}

	using, err := parseBool(f.values["isUsingCompanySystem"])
	if err != nil {
		return model.Employee{}, fmt.Errorf("isUsingCompanySystem: %w", err)
	}
	if using {
		e.System = model.AssignedTo(f.values["systemNumber"])
	} else {
		e.System = model.Unassigned()
	}
	return e, nil
}

// System converts a system form into a record.
func (f Form) System() (model.System, error) {
	if f.schema != validation.SystemSchema {
		return model.System{}, fmt.Errorf("form is not a system form")
	}
	s := model.System{}
	if err := apply(f, systemBindings, &s); err != nil {
		return model.System{}, err
	}
	return s, nil
}

// FromEmployee seeds an edit form with the values of e.
func FromEmployee(e model.Employee) Form {
	return fill(validation.EmployeeSchema, employeeBindings, &e)
}

// FromSystem seeds an edit form with the values of s.
func FromSystem(s model.System) Form {
	return fill(validation.SystemSchema, systemBindings, &s)
}

func apply[T any](f Form, bindings map[string]binding[T], rec *T) error {
	for _, p := range f.schema.Paths() {
		b, ok := bindings[p]
		if !ok || b.set == nil {
			continue
		}
		if err := b.set(rec, f.values[p]); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func fill[T any](schema *validation.Schema, bindings map[string]binding[T], rec *T) Form {
	values := make(map[string]string, len(schema.Paths()))
	for _, p := range schema.Paths() {
		if b, ok := bindings[p]; ok {
			values[p] = b.get(rec)
		}
	}
	return Form{schema: schema, values: values}
}

func parseBool(v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%q is not a boolean", v)
	}
	return b, nil
}
