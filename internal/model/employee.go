package model

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"asset-registry-api/pkg/validation"

	"github.com/google/uuid"
)

// Address is the employee's postal address.
type Address struct {
	Street   string `json:"street"`
	District string `json:"district"`
	Area     string `json:"area"`
	Landmark string `json:"landmark"`
	State    string `json:"state"`
	Pincode  string `json:"pincode" validate:"omitempty,pincode"`
}

// EmergencyContact is the person to call on the employee's behalf.
type EmergencyContact struct {
	Name                 string `json:"name"`
	Relationship         string `json:"relationship"`
	PhoneNumber          string `json:"phoneNumber" validate:"required,phone"`
	AlternatePhoneNumber string `json:"alternatePhoneNumber"`
}

// BankDetails holds salary payout information.
type BankDetails struct {
	BankName          string `json:"bankName"`
	BankAccountNumber string `json:"bankAccountNumber" validate:"omitempty,bankaccount"`
	IFSCCode          string `json:"IFSC_Code" validate:"omitempty,ifsc"`
	GPay              string `json:"gpay"`
	PhonePe           string `json:"phonepay"`
	UPIID             string `json:"upiId"`
}

// SystemAssignment records whether an employee works on a company system and,
// if so, which one. The system number only exists for the assigned variant.
type SystemAssignment struct {
	systemNumber string
	assigned     bool
}

// Unassigned is the assignment of an employee without a company system.
func Unassigned() SystemAssignment {
	return SystemAssignment{}
}

// AssignedTo is the assignment of an employee using the given system.
func AssignedTo(systemNumber string) SystemAssignment {
	return SystemAssignment{systemNumber: strings.TrimSpace(systemNumber), assigned: true}
}

// IsAssigned reports whether the employee uses a company system.
func (a SystemAssignment) IsAssigned() bool {
	return a.assigned
}

// SystemNumber returns the referenced system number and whether one is assigned.
func (a SystemAssignment) SystemNumber() (string, bool) {
	return a.systemNumber, a.assigned
}

// Employee is a persisted employee record.
type Employee struct {
	ID                   uuid.UUID        `json:"_id"`
	Name                 string           `json:"name" validate:"notblank,min=3"`
	UniqueID             string           `json:"uniqueId" validate:"notblank"`
	Age                  int              `json:"age" validate:"required,gte=18,lte=60"`
	Email                string           `json:"email" validate:"notblank,emailshape"`
	Qualification        string           `json:"qualification" validate:"notblank"`
	Role                 string           `json:"role" validate:"notblank"`
	Department           string           `json:"department" validate:"notblank"`
	JoiningDate          Date             `json:"joiningDate" validate:"required"`
	Experience           string           `json:"experience"`
	IsActive             bool             `json:"isActive"`
	Skills               string           `json:"skills"`
	Address              Address          `json:"address"`
	ProfilePicture       string           `json:"profilePicture"`
	ResumeImage          string           `json:"resumeImage"`
	CertificateImage     string           `json:"certificateImage"`
	IsStayingCompanyRoom bool             `json:"isStayingCompanyRoom"`
	System               SystemAssignment `json:"-"`
	PhoneNumber          string           `json:"phoneNumber" validate:"required,phone"`
	AlternatePhoneNumber string           `json:"alternatePhoneNumber" validate:"omitempty,phone"`
	EmergencyContact     EmergencyContact `json:"emergencyContact"`
	BloodGroup           string           `json:"bloodGroup"`
	BankDetails          BankDetails      `json:"bankDetails"`
	Salary               float64          `json:"salary" validate:"gte=0"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

func (e *Employee) GetID() uuid.UUID {
	return e.ID
}

func (e *Employee) SetID(id uuid.UUID) {
	e.ID = id
}

func (e *Employee) GetCreatedAt() time.Time {
	return e.CreatedAt
}

func (e *Employee) SetTimestamps(createdAt, updatedAt time.Time) {
	e.CreatedAt = createdAt
	e.UpdatedAt = updatedAt
}

type employeeAlias Employee

// numeric decodes a JSON number or a string holding one. Form inputs send
// age and salary as strings.
type numeric float64

func (n *numeric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) == 0 || data[0] != '"' {
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*n = numeric(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*n = 0
		return nil
	}
	f, ok := validation.ParseNumber(s)
	if !ok || math.IsInf(f, 0) {
		return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(float64(0))}
	}
	*n = numeric(f)
	return nil
}

// employeeWire flattens SystemAssignment into the two fields clients send.
type employeeWire struct {
	*employeeAlias
	Age                  numeric `json:"age"`
	Salary               numeric `json:"salary"`
	IsUsingCompanySystem bool    `json:"isUsingCompanySystem"`
	SystemNumber         string  `json:"systemNumber,omitempty"`
}

func (e Employee) MarshalJSON() ([]byte, error) {
	alias := employeeAlias(e)
	wire := employeeWire{
		employeeAlias: &alias,
		Age:           numeric(e.Age),
		Salary:        numeric(e.Salary),
	}
	wire.SystemNumber, wire.IsUsingCompanySystem = e.System.SystemNumber()
	return json.Marshal(wire)
}

// UnmarshalJSON applies the record defaults (isActive=true) and drops a
// systemNumber sent without isUsingCompanySystem. Age must be a whole number.
func (e *Employee) UnmarshalJSON(data []byte) error {
	*e = Employee{IsActive: true}
	wire := employeeWire{employeeAlias: (*employeeAlias)(e)}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	age := float64(wire.Age)
	if age != math.Trunc(age) {
		return &json.UnmarshalTypeError{
			Value: "number " + strconv.FormatFloat(age, 'f', -1, 64),
			Type:  reflect.TypeOf(e.Age),
			Field: "age",
		}
	}
	e.Age = int(age)
	e.Salary = float64(wire.Salary)
	if wire.IsUsingCompanySystem {
		e.System = AssignedTo(wire.SystemNumber)
	} else {
		e.System = Unassigned()
	}
	return nil
}
