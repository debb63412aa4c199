package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"asset-registry-api/internal/model"
	"asset-registry-api/pkg/validation"
)

// binding moves one form path in and out of a record. A nil set means the
// path is handled by the record conversion itself.
type binding[T any] struct {
	get func(*T) string
	set func(*T, string) error
}

func text[T any](field func(*T) *string) binding[T] {
	return binding[T]{
		get: func(r *T) string { return *field(r) },
		set: func(r *T, v string) error {
			*field(r) = v
			return nil
		},
	}
}

func integer[T any](field func(*T) *int) binding[T] {
	return binding[T]{
		get: func(r *T) string { return strconv.Itoa(*field(r)) },
		set: func(r *T, v string) error {
			if strings.TrimSpace(v) == "" {
				*field(r) = 0
				return nil
			}
			n, ok := validation.ParseNumber(v)
			if !ok {
				return fmt.Errorf("%q is not a number", v)
			}
			if n != math.Trunc(n) || math.IsInf(n, 0) {
				return fmt.Errorf("%q is not a whole number", v)
			}
			*field(r) = int(n)
			return nil
		},
	}
}

func decimal[T any](field func(*T) *float64) binding[T] {
	return binding[T]{
		get: func(r *T) string { return strconv.FormatFloat(*field(r), 'f', -1, 64) },
		set: func(r *T, v string) error {
			if strings.TrimSpace(v) == "" {
				*field(r) = 0
				return nil
			}
			n, ok := validation.ParseNumber(v)
			if !ok {
				return fmt.Errorf("%q is not a number", v)
			}
			*field(r) = n
			return nil
		},
	}
}

func boolean[T any](field func(*T) *bool) binding[T] {
	return binding[T]{
		get: func(r *T) string { return strconv.FormatBool(*field(r)) },
		set: func(r *T, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			*field(r) = b
			return nil
		},
	}
}

func date[T any](field func(*T) *model.Date) binding[T] {
	return binding[T]{
		get: func(r *T) string { return field(r).String() },
		set: func(r *T, v string) error {
			d, err := model.ParseDate(v)
			if err != nil {
				return err
			}
			*field(r) = d
			return nil
		},
	}
}

type employeeBinding = binding[model.Employee]

var employeeBindings = map[string]employeeBinding{
	"name":          text(func(e *model.Employee) *string { return &e.Name }),
	"uniqueId":      text(func(e *model.Employee) *string { return &e.UniqueID }),
	"age":           integer(func(e *model.Employee) *int { return &e.Age }),
	"email":         text(func(e *model.Employee) *string { return &e.Email }),
	"qualification": text(func(e *model.Employee) *string { return &e.Qualification }),
	"role":          text(func(e *model.Employee) *string { return &e.Role }),
	"department":    text(func(e *model.Employee) *string { return &e.Department }),
	"joiningDate":   date(func(e *model.Employee) *model.Date { return &e.JoiningDate }),
	"experience":    text(func(e *model.Employee) *string { return &e.Experience }),
	"phoneNumber":   text(func(e *model.Employee) *string { return &e.PhoneNumber }),
	"alternatePhoneNumber": text(func(e *model.Employee) *string {
		return &e.AlternatePhoneNumber
	}),
	"salary":     decimal(func(e *model.Employee) *float64 { return &e.Salary }),
	"bloodGroup": text(func(e *model.Employee) *string { return &e.BloodGroup }),
	"skills":     text(func(e *model.Employee) *string { return &e.Skills }),
	"isActive":   boolean(func(e *model.Employee) *bool { return &e.IsActive }),
	"isStayingCompanyRoom": boolean(func(e *model.Employee) *bool {
		return &e.IsStayingCompanyRoom
	}),
	"isUsingCompanySystem": {
		get: func(e *model.Employee) string { return strconv.FormatBool(e.System.IsAssigned()) },
	},
	"systemNumber": {
		get: func(e *model.Employee) string {
			n, _ := e.System.SystemNumber()
			return n
		},
	},
	"profilePicture":   text(func(e *model.Employee) *string { return &e.ProfilePicture }),
	"resumeImage":      text(func(e *model.Employee) *string { return &e.ResumeImage }),
	"certificateImage": text(func(e *model.Employee) *string { return &e.CertificateImage }),

	"address.street":   text(func(e *model.Employee) *string { return &e.Address.Street }),
	"address.district": text(func(e *model.Employee) *string { return &e.Address.District }),
	"address.area":     text(func(e *model.Employee) *string { return &e.Address.Area }),
	"address.landmark": text(func(e *model.Employee) *string { return &e.Address.Landmark }),
	"address.state":    text(func(e *model.Employee) *string { return &e.Address.State }),
	"address.pincode":  text(func(e *model.Employee) *string { return &e.Address.Pincode }),

	"emergencyContact.name": text(func(e *model.Employee) *string {
		return &e.EmergencyContact.Name
	}),
	"emergencyContact.relationship": text(func(e *model.Employee) *string {
		return &e.EmergencyContact.Relationship
	}),
	"emergencyContact.phoneNumber": text(func(e *model.Employee) *string {
		return &e.EmergencyContact.PhoneNumber
	}),
	"emergencyContact.alternatePhoneNumber": text(func(e *model.Employee) *string {
		return &e.EmergencyContact.AlternatePhoneNumber
	}),

	"bankDetails.bankName": text(func(e *model.Employee) *string {
		return &e.BankDetails.BankName
	}),
	"bankDetails.bankAccountNumber": text(func(e *model.Employee) *string {
		return &e.BankDetails.BankAccountNumber
	}),
	"bankDetails.IFSC_Code": text(func(e *model.Employee) *string {
		return &e.BankDetails.IFSCCode
	}),
	"bankDetails.gpay":     text(func(e *model.Employee) *string { return &e.BankDetails.GPay }),
	"bankDetails.phonepay": text(func(e *model.Employee) *string { return &e.BankDetails.PhonePe }),
	"bankDetails.upiId":    text(func(e *model.Employee) *string { return &e.BankDetails.UPIID }),
}

var systemBindings = map[string]binding[model.System]{
	"systemName":         text(func(s *model.System) *string { return &s.SystemName }),
	"systemNumber":       text(func(s *model.System) *string { return &s.SystemNumber }),
	"invoiceNo":          text(func(s *model.System) *string { return &s.InvoiceNo }),
	"invoiceDate":        date(func(s *model.System) *model.Date { return &s.InvoiceDate }),
	"warranty":           text(func(s *model.System) *string { return &s.Warranty }),
	"warrantyExpiryDate": date(func(s *model.System) *model.Date { return &s.WarrantyExpiryDate }),
	"isActive":           boolean(func(s *model.System) *bool { return &s.IsActive }),
	"processor":          text(func(s *model.System) *string { return &s.Processor }),
	"motherboard":        text(func(s *model.System) *string { return &s.Motherboard }),
	"ram":                text(func(s *model.System) *string { return &s.RAM }),
	"Storage":            text(func(s *model.System) *string { return &s.Storage }),
	"graphicsCard":       text(func(s *model.System) *string { return &s.GraphicsCard }),
	"operatingSystem":    text(func(s *model.System) *string { return &s.OperatingSystem }),
	"antivirus":          text(func(s *model.System) *string { return &s.Antivirus }),
	"cabinet":            text(func(s *model.System) *string { return &s.Cabinet }),
	"monitor":            text(func(s *model.System) *string { return &s.Monitor }),
	"keyboard":           text(func(s *model.System) *string { return &s.Keyboard }),
	"mouse":              text(func(s *model.System) *string { return &s.Mouse }),
	"password":           text(func(s *model.System) *string { return &s.Password }),
	"wifi_Dongle":        text(func(s *model.System) *string { return &s.WifiDongle }),

	"serialNo.processer":   text(func(s *model.System) *string { return &s.SerialNo.Processor }),
	"serialNo.motherboard": text(func(s *model.System) *string { return &s.SerialNo.Motherboard }),
	"serialNo.storage":     text(func(s *model.System) *string { return &s.SerialNo.Storage }),
	"serialNo.cabinet":     text(func(s *model.System) *string { return &s.SerialNo.Cabinet }),
	"serialNo.display":     text(func(s *model.System) *string { return &s.SerialNo.Display }),
	"serialNo.keyboard":    text(func(s *model.System) *string { return &s.SerialNo.Keyboard }),
	"serialNo.mouse":       text(func(s *model.System) *string { return &s.SerialNo.Mouse }),
}
