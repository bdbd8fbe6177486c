package models

import (
	"fmt"
	"time"
)

// CustomerKind discriminates the customer variants.
type CustomerKind string

const (
	KindIndividual CustomerKind = "individual"
	KindCompany    CustomerKind = "company"
)

// Customer represents a bank customer, either an individual or a company.
// The Kind field selects which variant-specific fields are meaningful.
type Customer struct {
	ID           string       `json:"id"`
	Kind         CustomerKind `json:"kind"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	RegisteredAt time.Time    `json:"registeredAt"`

	// Individual fields.
	FirstName       string    `json:"firstName,omitempty"`
	Surname         string    `json:"surname,omitempty"`
	IDNumber        string    `json:"idNumber,omitempty"`
	DateOfBirth     time.Time `json:"dateOfBirth,omitempty"`
	Employed        bool      `json:"employed,omitempty"`
	EmployerName    string    `json:"employerName,omitempty"`
	EmployerAddress string    `json:"employerAddress,omitempty"`

	// Company fields.
	CompanyName        string `json:"companyName,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	ContactPerson      string `json:"contactPerson,omitempty"`
}

// IndividualParams carries the fields needed to register an individual customer.
type IndividualParams struct {
	FirstName       string
	Surname         string
	Address         string
	Phone           string
	Email           string
	IDNumber        string
	DateOfBirth     time.Time
	Employed        bool
	EmployerName    string
	EmployerAddress string
}

// CompanyParams carries the fields needed to register a company customer.
type CompanyParams struct {
	CompanyName        string
	RegistrationNumber string
	Address            string
	Phone              string
	Email              string
	ContactPerson      string
}

// NewIndividual validates p and builds an individual customer. The ID is left
// empty; the bank assigns it on registration.
func NewIndividual(p IndividualParams) (Customer, error) {
	if p.FirstName == "" {
		return Customer{}, fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if p.Surname == "" {
		return Customer{}, fmt.Errorf("%w: surname is required", ErrValidation)
	}
	if p.Address == "" {
		return Customer{}, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if p.IDNumber == "" {
		return Customer{}, fmt.Errorf("%w: id number is required", ErrValidation)
	}
	if p.Employed && p.EmployerName == "" {
		return Customer{}, fmt.Errorf("%w: employer name is required for employed customers", ErrValidation)
	}
	return Customer{
		Kind:            KindIndividual,
		Address:         p.Address,
		Phone:           p.Phone,
		Email:           p.Email,
		RegisteredAt:    time.Now(),
		FirstName:       p.FirstName,
		Surname:         p.Surname,
		IDNumber:        p.IDNumber,
		DateOfBirth:     p.DateOfBirth,
		Employed:        p.Employed,
		EmployerName:    p.EmployerName,
		EmployerAddress: p.EmployerAddress,
	}, nil
}

// NewCompany validates p and builds a company customer. The company's own
// address doubles as the customer address.
func NewCompany(p CompanyParams) (Customer, error) {
	if p.CompanyName == "" {
		return Customer{}, fmt.Errorf("%w: company name is required", ErrValidation)
	}
	if p.RegistrationNumber == "" {
		return Customer{}, fmt.Errorf("%w: registration number is required", ErrValidation)
	}
	if p.Address == "" {
		return Customer{}, fmt.Errorf("%w: address is required", ErrValidation)
	}
	return Customer{
		Kind:               KindCompany,
		Address:            p.Address,
		Phone:              p.Phone,
		Email:              p.Email,
		RegisteredAt:       time.Now(),
		CompanyName:        p.CompanyName,
		RegistrationNumber: p.RegistrationNumber,
		ContactPerson:      p.ContactPerson,
	}, nil
}

// FullName returns the display name: "first surname" for individuals, the
// registered name for companies.
func (c Customer) FullName() string {
	if c.Kind == KindCompany {
		return c.CompanyName
	}
	return c.FirstName + " " + c.Surname
}

// CanOpenAccount reports whether this customer is eligible for the given
// account type. Companies may open anything; individuals need proof of
// employment for a cheque account.
func (c Customer) CanOpenAccount(t AccountType) bool {
	if c.Kind == KindCompany {
		return true
	}
	if t == Cheque {
		return c.Employed && c.EmployerName != ""
	}
	return true
}
