// Package models defines the Employee document stored in MongoDB.
// It is the single canonical shape for the entity: optional fields are
// pointers or carry omitempty, so an absent value is never written.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is an optional nested postal address of an employee.
type Address struct {
	Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty"`
	Street   string `bson:"street,omitempty" json:"street,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	Country  string `bson:"country,omitempty" json:"country,omitempty"`
}

// PreviousCompany describes the employee's prior employment.
type PreviousCompany struct {
	CompanyName       string  `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CompanyType       string  `bson:"companyType,omitempty" json:"companyType,omitempty"`
	YearsOfExperience float64 `bson:"yearsOfExperience" json:"yearsOfExperience" validate:"gte=0"`
}

// Employee defines the document model for an employee record.
type Employee struct {
	// ID is the document identifier, assigned when the record is created.
	ID primitive.ObjectID `bson:"_id" json:"id"`
	// Name is the employee's name.
	Name string `bson:"name" json:"name" validate:"required"`
	// Email is the employee's contact address.
	Email string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	// Age is optional; nil means unknown.
	Age *int `bson:"age,omitempty" json:"age,omitempty" validate:"omitempty,gte=0"`
	// Address is optional.
	Address *Address `bson:"address,omitempty" json:"address,omitempty"`
	// Referral links to another employee document. Optional.
	Referral *primitive.ObjectID `bson:"referral,omitempty" json:"referral,omitempty"`
	// Hobbies keeps the order it was given in.
	Hobbies []string `bson:"hobbies" json:"hobbies"`
	// Designation is the employee's job title.
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	// PreviousCompanies is optional.
	PreviousCompanies *PreviousCompany `bson:"previousCompanies,omitempty" json:"previousCompanies,omitempty"`
	// CreatedAt is set by the client when the record is constructed.
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	// UpdatedAt is set by the client; saves never touch it.
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Clone returns a deep copy of the employee.
func (e *Employee) Clone() *Employee {
	c := *e
	if e.Age != nil {
		age := *e.Age
		c.Age = &age
	}
	if e.Address != nil {
		addr := *e.Address
		c.Address = &addr
	}
	if e.Referral != nil {
		ref := *e.Referral
		c.Referral = &ref
	}
	if e.Hobbies != nil {
		c.Hobbies = append([]string{}, e.Hobbies...)
	}
	if e.PreviousCompanies != nil {
		prev := *e.PreviousCompanies
		c.PreviousCompanies = &prev
	}
	return &c
}
