// Package person defines the Person record persisted by the store package.
package person

import (
	"fmt"
	"strconv"
	"strings"
)

// Person is a contact record with an optional identifier.
// An ID of zero means the record has never been written to storage.
type Person struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// New creates an unpersisted Person
func New(name, email, phone string) *Person {
	return &Person{
		Name:  name,
		Email: email,
		Phone: phone,
	}
}

// IsPersisted reports whether the record has been assigned an ID
func (p *Person) IsPersisted() bool {
	return p.ID != 0
}

// SetID assigns the storage identifier
func (p *Person) SetID(id int64) {
	p.ID = id
}

// SetName replaces the name
func (p *Person) SetName(name string) {
	p.Name = name
}

// SetPhone replaces the phone
func (p *Person) SetPhone(phone string) {
	p.Phone = phone
}

// SetEmail replaces the email after checking it contains an "@".
//
// This check is looser than Validate: blank-looking values such as " @ " are
// accepted here and only rejected when the record is created or updated.
func (p *Person) SetEmail(email string) error {
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "email must contain @"}
	}
	p.Email = email
	return nil
}

// Validate checks the field rules required before the record is persisted
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if strings.TrimSpace(p.Email) == "" || !strings.Contains(p.Email, "@") {
		return &ValidationError{Field: "email", Message: "invalid email"}
	}
	if strings.TrimSpace(p.Phone) == "" {
		return &ValidationError{Field: "phone", Message: "phone cannot be empty"}
	}
	return nil
}

// Clone returns a copy that shares nothing with p
func (p *Person) Clone() *Person {
	c := *p
	return &c
}

// Fields returns the record as a flat map. An absent ID is rendered as "0".
func (p *Person) Fields() map[string]string {
	return map[string]string{
		"id":    strconv.FormatInt(p.ID, 10),
		"name":  p.Name,
		"email": p.Email,
		"phone": p.Phone,
	}
}

// Summary returns a one-line human readable description
func (p *Person) Summary() string {
	id := "N/A"
	if p.IsPersisted() {
		id = strconv.FormatInt(p.ID, 10)
	}
	return fmt.Sprintf("ID: %s | Name: %s | Email: %s | Phone: %s", id, p.Name, p.Email, p.Phone)
}

func (p *Person) String() string {
	id := "null"
	if p.IsPersisted() {
		id = strconv.FormatInt(p.ID, 10)
	}
	return fmt.Sprintf("Person[id=%s, name=%s, email=%s, phone=%s]", id, p.Name, p.Email, p.Phone)
}
