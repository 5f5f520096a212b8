package person

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New("Ana", "ana@x.com", "111")

	assert.Equal(t, int64(0), p.ID)
	assert.False(t, p.IsPersisted())
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "ana@x.com", p.Email)
	assert.Equal(t, "111", p.Phone)

	p.SetID(7)
	assert.True(t, p.IsPersisted())
}

func TestPerson_Validate(t *testing.T) {
	tests := []struct {
		name      string
		person    *Person
		wantField string
	}{
		{name: "valid", person: New("Ana", "ana@x.com", "111")},
		{name: "empty name", person: New("", "ana@x.com", "111"), wantField: "name"},
		{name: "blank name", person: New("   ", "ana@x.com", "111"), wantField: "name"},
		{name: "empty email", person: New("Ana", "", "111"), wantField: "email"},
		{name: "blank email", person: New("Ana", "  ", "111"), wantField: "email"},
		{name: "email without at", person: New("Ana", "ana.x.com", "111"), wantField: "email"},
		{name: "empty phone", person: New("Ana", "ana@x.com", ""), wantField: "phone"},
		{name: "blank phone", person: New("Ana", "ana@x.com", "\t"), wantField: "phone"},
		{name: "name checked first", person: New("", "", ""), wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.person.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestPerson_ValidateHasNoSideEffects(t *testing.T) {
	p := New("Ana", "bad", "111")
	before := *p

	_ = p.Validate()
	assert.Equal(t, before, *p)
}

func TestPerson_SetEmail(t *testing.T) {
	p := New("Ana", "ana@x.com", "111")

	err := p.SetEmail("no-at-sign")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "ana@x.com", p.Email, "rejected email must not be assigned")

	require.NoError(t, p.SetEmail("new@x.com"))
	assert.Equal(t, "new@x.com", p.Email)

	// SetEmail only checks for "@"; Validate is stricter about blanks.
	require.NoError(t, p.SetEmail(" @ "))
	assert.Equal(t, " @ ", p.Email)
}

func TestPerson_Mutators(t *testing.T) {
	p := New("Ana", "ana@x.com", "111")
	p.SetName("Bo")
	p.SetPhone("222")

	assert.Equal(t, "Bo", p.Name)
	assert.Equal(t, "222", p.Phone)
}

func TestPerson_Summary(t *testing.T) {
	p := New("Ana", "ana@x.com", "111")
	assert.Equal(t, "ID: N/A | Name: Ana | Email: ana@x.com | Phone: 111", p.Summary())

	p.SetID(3)
	assert.Equal(t, "ID: 3 | Name: Ana | Email: ana@x.com | Phone: 111", p.Summary())
}

func TestPerson_String(t *testing.T) {
	p := New("Ana", "ana@x.com", "111")
	assert.Equal(t, "Person[id=null, name=Ana, email=ana@x.com, phone=111]", p.String())

	p.SetID(12)
	assert.Equal(t, "Person[id=12, name=Ana, email=ana@x.com, phone=111]", p.String())
}

func TestPerson_Fields(t *testing.T) {
	p := New("Ana", "ana@x.com", "111")
	assert.Equal(t, map[string]string{
		"id":    "0",
		"name":  "Ana",
		"email": "ana@x.com",
		"phone": "111",
	}, p.Fields())
}

func TestPerson_Clone(t *testing.T) {
	p := New("Ana", "ana@x.com", "111")
	p.SetID(1)

	c := p.Clone()
	c.SetName("Changed")

	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, int64(1), c.ID)
}

func TestFormatPhone(t *testing.T) {
	tests := map[string]string{
		"(11) 9.8765-4321": "11987654321",
		"+55 11 1234":      "55111234",
		"":                 "",
		"abc":              "",
		"١٢٣":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPhone(in), "input %q", in)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("teste@exemplo.com"))
	assert.False(t, ValidEmail("teste.com"))
	assert.False(t, ValidEmail("a@b.c"), "five bytes is too short")
	assert.True(t, ValidEmail("ab@c.d"))
	assert.False(t, ValidEmail("abc@defgh"))
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "name: name cannot be empty", (&ValidationError{Field: "name", Message: "name cannot be empty"}).Error())
	assert.Equal(t, "bad", (&ValidationError{Message: "bad"}).Error())
}
