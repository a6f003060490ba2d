package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/labsys/labclient/internal/api"
)

func setField(t *testing.T, f *entityForm, key, value string) {
	t.Helper()
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(value)
			return
		}
	}
	t.Fatalf("no field %q", key)
}

func TestPatientFormRequiredFields(t *testing.T) {
	f := newPatientForm(nil, time.Now())

	errs := f.validate()
	require.Equal(t, "required", errs["name"])
	require.Equal(t, "required", errs["age"])
	require.Equal(t, "required", errs["gender"])
	require.NotContains(t, errs, "phone", "phone is optional")
}

func TestPatientFormFieldRules(t *testing.T) {
	f := newPatientForm(nil, time.Now())
	setField(t, f, "name", "Juan Pérez")
	setField(t, f, "age", "abc")
	setField(t, f, "gender", "X")

	errs := f.validate()
	require.Contains(t, errs["age"], "number")
	require.Contains(t, errs["gender"], "M, F or O")

	setField(t, f, "age", "34")
	setField(t, f, "gender", "m")
	require.Empty(t, f.validate(), "lowercase gender codes are accepted")
}

func TestPatientInputDerivesBirthDate(t *testing.T) {
	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	f := newPatientForm(nil, now)
	setField(t, f, "name", "Juan Pérez")
	setField(t, f, "age", "34")
	setField(t, f, "gender", "M")

	in := f.patientInput(now)
	require.Equal(t, "1992-01-01", in.BirthDate, "age maps to Jan 1 of (year - age)")
	require.Equal(t, api.GenderMale, in.Gender)
}

func TestAgeDerivationRoundTrip(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	bd := ageToBirthDate(40, now)
	require.Equal(t, "1986-01-01", bd)

	age, ok := birthDateToAge(bd, now)
	require.True(t, ok)
	require.Equal(t, 40, age)

	_, ok = birthDateToAge("", now)
	require.False(t, ok)
	_, ok = birthDateToAge("19xx-01-01", now)
	require.False(t, ok)
}

func TestPatientFormEditPrefill(t *testing.T) {
	now := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	p := api.Patient{ID: 7, Name: "Ana", BirthDate: "1990-05-12", Gender: api.GenderFemale, Phone: "555"}
	f := newPatientForm(&p, now)

	require.Equal(t, 7, f.editID)
	require.Equal(t, "Ana", f.value("name"))
	require.Equal(t, "36", f.value("age"), "prefill is year precision only")
	require.Equal(t, "F", f.value("gender"))
}

func TestDoctorFormValidation(t *testing.T) {
	f := newDoctorForm(nil)
	errs := f.validate()
	// every doctor field is required
	for _, key := range []string{"name", "specialty", "license", "address", "phone", "email", "role"} {
		require.Equal(t, "required", errs[key], key)
	}

	setField(t, f, "name", "Dra. Ruiz")
	setField(t, f, "specialty", "Hematología")
	setField(t, f, "license", "12345")
	setField(t, f, "address", "Av. Siempre Viva 742")
	setField(t, f, "phone", "555-0100")
	setField(t, f, "email", "ruiz@lab")
	setField(t, f, "role", "Admin")
	require.Equal(t, map[string]string{"email": "invalid email"}, f.validate())

	setField(t, f, "email", "ruiz@lab.mx")
	require.Empty(t, f.validate())
}

func TestSampleFormValidation(t *testing.T) {
	f := newSampleForm(nil)
	require.Equal(t, map[string]string{"name": "required"}, f.validate())

	setField(t, f, "name", "Sangre")
	require.Empty(t, f.validate())
	require.Equal(t, api.SampleInput{Name: "Sangre"}, f.sampleInput())
}
