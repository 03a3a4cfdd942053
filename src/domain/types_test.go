package domain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() EmployeeInput {
	return EmployeeInput{
		Name:       "Juan Pérez",
		Email:      "juan.perez@empresa.com",
		Position:   "Desarrollador Senior",
		Department: "Tecnología",
		Salary:     75000,
		HireDate:   "2022-01-15",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tries := map[string]struct {
		mutate  func(*EmployeeInput)
		missing []string
	}{
		"complete": {
			func(*EmployeeInput) {},
			nil,
		},
		"empty name": {
			func(i *EmployeeInput) { i.Name = "" },
			[]string{"name"},
		},
		"whitespace email": {
			func(i *EmployeeInput) { i.Email = "  \t" },
			[]string{"email"},
		},
		"zero salary": {
			func(i *EmployeeInput) { i.Salary = 0 },
			[]string{"salary"},
		},
		"several": {
			func(i *EmployeeInput) {
				i.Position = ""
				i.Department = ""
				i.HireDate = ""
			},
			[]string{"position", "department", "hire_date"},
		},
	}

	for k, try := range tries {
		k := k
		try := try

		t.Run(k, func(t *testing.T) {
			t.Parallel()

			// given
			input := validInput()
			try.mutate(&input)

			// when
			err := input.Validate()

			// then
			if try.missing == nil {
				assert.NoError(t, err)
				return
			}
			var missingErr *MissingFieldsError
			require.True(t, errors.As(err, &missingErr))
			assert.Equal(t, try.missing, missingErr.Fields)
			for _, field := range try.missing {
				assert.True(t, missingErr.Has(field))
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	input := validInput()
	input.Name = "  Ana  "
	input.Email = "\tana@empresa.com\n"

	input.Normalize()

	assert.Equal(t, "Ana", input.Name)
	assert.Equal(t, "ana@empresa.com", input.Email)
}

func TestSalaryUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tries := map[string]struct {
		json     string
		expected Salary
		fails    bool
	}{
		"number":         {`{"salary": 55000.5}`, 55000.5, false},
		"numeric string": {`{"salary": "60000"}`, 60000, false},
		"empty string":   {`{"salary": ""}`, 0, false},
		"null":           {`{"salary": null}`, 0, false},
		"absent":         {`{}`, 0, false},
		"garbage":        {`{"salary": "lots"}`, 0, true},
		"boolean":        {`{"salary": true}`, 0, true},
		"infinity":       {`{"salary": "Inf"}`, 0, true},
		"negative inf":   {`{"salary": "-infinity"}`, 0, true},
		"not a number":   {`{"salary": "NaN"}`, 0, true},
	}

	for k, try := range tries {
		k := k
		try := try

		t.Run(k, func(t *testing.T) {
			t.Parallel()

			var input EmployeeInput
			err := json.Unmarshal([]byte(try.json), &input)

			if try.fails {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, try.expected, input.Salary)
		})
	}
}

func TestParseSalary(t *testing.T) {
	t.Parallel()

	for _, str := range []string{"Inf", "+Inf", "infinity", "NaN", "abc"} {
		_, err := ParseSalary(str)
		assert.Error(t, err, str)
	}

	v, err := ParseSalary(" 1200.50 ")
	require.NoError(t, err)
	assert.Equal(t, Salary(1200.5), v)
}

func TestSalaryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Salary(0).String())
	assert.Equal(t, "75000", Salary(75000).String())
	assert.Equal(t, "1234.5", Salary(1234.5).String())
}

func TestEmployeeInputRoundTrip(t *testing.T) {
	t.Parallel()

	input := validInput()
	assert.Equal(t, input, input.Employee().Input())
}

func TestSampleEmployees(t *testing.T) {
	t.Parallel()

	samples, err := SampleEmployees()
	require.NoError(t, err)
	require.Len(t, samples, 4)

	assert.Equal(t, "Juan Pérez", samples[0].Name)
	assert.Equal(t, Salary(75000), samples[0].Salary)
	assert.Equal(t, "2022-01-15", samples[0].HireDate)
	for _, sample := range samples {
		assert.NoError(t, sample.Validate())
	}
}

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`
- name: " Eva "
  email: eva@empresa.com
  position: Contadora
  department: Finanzas
  salary: 48000
  hire_date: "2020-02-01"
`), 0o644))

	samples, err := LoadSeedFile(valid)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "Eva", samples[0].Name)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(`
- name: Nadie
  email: nadie@empresa.com
`), 0o644))

	_, err = LoadSeedFile(invalid)
	assert.Error(t, err)

	infinite := filepath.Join(dir, "infinite.yaml")
	require.NoError(t, os.WriteFile(infinite, []byte(`
- name: Eva
  email: eva@empresa.com
  position: Contadora
  department: Finanzas
  salary: .inf
  hire_date: "2020-02-01"
`), 0o644))

	_, err = LoadSeedFile(infinite)
	assert.Error(t, err)

	_, err = LoadSeedFile(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}
