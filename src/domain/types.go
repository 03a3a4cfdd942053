package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type BuildInfo struct {
	Version string
	Commit  string
}

var Build = BuildInfo{
	Version: "dev",
	Commit:  "dirty",
}

// Department choices offered by the employee form.
// Storage accepts any non-empty department.
var Departments = []string{
	"Tecnología",
	"Operaciones",
	"Diseño",
	"Analítica",
	"Ventas",
	"Marketing",
	"Recursos Humanos",
	"Finanzas",
}

type Employee struct {
	ID         int64     `json:"id"          db:"id"`
	Name       string    `json:"name"        db:"name"`
	Email      string    `json:"email"       db:"email"`
	Position   string    `json:"position"    db:"position"`
	Department string    `json:"department"  db:"department"`
	Salary     float64   `json:"salary"      db:"salary"`
	HireDate   string    `json:"hire_date"   db:"hire_date"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// Input returns the user-editable fields of the employee.
func (self Employee) Input() EmployeeInput {
	return EmployeeInput{
		Name:       self.Name,
		Email:      self.Email,
		Position:   self.Position,
		Department: self.Department,
		Salary:     Salary(self.Salary),
		HireDate:   self.HireDate,
	}
}

// EmployeeInput holds the fields a client submits to create or update an employee.
type EmployeeInput struct {
	Name       string `json:"name"       yaml:"name"`
	Email      string `json:"email"      yaml:"email"`
	Position   string `json:"position"   yaml:"position"`
	Department string `json:"department" yaml:"department"`
	Salary     Salary `json:"salary"     yaml:"salary"`
	HireDate   string `json:"hire_date"  yaml:"hire_date"`
}

func (self *EmployeeInput) Normalize() {
	self.Name = strings.TrimSpace(self.Name)
	self.Email = strings.TrimSpace(self.Email)
	self.Position = strings.TrimSpace(self.Position)
	self.Department = strings.TrimSpace(self.Department)
	self.HireDate = strings.TrimSpace(self.HireDate)
}

// Validate only checks that every field is present.
// A salary of zero counts as missing.
func (self EmployeeInput) Validate() error {
	var missing []string
	for _, field := range []struct {
		name    string
		present bool
	}{
		{"name", strings.TrimSpace(self.Name) != ""},
		{"email", strings.TrimSpace(self.Email) != ""},
		{"position", strings.TrimSpace(self.Position) != ""},
		{"department", strings.TrimSpace(self.Department) != ""},
		{"salary", self.Salary != 0},
		{"hire_date", strings.TrimSpace(self.HireDate) != ""},
	} {
		if !field.present {
			missing = append(missing, field.name)
		}
	}

	if len(missing) != 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Employee builds a record from the input, leaving
// the storage-assigned fields zero.
func (self EmployeeInput) Employee() Employee {
	return Employee{
		Name:       self.Name,
		Email:      self.Email,
		Position:   self.Position,
		Department: self.Department,
		Salary:     float64(self.Salary),
		HireDate:   self.HireDate,
	}
}

// Salary accepts a JSON number or a numeric string
// because HTML forms submit every value as text.
type Salary float64

func ParseSalary(str string) (Salary, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil || !finite(v) {
		return 0, errors.Errorf("salary must be a number, got %q", str)
	}
	return Salary(v), nil
}

// ParseFloat accepts "Inf" and "NaN", which JSON cannot encode.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (self *Salary) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*self = 0
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		v, err := ParseSalary(str)
		if err != nil {
			return err
		}
		*self = v
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil || !finite(v) {
		return errors.Errorf("salary must be a number, got %s", data)
	}
	*self = Salary(v)
	return nil
}

func (self *Salary) UnmarshalYAML(node *yaml.Node) error {
	var v float64
	if err := node.Decode(&v); err != nil || !finite(v) {
		return errors.Errorf("salary must be a number, got %q", node.Value)
	}
	*self = Salary(v)
	return nil
}

func (self Salary) String() string {
	if self == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(self), 'f', -1, 64)
}
