package domain

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var sampleEmployees []byte

func SampleEmployees() ([]EmployeeInput, error) {
	return parseSeed(sampleEmployees)
}

func LoadSeedFile(path string) ([]EmployeeInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "While reading seed file")
	}
	inputs, err := parseSeed(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "While parsing seed file %q", path)
	}
	return inputs, nil
}

func parseSeed(data []byte) ([]EmployeeInput, error) {
	var inputs []EmployeeInput
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, err
	}
	for i := range inputs {
		inputs[i].Normalize()
		if err := inputs[i].Validate(); err != nil {
			return nil, errors.WithMessagef(err, "Seed entry %d", i)
		}
	}
	return inputs, nil
}
