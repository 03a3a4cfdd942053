package repository

import (
	"context"
	"encoding/json"
)

type StatisticsRepository interface {
	Count(context.Context) (int64, error)
	TotalSalary(context.Context) (float64, error)
	AverageSalary(context.Context) (float64, error)
	ByDepartment(context.Context) ([]DepartmentCount, error)
}

type DepartmentCount struct {
	Department string `json:"department" db:"department"`
	Count      int64  `json:"count"      db:"count"`
}

type EmployeeStatistics struct {
	Total         int64
	TotalSalary   float64
	AverageSalary float64
	ByDepartment  []DepartmentCount
}

type employeeStatisticsJson struct {
	TotalEmployees struct {
		Total int64 `json:"total"`
	} `json:"totalEmployees"`
	TotalSalary struct {
		Total float64 `json:"total"`
	} `json:"totalSalary"`
	AvgSalary struct {
		Average float64 `json:"average"`
	} `json:"avgSalary"`
	ByDepartment []DepartmentCount `json:"byDepartment"`
}

func (self EmployeeStatistics) MarshalJSON() ([]byte, error) {
	enc := employeeStatisticsJson{ByDepartment: self.ByDepartment}
	enc.TotalEmployees.Total = self.Total
	enc.TotalSalary.Total = self.TotalSalary
	enc.AvgSalary.Average = self.AverageSalary
	if enc.ByDepartment == nil {
		enc.ByDepartment = []DepartmentCount{}
	}
	return json.Marshal(enc)
}

func (self *EmployeeStatistics) UnmarshalJSON(data []byte) error {
	dec := employeeStatisticsJson{}
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}
	self.Total = dec.TotalEmployees.Total
	self.TotalSalary = dec.TotalSalary.Total
	self.AverageSalary = dec.AvgSalary.Average
	self.ByDepartment = dec.ByDepartment
	return nil
}

// Department returns the headcount of the given department.
func (self EmployeeStatistics) Department(name string) int64 {
	for _, v := range self.ByDepartment {
		if v.Department == name {
			return v.Count
		}
	}
	return 0
}
