package web

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/staffdesk/staffdesk/src/domain"
)

type apiResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type apiCreatedResponse struct {
	Message string `json:"message"`
	Data    struct {
		Id int64 `json:"id"`
	} `json:"data"`
	Id int64 `json:"id"`
}

type apiChangesResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

func (self *Web) ApiTestGet(w http.ResponseWriter, req *http.Request) {
	self.json(w, apiResponse{Message: "API is working"}, http.StatusOK)
}

func (self *Web) ApiEmployeeGet(w http.ResponseWriter, req *http.Request) {
	if employees, err := self.EmployeeService.GetAll(req.Context()); err != nil {
		self.ServerError(w, req, err)
	} else {
		self.json(w, apiResponse{Message: "success", Data: employees}, http.StatusOK)
	}
}

func (self *Web) ApiEmployeeIdGet(w http.ResponseWriter, req *http.Request) {
	id, err := parseId(req)
	if err != nil {
		self.Error(w, req, err)
		return
	}

	if employee, err := self.EmployeeService.GetById(req.Context(), id); err != nil {
		self.ServerError(w, req, err)
	} else if employee == nil {
		self.NotFound(w, req, domain.ErrNotFound)
	} else {
		self.json(w, apiResponse{Message: "success", Data: employee}, http.StatusOK)
	}
}

func (self *Web) ApiEmployeePost(w http.ResponseWriter, req *http.Request) {
	input, err := decodeInput(req)
	if err != nil {
		self.ClientError(w, req, err)
		return
	}

	employee, err := self.EmployeeService.Create(req.Context(), input)
	if err != nil {
		self.Error(w, req, err)
		return
	}

	res := apiCreatedResponse{Message: "Employee created successfully", Id: employee.ID}
	res.Data.Id = employee.ID
	self.json(w, res, http.StatusOK)
}

func (self *Web) ApiEmployeeIdPut(w http.ResponseWriter, req *http.Request) {
	id, err := parseId(req)
	if err != nil {
		self.Error(w, req, err)
		return
	}

	input, err := decodeInput(req)
	if err != nil {
		self.ClientError(w, req, err)
		return
	}

	if _, err := self.EmployeeService.Update(req.Context(), id, input); err != nil {
		self.Error(w, req, err)
		return
	}

	self.json(w, apiChangesResponse{Message: "Employee updated successfully", Changes: 1}, http.StatusOK)
}

func (self *Web) ApiEmployeeIdDelete(w http.ResponseWriter, req *http.Request) {
	id, err := parseId(req)
	if err != nil {
		self.Error(w, req, err)
		return
	}

	if err := self.EmployeeService.Delete(req.Context(), id); err != nil {
		self.Error(w, req, err)
		return
	}

	self.json(w, apiChangesResponse{Message: "Employee deleted successfully", Changes: 1}, http.StatusOK)
}

func (self *Web) ApiStatsGet(w http.ResponseWriter, req *http.Request) {
	stats, err := self.StatisticsService.Summary(req.Context())
	if err != nil {
		self.ServerError(w, req, err)
		return
	}

	self.Metrics.Employees.Set(float64(stats.Total))
	self.json(w, apiResponse{Message: "success", Data: stats}, http.StatusOK)
}

func decodeInput(req *http.Request) (input domain.EmployeeInput, err error) {
	if err = json.NewDecoder(req.Body).Decode(&input); err != nil {
		err = errors.WithMessage(err, "Invalid request body")
	}
	return
}
