package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/application/service"
	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain"
)

type Web struct {
	Config config.WebConfig

	Logger            zerolog.Logger
	EmployeeService   service.EmployeeService
	StatisticsService service.StatisticsService
	Metrics           *config.Metrics
}

const (
	sessionName   = "staffdesk"
	dispatchRoute = "dispatch"
)

func (self *Web) Start(ctx context.Context) error {
	self.Logger.Info().Str("listen", self.Config.Listen).Msg("Starting")

	server := &http.Server{
		Addr:              self.Config.Listen,
		Handler:           self.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- errors.WithMessagef(err, "Failed to start web server on %s", self.Config.Listen)
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		self.Logger.Err(err).Msg("Failed to stop web server")
	}

	return nil
}

func (self *Web) Handler() http.Handler {
	muxRouter := mux.NewRouter().StrictSlash(true).UseEncodedPath()
	muxRouter.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		self.NotFound(w, req, nil)
	})
	muxRouter.Use(self.metricsMiddleware)

	// sorted alphabetically, please keep it this way
	api := muxRouter.PathPrefix("/api").Subrouter()
	api.HandleFunc("/employees/{id}", self.ApiEmployeeIdDelete).Methods(http.MethodDelete)
	api.HandleFunc("/employees/{id}", self.ApiEmployeeIdGet).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", self.ApiEmployeeIdPut).Methods(http.MethodPut)
	api.HandleFunc("/employees", self.ApiEmployeeGet).Methods(http.MethodGet)
	api.HandleFunc("/employees", self.ApiEmployeePost).Methods(http.MethodPost)
	api.HandleFunc("/stats", self.ApiStatsGet).Methods(http.MethodGet)
	api.HandleFunc("/test", self.ApiTestGet).Methods(http.MethodGet)

	muxRouter.HandleFunc("/", self.IndexGet).Methods(http.MethodGet)
	muxRouter.HandleFunc("/employee", self.EmployeeGet).Methods(http.MethodGet)
	muxRouter.HandleFunc("/employee", self.EmployeePost).Methods(http.MethodPost)
	muxRouter.HandleFunc("/employee/new", self.EmployeeNewGet).Methods(http.MethodGet)
	muxRouter.HandleFunc("/employee/{id}", self.EmployeeIdDelete).Methods(http.MethodDelete)
	muxRouter.HandleFunc("/employee/{id}", self.EmployeeIdPut).Methods(http.MethodPut)
	muxRouter.HandleFunc("/employee/{id}/edit", self.EmployeeIdEditGet).Methods(http.MethodGet)
	muxRouter.Handle("/metrics", promhttp.HandlerFor(self.Metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	muxRouter.PathPrefix("/static/").Handler(http.StripPrefix("/", http.FileServer(http.FS(staticFs))))

	// HTML forms can only submit GET and POST.
	muxRouter.PathPrefix("/_dispatch/method/{method}/").Name(dispatchRoute).Methods(http.MethodPost).
		HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			req.Method = strings.ToUpper(mux.Vars(req)["method"])
			http.StripPrefix("/_dispatch/method/"+mux.Vars(req)["method"], muxRouter).ServeHTTP(w, req)
		})

	return self.middleware(muxRouter)
}

func (self *Web) IndexGet(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, "/employee", http.StatusFound)
}

func (self *Web) EmployeeGet(w http.ResponseWriter, req *http.Request) {
	employees, err := self.EmployeeService.GetAll(req.Context())
	if err != nil {
		self.ServerError(w, req, err)
		return
	}

	stats, err := self.StatisticsService.Summary(req.Context())
	if err != nil {
		self.ServerError(w, req, err)
		return
	}
	self.Metrics.Employees.Set(float64(stats.Total))

	flashes := self.flashes(w, req)

	if err := self.render("employee/index.html", w, http.StatusOK, map[string]any{
		"Employees": employees,
		"Stats":     stats,
		"Flashes":   flashes,
	}); err != nil {
		self.Logger.Err(err).Msg("Failed to render employee list")
	}
}

func (self *Web) EmployeeNewGet(w http.ResponseWriter, req *http.Request) {
	self.renderForm(w, http.StatusOK, 0, domain.EmployeeInput{}, nil)
}

func (self *Web) EmployeePost(w http.ResponseWriter, req *http.Request) {
	input, err := formInput(req)
	if err != nil {
		self.renderForm(w, http.StatusBadRequest, 0, input, err)
		return
	}

	if _, err := self.EmployeeService.Create(req.Context(), input); err != nil {
		if isFormError(err) {
			self.renderForm(w, http.StatusBadRequest, 0, input, err)
		} else {
			self.Error(w, req, err)
		}
		return
	}

	self.flashAndRedirect(w, req, "Employee created successfully")
}

func (self *Web) EmployeeIdEditGet(w http.ResponseWriter, req *http.Request) {
	id, err := parseId(req)
	if err != nil {
		self.Error(w, req, err)
		return
	}

	employee, err := self.EmployeeService.GetById(req.Context(), id)
	if err != nil {
		self.ServerError(w, req, err)
		return
	} else if employee == nil {
		self.NotFound(w, req, domain.ErrNotFound)
		return
	}

	self.renderForm(w, http.StatusOK, id, employee.Input(), nil)
}

func (self *Web) EmployeeIdPut(w http.ResponseWriter, req *http.Request) {
	id, err := parseId(req)
	if err != nil {
		self.Error(w, req, err)
		return
	}

	input, err := formInput(req)
	if err != nil {
		self.renderForm(w, http.StatusBadRequest, id, input, err)
		return
	}

	if _, err := self.EmployeeService.Update(req.Context(), id, input); err != nil {
		if isFormError(err) {
			self.renderForm(w, http.StatusBadRequest, id, input, err)
		} else {
			self.Error(w, req, err)
		}
		return
	}

	self.flashAndRedirect(w, req, "Employee updated successfully")
}

func (self *Web) EmployeeIdDelete(w http.ResponseWriter, req *http.Request) {
	id, err := parseId(req)
	if err != nil {
		self.Error(w, req, err)
		return
	}

	if err := self.EmployeeService.Delete(req.Context(), id); err != nil {
		self.Error(w, req, err)
		return
	}

	self.flashAndRedirect(w, req, "Employee deleted successfully")
}

func (self *Web) renderForm(w http.ResponseWriter, status int, id int64, input domain.EmployeeInput, formErr error) {
	data := map[string]any{
		"Id":          id,
		"Employee":    input,
		"Departments": domain.Departments,
		"Missing":     (*domain.MissingFieldsError)(nil),
		"Error":       "",
	}

	if formErr != nil {
		var missing *domain.MissingFieldsError
		if errors.As(formErr, &missing) {
			data["Missing"] = missing
			data["Error"] = msgMissingFields
		} else if errors.Is(formErr, domain.ErrDuplicateEmail) {
			data["Error"] = domain.ErrDuplicateEmail.Error()
		} else {
			data["Error"] = formErr.Error()
		}
	}

	if err := self.render("employee/form.html", w, status, data); err != nil {
		self.Logger.Err(err).Msg("Failed to render employee form")
	}
}

func (self *Web) flashes(w http.ResponseWriter, req *http.Request) []any {
	session, err := self.Config.Sessions.Get(req, sessionName)
	if err != nil {
		self.Logger.Debug().Err(err).Msg("Discarding unreadable session")
	}

	flashes := session.Flashes()
	if len(flashes) > 0 {
		if err := session.Save(req, w); err != nil {
			self.Logger.Err(err).Msg("Failed to save session")
		}
	}
	return flashes
}

func (self *Web) flashAndRedirect(w http.ResponseWriter, req *http.Request, msg string) {
	session, err := self.Config.Sessions.Get(req, sessionName)
	if err != nil {
		self.Logger.Debug().Err(err).Msg("Discarding unreadable session")
	}

	session.AddFlash(msg)
	if err := session.Save(req, w); err != nil {
		self.Logger.Err(err).Msg("Failed to save session")
	}

	http.Redirect(w, req, "/employee", http.StatusFound)
}

func formInput(req *http.Request) (domain.EmployeeInput, error) {
	if err := req.ParseForm(); err != nil {
		return domain.EmployeeInput{}, HandlerError{errors.WithMessage(err, "Invalid form"), http.StatusBadRequest}
	}

	input := domain.EmployeeInput{
		Name:       req.PostForm.Get("name"),
		Email:      req.PostForm.Get("email"),
		Position:   req.PostForm.Get("position"),
		Department: req.PostForm.Get("department"),
		HireDate:   req.PostForm.Get("hire_date"),
	}

	salary, err := domain.ParseSalary(req.PostForm.Get("salary"))
	if err != nil {
		return input, err
	}
	input.Salary = salary

	return input, nil
}

func isFormError(err error) bool {
	var missing *domain.MissingFieldsError
	return errors.As(err, &missing) || errors.Is(err, domain.ErrDuplicateEmail)
}

func parseId(req *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, HandlerError{errors.Errorf("Invalid employee ID %q", mux.Vars(req)["id"]), http.StatusBadRequest}
	}
	return id, nil
}

type HandlerError struct {
	error
	StatusCode int
}

func (self HandlerError) HasError() bool {
	return self.error != nil
}

func (self HandlerError) Unwrap() error {
	return self.error
}

func (self *Web) ServerError(w http.ResponseWriter, req *http.Request, err error) {
	self.Error(w, req, HandlerError{err, http.StatusInternalServerError})
}

func (self *Web) ClientError(w http.ResponseWriter, req *http.Request, err error) {
	self.Error(w, req, HandlerError{err, http.StatusBadRequest})
}

func (self *Web) NotFound(w http.ResponseWriter, req *http.Request, err error) {
	self.Error(w, req, HandlerError{err, http.StatusNotFound})
}

const (
	msgMissingFields = "All fields are required"
	msgInternal      = "Internal server error"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// Error maps err to a status code and writes it as JSON for API routes
// or as an error page otherwise. Server errors never expose details.
func (self *Web) Error(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	var body errorResponse

	var missing *domain.MissingFieldsError
	var handlerErr HandlerError
	switch {
	case errors.As(err, &missing):
		status = http.StatusBadRequest
		body = errorResponse{Error: msgMissingFields, Fields: missing.Fields}
	case errors.Is(err, domain.ErrDuplicateEmail):
		status = http.StatusBadRequest
		body.Error = domain.ErrDuplicateEmail.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		body.Error = domain.ErrNotFound.Error()
	case errors.As(err, &handlerErr):
		status = handlerErr.StatusCode
		if !handlerErr.HasError() {
			err = nil
			body.Error = http.StatusText(status)
		} else {
			body.Error = handlerErr.Error()
		}
	case err != nil:
		body.Error = err.Error()
	}

	var e *zerolog.Event
	if status >= 500 {
		e = self.Logger.Error()
		body = errorResponse{Error: msgInternal}
	} else {
		e = self.Logger.Debug()
	}
	e.Err(err).Int("status", status).Str("path", req.URL.Path).Msg("Handler error")

	if strings.HasPrefix(req.URL.Path, "/api/") {
		self.json(w, body, status)
		return
	}

	if renderErr := self.render("error.html", w, status, map[string]any{
		"Status":  status,
		"Message": body.Error,
	}); renderErr != nil {
		self.Logger.Err(renderErr).Msg("Failed to render error page")
	}
}

func (self *Web) json(w http.ResponseWriter, obj any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		self.Logger.Err(err).Msg("Failed to encode JSON response")
	}
}
