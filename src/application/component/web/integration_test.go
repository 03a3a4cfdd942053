package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk/src/application/service"
	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/infrastructure/persistence/sqlite"
)

func newSqliteServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	logger := zerolog.Nop()

	db, err := config.SqliteConnection(ctx, config.SqliteMemory, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(ctx, db))

	employeeService := service.NewEmployeeService(sqlite.NewEmployeeRepository(db), &logger)
	samples, err := domain.SampleEmployees()
	require.NoError(t, err)
	_, err = employeeService.Seed(ctx, samples)
	require.NoError(t, err)

	web := &Web{
		Config: config.WebConfig{
			Sessions: sessions.NewCookieStore(securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32)),
		},
		Logger:            logger,
		EmployeeService:   employeeService,
		StatisticsService: service.NewStatisticsService(sqlite.NewStatisticsRepository(db), &logger),
		Metrics:           config.NewMetrics(),
	}

	server := httptest.NewServer(web.Handler())
	t.Cleanup(server.Close)
	return server
}

func getJson(t *testing.T, client *http.Client, url string, status int, obj any) {
	t.Helper()
	res, err := client.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, status, res.StatusCode)
	require.NoError(t, json.NewDecoder(res.Body).Decode(obj))
}

func sendJson(t *testing.T, client *http.Client, method, url, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return res.StatusCode, decoded
}

func TestApiAgainstSqlite(t *testing.T) {
	t.Parallel()

	server := newSqliteServer(t)
	client := server.Client()

	// seeded
	var list struct {
		Data []domain.Employee `json:"data"`
	}
	getJson(t, client, server.URL+"/api/employees", http.StatusOK, &list)
	require.Len(t, list.Data, 4)

	var stats struct {
		Data struct {
			TotalEmployees struct{ Total int64 }     `json:"totalEmployees"`
			TotalSalary    struct{ Total float64 }   `json:"totalSalary"`
			AvgSalary      struct{ Average float64 } `json:"avgSalary"`
			ByDepartment   []struct {
				Department string
				Count      int64
			} `json:"byDepartment"`
		} `json:"data"`
	}
	getJson(t, client, server.URL+"/api/stats", http.StatusOK, &stats)
	assert.Equal(t, int64(4), stats.Data.TotalEmployees.Total)
	assert.Equal(t, float64(255000), stats.Data.TotalSalary.Total)
	assert.Equal(t, float64(63750), stats.Data.AvgSalary.Average)
	assert.Len(t, stats.Data.ByDepartment, 4)

	// create
	status, body := sendJson(t, client, http.MethodPost, server.URL+"/api/employees", `{
		"name": "Lucía Fernández",
		"email": "lucia.fernandez@empresa.com",
		"position": "Ingeniera de Datos",
		"department": "Tecnología",
		"salary": 80000,
		"hire_date": "2024-02-01"
	}`)
	require.Equal(t, http.StatusOK, status, body)
	id := body["id"].(float64)
	assert.Equal(t, map[string]any{"id": id}, body["data"])

	// duplicate email
	status, body = sendJson(t, client, http.MethodPost, server.URL+"/api/employees", `{
		"name": "Otra Lucía",
		"email": "lucia.fernandez@empresa.com",
		"position": "Analista",
		"department": "Analítica",
		"salary": 50000,
		"hire_date": "2024-03-01"
	}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email is already registered", body["error"])

	// non-finite salaries are rejected and the list stays encodable
	for _, salary := range []string{`"Inf"`, `"-Infinity"`, `"NaN"`} {
		status, body = sendJson(t, client, http.MethodPost, server.URL+"/api/employees", `{
			"name": "Sin Límite",
			"email": "sin.limite@empresa.com",
			"position": "Analista",
			"department": "Analítica",
			"salary": `+salary+`,
			"hire_date": "2024-03-01"
		}`)
		assert.Equal(t, http.StatusBadRequest, status, salary)
		assert.Contains(t, body["error"], "salary must be a number", salary)
	}

	// newest first
	getJson(t, client, server.URL+"/api/employees", http.StatusOK, &list)
	require.Len(t, list.Data, 5)
	assert.Equal(t, "Lucía Fernández", list.Data[0].Name)

	// update
	idPath := server.URL + "/api/employees/" + strconv.FormatInt(int64(id), 10)
	status, body = sendJson(t, client, http.MethodPut, idPath, `{
		"name": "Lucía Fernández",
		"email": "lucia.fernandez@empresa.com",
		"position": "Líder de Datos",
		"department": "Analítica",
		"salary": "90000",
		"hire_date": "2024-02-01"
	}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(1), body["changes"])

	var one struct {
		Data domain.Employee `json:"data"`
	}
	getJson(t, client, idPath, http.StatusOK, &one)
	assert.Equal(t, "Líder de Datos", one.Data.Position)
	assert.Equal(t, float64(90000), one.Data.Salary)
	assert.False(t, one.Data.UpdatedAt.Before(one.Data.CreatedAt))

	// delete
	status, body = sendJson(t, client, http.MethodDelete, idPath, ``)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Employee deleted successfully", body["message"])

	status, body = sendJson(t, client, http.MethodDelete, idPath, ``)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Employee not found", body["error"])
}

func TestFormsAgainstSqlite(t *testing.T) {
	t.Parallel()

	server := newSqliteServer(t)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := server.Client()
	client.Jar = jar

	readPage := func(res *http.Response) string {
		t.Helper()
		defer res.Body.Close()
		page, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return string(page)
	}

	// create, following the redirect to the list
	res, err := client.PostForm(server.URL+"/employee", url.Values{
		"name":       {"Lucía Fernández"},
		"email":      {"lucia.fernandez@empresa.com"},
		"position":   {"Ingeniera de Datos"},
		"department": {"Tecnología"},
		"salary":     {"80000"},
		"hire_date":  {"2024-02-01"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "/employee", res.Request.URL.Path)
	page := readPage(res)
	assert.Contains(t, page, "Employee created successfully")
	assert.Contains(t, page, "Lucía Fernández")
	assert.Contains(t, page, `<dd id="stats-total">5</dd>`)

	// the flash is shown once
	res, err = client.Get(server.URL + "/employee")
	require.NoError(t, err)
	assert.NotContains(t, readPage(res), "Employee created successfully")

	// duplicate email re-renders the form
	res, err = client.PostForm(server.URL+"/employee", url.Values{
		"name":       {"Otra Persona"},
		"email":      {"lucia.fernandez@empresa.com"},
		"position":   {"Analista"},
		"department": {"Analítica"},
		"salary":     {"50000"},
		"hire_date":  {"2024-03-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	page = readPage(res)
	assert.Contains(t, page, "Email is already registered")
	assert.Contains(t, page, `value="Otra Persona"`)

	// an infinite salary re-renders the form
	res, err = client.PostForm(server.URL+"/employee", url.Values{
		"name":       {"Sin Límite"},
		"email":      {"sin.limite@empresa.com"},
		"position":   {"Analista"},
		"department": {"Analítica"},
		"salary":     {"Inf"},
		"hire_date":  {"2024-03-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, readPage(res), "salary must be a number")

	// delete every seeded employee through the method dispatcher
	var list struct {
		Data []domain.Employee `json:"data"`
	}
	getJson(t, client, server.URL+"/api/employees", http.StatusOK, &list)
	for _, employee := range list.Data {
		res, err := client.Post(server.URL+"/_dispatch/method/DELETE/employee/"+strconv.FormatInt(employee.ID, 10), "", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, readPage(res), "Employee deleted successfully")
	}

	res, err = client.Get(server.URL + "/employee")
	require.NoError(t, err)
	page = readPage(res)
	assert.Contains(t, page, "No employees yet.")
	assert.Contains(t, page, `<dd id="stats-total">0</dd>`)
}
