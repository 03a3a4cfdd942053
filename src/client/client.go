// Package client talks to the staffdesk REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type Client struct {
	HTTP *retryablehttp.Client

	baseUrl *url.URL
}

func New(baseUrl string, logger *zerolog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, errors.WithMessagef(err, "Invalid API URL %q", baseUrl)
	}

	httpClient := retryablehttp.NewClient()
	httpClient.Logger = config.RetryableLogger{Logger: logger.With().Str("component", "Client").Logger()}
	httpClient.RetryMax = 3
	httpClient.RetryWaitMax = 5 * time.Second
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	httpClient.CheckRetry = checkRetry

	return &Client{HTTP: httpClient, baseUrl: parsed}, nil
}

type noRetryKey struct{}

// A POST that failed after reaching the server may have been committed,
// so only idempotent requests are retried.
func checkRetry(ctx context.Context, res *http.Response, err error) (bool, error) {
	if noRetry, _ := ctx.Value(noRetryKey{}).(bool); noRetry {
		return false, ctx.Err()
	}
	return retryablehttp.DefaultRetryPolicy(ctx, res, err)
}

// APIError is an error body returned by the API.
type APIError struct {
	StatusCode int
	Message    string   `json:"error"`
	Fields     []string `json:"fields"`
}

func (self *APIError) Error() string {
	if len(self.Fields) > 0 {
		return fmt.Sprintf("%d: %s: %v", self.StatusCode, self.Message, self.Fields)
	}
	return fmt.Sprintf("%d: %s", self.StatusCode, self.Message)
}

// Unwrap exposes the domain error a response stands for, if any.
func (self *APIError) Unwrap() error {
	switch {
	case self.StatusCode == http.StatusNotFound && self.Message == domain.ErrNotFound.Error():
		return domain.ErrNotFound
	case self.StatusCode == http.StatusBadRequest && self.Message == domain.ErrDuplicateEmail.Error():
		return domain.ErrDuplicateEmail
	case self.StatusCode == http.StatusBadRequest && len(self.Fields) > 0:
		return &domain.MissingFieldsError{Fields: self.Fields}
	}
	return nil
}

func (self *Client) Employees(ctx context.Context) ([]domain.Employee, error) {
	var res struct {
		Data []domain.Employee `json:"data"`
	}
	if err := self.do(ctx, http.MethodGet, "/api/employees", nil, &res); err != nil {
		return nil, errors.WithMessage(err, "While listing Employees")
	}
	return res.Data, nil
}

func (self *Client) Employee(ctx context.Context, id int64) (*domain.Employee, error) {
	var res struct {
		Data domain.Employee `json:"data"`
	}
	if err := self.do(ctx, http.MethodGet, employeePath(id), nil, &res); err != nil {
		return nil, errors.WithMessagef(err, "While getting Employee %d", id)
	}
	return &res.Data, nil
}

// Create returns the ID assigned to the new employee.
func (self *Client) Create(ctx context.Context, input domain.EmployeeInput) (int64, error) {
	var res struct {
		Id int64 `json:"id"`
	}
	if err := self.do(ctx, http.MethodPost, "/api/employees", input, &res); err != nil {
		return 0, errors.WithMessage(err, "While creating Employee")
	}
	return res.Id, nil
}

func (self *Client) Update(ctx context.Context, id int64, input domain.EmployeeInput) error {
	return errors.WithMessagef(
		self.do(ctx, http.MethodPut, employeePath(id), input, nil),
		"While updating Employee %d", id,
	)
}

func (self *Client) Delete(ctx context.Context, id int64) error {
	return errors.WithMessagef(
		self.do(ctx, http.MethodDelete, employeePath(id), nil, nil),
		"While deleting Employee %d", id,
	)
}

func (self *Client) Statistics(ctx context.Context) (repository.EmployeeStatistics, error) {
	var res struct {
		Data repository.EmployeeStatistics `json:"data"`
	}
	if err := self.do(ctx, http.MethodGet, "/api/stats", nil, &res); err != nil {
		return res.Data, errors.WithMessage(err, "While getting statistics")
	}
	return res.Data, nil
}

func employeePath(id int64) string {
	return "/api/employees/" + strconv.FormatInt(id, 10)
}

func (self *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		enc, err := json.Marshal(body)
		if err != nil {
			return errors.WithMessage(err, "While encoding request body")
		}
		reqBody = bytes.NewReader(enc)
	}

	if method == http.MethodPost {
		ctx = context.WithValue(ctx, noRetryKey{}, true)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, self.baseUrl.JoinPath(path).String(), reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := self.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if err := json.NewDecoder(res.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(res.StatusCode)
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	return errors.WithMessage(json.NewDecoder(res.Body).Decode(result), "While decoding response")
}
