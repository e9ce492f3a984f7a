package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"certschool.io/infrastructure/logger"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// ErrServerError marks a 5xx answer from the remote service.
var ErrServerError = errors.New("remote service returned a server error")

// NetworkController is a JSON client for one remote service. Calls share a
// circuit breaker; GETs are retried with exponential backoff.
type NetworkController struct {
	Name    string
	BaseUrl string
	Timeout time.Duration
	Retries uint64

	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
}

func NewNetworkController(name string, baseURL string, timeout time.Duration, retries uint64) *NetworkController {
	return &NetworkController{
		Name:    name,
		BaseUrl: baseURL,
		Timeout: timeout,
		Retries: retries,
		client:  resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warning("provider circuit breaker changed state", logger.LoggerOptions{
					Key:  "provider",
					Data: name,
				}, logger.LoggerOptions{
					Key:  "from",
					Data: from.String(),
				}, logger.LoggerOptions{
					Key:  "to",
					Data: to.String(),
				})
			},
		}),
	}
}

// Post sends body as JSON. It is never retried; payment initiation is not
// idempotent on every provider.
func (n *NetworkController) Post(ctx context.Context, path string, headers map[string]string, body any) (*[]byte, *int, error) {
	return n.execute(ctx, http.MethodPost, path, headers, nil, body)
}

func (n *NetworkController) Get(ctx context.Context, path string, headers map[string]string, params map[string]string) (*[]byte, *int, error) {
	var (
		response   *[]byte
		statusCode *int
	)
	operation := func() error {
		var err error
		response, statusCode, err = n.execute(ctx, http.MethodGet, path, headers, params, nil)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = n.Timeout
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, n.Retries), ctx))
	return response, statusCode, err
}

func (n *NetworkController) execute(ctx context.Context, method string, path string, headers map[string]string, params map[string]string, body any) (*[]byte, *int, error) {
	result, err := n.breaker.Execute(func() (interface{}, error) {
		req := n.client.R().
			SetContext(ctx).
			SetHeader("Accept", "application/json").
			SetHeaders(headers)
		if params != nil {
			req.SetQueryParams(params)
		}
		if body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(body)
		}
		res, err := req.Execute(method, path)
		if err != nil {
			return nil, err
		}
		if res.StatusCode() >= http.StatusInternalServerError {
			return res, fmt.Errorf("%w: %s %s returned %d", ErrServerError, method, path, res.StatusCode())
		}
		return res, nil
	})
	res, _ := result.(*resty.Response)
	if err != nil {
		logger.Error(fmt.Sprintf("an error occured while calling %s", n.Name), logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "path",
			Data: path,
		})
	}
	if res == nil {
		return nil, nil, err
	}
	responseBody := res.Body()
	statusCode := res.StatusCode()
	return &responseBody, &statusCode, err
}
