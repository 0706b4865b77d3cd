package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	fspath "path"
	"strconv"
	"strings"
	"time"

	"github.com/andydunstall/ringcast/simulator"
)

// StatusError is returned when the server responds with a non-200 status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(
		"%s (%d): %s",
		strings.ToLower(http.StatusText(e.StatusCode)),
		e.StatusCode,
		e.Message,
	)
}

type errorMessage struct {
	Error string `json:"error"`
}

// Client queries the simulator status API.
type Client struct {
	httpClient *http.Client

	url *url.URL
}

func NewClient(url *url.URL) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 15,
		},
		url: url,
	}
}

// Runs returns the results of recent simulations.
func (c *Client) Runs() ([]*simulator.Result, error) {
	r, err := c.request("/status/simulation/runs")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var results []*simulator.Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return results, nil
}

// Run returns the result of the simulation with the given run ID.
func (c *Client) Run(id string) (*simulator.Result, error) {
	r, err := c.request("/status/simulation/runs/" + id)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var result simulator.Result
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// Device returns the result of a device in the simulation with the given
// run ID.
func (c *Client) Device(id string, device int) (*simulator.DeviceResult, error) {
	r, err := c.request(
		"/status/simulation/runs/" + id + "/devices/" + strconv.Itoa(device),
	)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var result simulator.DeviceResult
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) request(path string) (io.ReadCloser, error) {
	url := new(url.URL)
	*url = *c.url

	url.Path = fspath.Join(url.Path, path)

	req, err := http.NewRequest(http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()

		var m errorMessage
		// Ignore the error as the body may be empty.
		_ = json.NewDecoder(resp.Body).Decode(&m)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    m.Error,
		}
	}

	return resp.Body, nil
}
