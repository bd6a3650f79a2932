// Package directory implements the client for the remote customer directory,
// a GraphQL endpoint that serves the initial seed list.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// listCustomersQuery is the single query this service consumes. The endpoint
// supports pagination via nextToken, but the seed list is small enough that
// only the first page is used.
const listCustomersQuery = `query ListCustomers {
  listCustomers {
    items {
      id
      name
      email
      role
    }
    nextToken
  }
}`

// Customer is one record as returned by the remote directory. Role values
// may arrive in arbitrary casing and are passed through verbatim.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// FetchError wraps any failure to reach or parse the remote directory.
// Callers are expected to degrade to an empty customer set rather than
// surface it as a blocking error.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("directory fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches the seed customer list from the remote directory.
type Client interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
}

type graphqlClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a directory client for the given GraphQL endpoint.
// The API key is sent as an x-api-key header on every request.
func NewClient(endpoint, apiKey string) Client {
	return &graphqlClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type listCustomersResponse struct {
	Data struct {
		ListCustomers struct {
			Items     []Customer `json:"items"`
			NextToken *string    `json:"nextToken"`
		} `json:"listCustomers"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ListCustomers issues the list query once. There is no retry; a single
// failed attempt is reported as a *FetchError.
func (c *graphqlClient) ListCustomers(ctx context.Context) ([]Customer, error) {
	body, err := json.Marshal(graphqlRequest{Query: listCustomersQuery})
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var parsed listCustomersResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("malformed response: %w", err)}
	}

	if len(parsed.Errors) > 0 {
		return nil, &FetchError{Err: fmt.Errorf("graphql error: %s", parsed.Errors[0].Message)}
	}

	return parsed.Data.ListCustomers.Items, nil
}
