package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCustomersParsesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "listCustomers")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"listCustomers": {
					"items": [
						{"id": "1", "name": "Hazel Nutt", "email": "hazel@example.com", "role": "ADMIN"},
						{"id": "2", "name": "Ben Dover", "role": "Manager"}
					],
					"nextToken": "ignored-token"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key")
	items, err := client.ListCustomers(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "Hazel Nutt", items[0].Name)
	// Role casing passed through verbatim
	assert.Equal(t, "ADMIN", items[0].Role)
	assert.Empty(t, items[1].Email)
}

func TestListCustomersUnreachableEndpoint(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "key")

	_, err := client.ListCustomers(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestListCustomersNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")
	_, err := client.ListCustomers(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "502")
}

func TestListCustomersMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": `))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")
	_, err := client.ListCustomers(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestListCustomersGraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "unauthorized"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")
	_, err := client.ListCustomers(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "unauthorized")
}
