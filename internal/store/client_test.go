package store

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCollectionIDs_Root(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		fmt.Fprint(w, `{"collectionIds":["orders","customers"]}`)
	}))
	defer srv.Close()

	c := New("demo-project", "secret-token", WithBaseURL(srv.URL))
	ids, err := c.ListCollectionIDs(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"orders", "customers"}, ids)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "/v1/projects/demo-project/databases/(default)/documents:listCollectionIds", gotPath)
}

func TestListCollectionIDs_UnderDocument(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"collectionIds":["items"]}`)
	}))
	defer srv.Close()

	c := New("demo-project", "secret-token", WithBaseURL(srv.URL))
	ids, err := c.ListCollectionIDs(context.Background(), "orders/o1")
	require.NoError(t, err)

	assert.Equal(t, []string{"items"}, ids)
	assert.Equal(t, "/v1/projects/demo-project/databases/(default)/documents/orders/o1:listCollectionIds", gotPath)
}

func TestListDocuments(t *testing.T) {
	var gotPageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("pageSize")
		fmt.Fprint(w, `{"documents":[
			{"name":"projects/demo/databases/(default)/documents/users/u1",
			 "fields":{"name":{"stringValue":"alice"},"age":{"integerValue":30}}}
		]}`)
	}))
	defer srv.Close()

	c := New("demo-project", "secret-token", WithBaseURL(srv.URL))
	docs, err := c.ListDocuments(context.Background(), "users", 10)
	require.NoError(t, err)

	assert.Equal(t, "10", gotPageSize)
	require.Len(t, docs, 1)
	assert.Equal(t, "u1", docs[0].ID())
	assert.Contains(t, docs[0].Fields, "name")
	assert.Contains(t, docs[0].Fields, "age")
}

func TestListDocuments_EmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New("demo-project", "secret-token", WithBaseURL(srv.URL))
	docs, err := c.ListDocuments(context.Background(), "users", 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStatusError_IncludesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":"permission denied"}`)
	}))
	defer srv.Close()

	c := New("demo-project", "bad-token", WithBaseURL(srv.URL))
	_, err := c.ListDocuments(context.Background(), "users", 10)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "403")
	assert.Contains(t, statusErr.Error(), "permission denied")
}

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		docName  string
		expected string
	}{
		{
			name:     "full resource name",
			docName:  "projects/p/databases/(default)/documents/users/u1",
			expected: "u1",
		},
		{
			name:     "bare name",
			docName:  "u1",
			expected: "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Document{Name: tt.docName}
			assert.Equal(t, tt.expected, d.ID())
		})
	}
}
