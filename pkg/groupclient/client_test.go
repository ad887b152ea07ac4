package groupclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/group/v1/grp-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true, "code": 200, "message": "Success show group",
			"data": {
				"id": "grp-1",
				"name": "Flat 4B",
				"chores": [{"id": "c1", "name": "Dishes", "assigned_to": "Ana"}],
				"groceries": [{"id": "g1", "name": "Milk"}, {"id": "g2", "name": "Eggs", "purchased": true}]
			}
		}`))
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL+"/", time.Second).Fetch(context.Background(), "grp-1")

	require.NoError(t, err)
	assert.Equal(t, "Flat 4B", snap.GroupName)
	require.Len(t, snap.Chores, 1)
	assert.Equal(t, "Ana", snap.Chores[0].AssignedTo)
	assert.Len(t, snap.Groceries, 2)
	assert.True(t, snap.Groceries[1].Purchased)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"success":false}`, ErrGroupNotFound},
		{"server error", http.StatusInternalServerError, `oops`, ErrUnavailable},
		{"bad json", http.StatusOK, `{"data": [`, ErrMalformed},
		{"missing data", http.StatusOK, `{"success": true}`, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "grp")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Fetch(context.Background(), "grp")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetch_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, time.Second).Fetch(ctx, "grp")
	assert.ErrorIs(t, err, ErrUnavailable)
}
