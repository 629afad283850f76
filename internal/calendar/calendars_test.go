package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCalendars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !strings.HasSuffix(r.URL.Path, "/users/me/calendarList") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))
			return
		}
		assert.Equal(t, "reader", r.URL.Query().Get("minAccessRole"))
		_, _ = w.Write([]byte(`{
		  "items": [
		    {"id": "me@example.com", "summary": "Me", "accessRole": "owner", "primary": true},
		    {"id": "team@group.calendar.google.com", "summary": "Team", "description": "shared", "accessRole": "reader"}
		  ]
		}`))
	}))
	t.Cleanup(srv.Close)

	calendars, err := ListCalendars(context.Background(), cachedClient(t), srv.URL+"/")

	require.NoError(t, err)
	require.Len(t, calendars, 2)
	assert.Equal(t, CalendarInfo{ID: "me@example.com", Summary: "Me", AccessRole: "owner", Primary: true}, calendars[0])
	assert.Equal(t, "shared", calendars[1].Description)
	assert.False(t, calendars[1].Primary)
}

func TestListCalendars_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"invalid credentials"}}`))
	}))
	t.Cleanup(srv.Close)

	_, err := ListCalendars(context.Background(), cachedClient(t), srv.URL+"/")

	assert.Equal(t, RemoteQueryFailure, KindOf(err))
}
