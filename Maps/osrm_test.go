package Maps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Escapade/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const osrmOKBody = `{"code":"Ok","routes":[{"distance":12500,"duration":1500}]}`

func TestOSRMClientParsesRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/driving/")
		fmt.Fprint(w, osrmOKBody)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL, "")
	info, err := client.Directions(context.Background(), testOrigin, testDestination, Models.Driving)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, info.DistanceKm, 1e-9)
	assert.InDelta(t, 25.0, info.DurationMinutes, 1e-9)
	assert.False(t, info.Estimated)
}

func TestOSRMClientRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, osrmOKBody)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL, "")
	info, err := client.Directions(context.Background(), testOrigin, testDestination, Models.Driving)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.InDelta(t, 12.5, info.DistanceKm, 1e-9)
}

func TestOSRMClientGivesUpAfterRetryBudget(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL, "")
	_, err := client.Directions(context.Background(), testOrigin, testDestination, Models.Driving)
	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestOSRMClientDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL, "")
	_, err := client.Directions(context.Background(), testOrigin, testDestination, Models.Driving)
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestOSRMClientWalkingUsesFootProfile(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, osrmOKBody)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL, "")
	_, err := client.Directions(context.Background(), testOrigin, testDestination, Models.Walking)
	require.NoError(t, err)
	assert.Contains(t, path, "/route/v1/foot/")
}

func TestOSRMClientPublicTransportUsesReferenceSpeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, osrmOKBody)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL, "")
	info, err := client.Directions(context.Background(), testOrigin, testDestination, Models.PublicTransport)
	require.NoError(t, err)
	// 12.5 km on the road network at the 20 km/h transit reference speed.
	assert.InDelta(t, 12.5/20*60, info.DurationMinutes, 1e-9)
}

func TestOSRMClientHonorsCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewOSRMClient(server.URL, "")
	_, err := client.Directions(ctx, testOrigin, testDestination, Models.Driving)
	assert.Error(t, err)
}
