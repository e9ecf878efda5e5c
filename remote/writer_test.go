package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
)

func samples() []Sample {
	return []Sample{
		{
			Labels:    []*prometheus.Label{{Name: "__name__", Value: "calc_result"}, {Name: "expr", Value: "a"}},
			Value:     5,
			Timestamp: 1000,
		},
		{
			Labels:    []*prometheus.Label{{Name: "__name__", Value: "calc_result"}, {Name: "expr", Value: "b"}},
			Value:     -2,
			Timestamp: 1000,
		},
	}
}

func TestWrite(t *testing.T) {
	var got prometheus.WriteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prom/api/v1/write", r.URL.Path)
		assert.Equal(t, "snappy", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "application/x-protobuf", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		if !assert.NoError(t, err) {
			return
		}
		decoded, err := snappy.Decode(nil, body)
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, proto.Unmarshal(decoded, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	w, err := NewWriter(server.URL + "/prom")
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), samples()))

	require.Len(t, got.Timeseries, 2)
	assert.Equal(t, 5.0, got.Timeseries[0].Samples[0].Value)
	assert.Equal(t, -2.0, got.Timeseries[1].Samples[0].Value)
	assert.Equal(t, "b", got.Timeseries[1].Labels[1].Value)
	require.Len(t, got.Metadata, 1)
	assert.Equal(t, "calc_result", got.Metadata[0].MetricFamilyName)
	assert.Equal(t, prometheus.MetricMetadata_GAUGE, got.Metadata[0].Type)
}

func TestWriteStatus(t *testing.T) {
	status := http.StatusInternalServerError
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	w, err := NewWriter(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	err = w.Write(context.Background(), samples())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)

	status = http.StatusBadRequest
	assert.NoError(t, w.Write(context.Background(), samples()))
}

func TestWriteNothing(t *testing.T) {
	w, err := NewWriter("http://localhost:1")
	require.NoError(t, err)
	assert.NoError(t, w.Write(context.Background(), nil))
}

func TestNewWriterInvalidUrl(t *testing.T) {
	_, err := NewWriter("localhost")
	assert.Error(t, err)

	w, err := NewWriter("http://localhost:9090")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090/api/v1/write", w.URL())
}
