package remote

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
)

const (
	WritePath      = "/api/v1/write"
	DefaultTimeout = 30 * time.Second
)

// Sample is one evaluated value for a labelled series.
type Sample struct {
	Labels    []*prometheus.Label
	Value     float64
	Timestamp int64
}

// StatusError is returned for non-2xx responses other than 400.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected remote write status code: %v", e.StatusCode)
}

type Writer struct {
	url    *url.URL
	client *http.Client
}

type Option func(*Writer)

func WithHTTPClient(c *http.Client) Option {
	return func(w *Writer) {
		w.client = c
	}
}

// NewWriter takes the Prometheus base url; the remote write path is appended.
func NewWriter(baseUrl string, opts ...Option) (*Writer, error) {
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid prometheus url: %q", baseUrl)
	}
	parsed.Path = path.Join(parsed.Path, WritePath)

	w := &Writer{
		url: parsed,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Writer) URL() string {
	return w.url.String()
}

func BuildRequest(samples []Sample) *prometheus.WriteRequest {
	wr := &prometheus.WriteRequest{}
	families := map[string]bool{}
	for _, s := range samples {
		wr.Timeseries = append(wr.Timeseries, &prometheus.TimeSeries{
			Labels: s.Labels,
			Samples: []*prometheus.Sample{{
				Value:     s.Value,
				Timestamp: s.Timestamp,
			}},
		})

		for _, l := range s.Labels {
			if l.Name == "__name__" && !families[l.Value] {
				families[l.Value] = true
				wr.Metadata = append(wr.Metadata, &prometheus.MetricMetadata{
					Type:             prometheus.MetricMetadata_GAUGE,
					MetricFamilyName: l.Value,
				})
			}
		}
	}
	return wr
}

func (w *Writer) Write(ctx context.Context, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	data, err := proto.Marshal(BuildRequest(samples))
	if err != nil {
		return fmt.Errorf("marshal write request: %w", err)
	}
	encoded := snappy.Encode(nil, data)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url.String(), bytes.NewReader(encoded))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-protobuf")
	req.Header.Set("Content-Encoding", "snappy")
	req.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusBadRequest {
			// possibly duplicate data? ignore it.
			log.Println("invalid data detected, ignoring it")
			return nil
		}
		return &StatusError{StatusCode: resp.StatusCode}
	}

	return nil
}
