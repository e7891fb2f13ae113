package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlasqa/internal/countries/models"
	"atlasqa/internal/platform/metrics"
	"atlasqa/pkg/testutil"
)

func TestFetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns decoded records and sends the field selection", func(t *testing.T) {
		api := testutil.NewCountriesAPI(t, testutil.SampleCountries())
		c := New(api.URL())

		countries := c.FetchAll(ctx, models.DefaultFields)
		require.Len(t, countries, len(testutil.SampleCountries()))
		assert.Equal(t, "South Africa", countries[0].CommonName())
		assert.Equal(t, []string{"/v3.1/all?fields=name,cca3,region,status,independent,unMember"}, api.Requests())
	})

	t.Run("omits the fields parameter when no fields are selected", func(t *testing.T) {
		api := testutil.NewCountriesAPI(t, nil)
		c := New(api.URL())

		countries := c.FetchAll(ctx, nil)
		assert.NotNil(t, countries)
		assert.Empty(t, countries)
		assert.Equal(t, []string{"/v3.1/all"}, api.Requests())
	})

	t.Run("HTTP 500 yields an empty slice", func(t *testing.T) {
		api := testutil.NewCountriesAPI(t, testutil.SampleCountries())
		api.FailWith(http.StatusInternalServerError, "upstream exploded")
		c := New(api.URL())

		var countries []models.Country
		assert.NotPanics(t, func() { countries = c.FetchAll(ctx, models.DefaultFields) })
		assert.NotNil(t, countries)
		assert.Empty(t, countries)
	})

	t.Run("malformed JSON yields an empty slice", func(t *testing.T) {
		api := testutil.NewCountriesAPI(t, nil)
		api.ServeRaw(`[{"name": `)
		c := New(api.URL())

		assert.Empty(t, c.FetchAll(ctx, models.DefaultFields))
	})

	t.Run("unreachable host yields an empty slice", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		assert.Empty(t, New(url).FetchAll(ctx, models.DefaultFields))
	})
}

func TestFetchByCode(t *testing.T) {
	ctx := context.Background()
	api := testutil.NewCountriesAPI(t, testutil.SampleCountries())
	c := New(api.URL())

	t.Run("returns the first element", func(t *testing.T) {
		country, ok := c.FetchByCode(ctx, "zaf")
		require.True(t, ok)
		assert.Equal(t, "ZAF", country.CCA3)
		assert.Len(t, country.Languages, 11)
	})

	t.Run("unknown code is absent", func(t *testing.T) {
		country, ok := c.FetchByCode(ctx, "XYZ")
		assert.False(t, ok)
		assert.Equal(t, models.Country{}, country)
	})

	t.Run("empty code is absent without a request", func(t *testing.T) {
		before := len(api.Requests())
		_, ok := c.FetchByCode(ctx, "  ")
		assert.False(t, ok)
		assert.Len(t, api.Requests(), before)
	})
}

func TestStrictErrorsAreCategorized(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		status   int
		body     string
		category ErrorCategory
		retry    bool
	}{
		{"server error", http.StatusInternalServerError, "boom", ErrorProviderOutage, true},
		{"bad gateway", http.StatusBadGateway, "", ErrorProviderOutage, true},
		{"not found", http.StatusNotFound, "", ErrorNotFound, false},
		{"rate limited", http.StatusTooManyRequests, "", ErrorRateLimited, true},
		{"gateway timeout", http.StatusGatewayTimeout, "", ErrorTimeout, true},
		{"bad json", http.StatusOK, "{not json", ErrorBadData, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := testutil.NewCountriesAPI(t, nil)
			api.FailWith(tc.status, tc.body)

			_, err := New(api.URL()).All(ctx, models.DefaultFields)
			require.Error(t, err)
			assert.Equal(t, tc.category, GetCategory(err))
			assert.Equal(t, tc.retry, IsRetryable(err))

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, opFetchAll, apiErr.Operation)
		})
	}

	t.Run("empty array from alpha is not found", func(t *testing.T) {
		api := testutil.NewCountriesAPI(t, nil)
		api.ServeRaw(`[]`)

		_, err := New(api.URL()).ByCode(ctx, "ZAF")
		assert.Equal(t, ErrorNotFound, GetCategory(err))
	})

	t.Run("deadline maps to timeout", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer slow.Close()

		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err := New(slow.URL).All(ctx, nil)
		assert.Equal(t, ErrorTimeout, GetCategory(err))
	})

	t.Run("foreign errors are internal", func(t *testing.T) {
		assert.Equal(t, ErrorInternal, GetCategory(assert.AnError))
		assert.False(t, IsRetryable(assert.AnError))
	})
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		err      error
		category ErrorCategory
		retry    bool
	}{
		{"connection refused", 0, errors.New("dial tcp: connection refused"), ErrorProviderOutage, true},
		{"deadline", 0, fmt.Errorf("get: %w", context.DeadlineExceeded), ErrorTimeout, true},
		{"cancelled", 0, context.Canceled, ErrorInternal, false},
		{"rate limited", http.StatusTooManyRequests, nil, ErrorRateLimited, true},
		{"server error", http.StatusServiceUnavailable, nil, ErrorProviderOutage, true},
		{"missing code", http.StatusNotFound, nil, ErrorNotFound, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Classify("load /alpha/USA", tc.status, tc.err)
			require.Error(t, err)
			assert.Equal(t, tc.category, GetCategory(err))
			assert.Equal(t, tc.retry, IsRetryable(err))
		})
	}

	t.Run("success and redirects are not errors", func(t *testing.T) {
		assert.NoError(t, Classify("load /all", http.StatusOK, nil))
		assert.NoError(t, Classify("load /all", http.StatusMovedPermanently, nil))
	})

	t.Run("status is kept on the error", func(t *testing.T) {
		var apiErr *Error
		require.ErrorAs(t, Classify("load /all", http.StatusBadGateway, nil), &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	})
}

func TestFetchMetrics(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	api := testutil.NewCountriesAPI(t, testutil.SampleCountries())
	c := New(api.URL(), WithMetrics(m))

	c.FetchAll(context.Background(), models.DefaultFields)
	api.FailWith(http.StatusServiceUnavailable, "")
	c.FetchAll(context.Background(), models.DefaultFields)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.FetchTotal.WithLabelValues(opFetchAll, "ok")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.FetchTotal.WithLabelValues(opFetchAll, string(ErrorProviderOutage))))
}
