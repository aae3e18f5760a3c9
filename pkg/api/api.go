// Package api provides types and functions to interact with the Spanish government
// fuel price API (MITECO "EstacionesTerrestres" service).
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ApiResultOK    = "OK"
	DefaultTimeout = 30 * time.Second
	DefaultURL     = "https://sedeaplicaciones.minetur.gob.es/ServiciosRESTCarburantes/PreciosCarburantes/EstacionesTerrestres/"
)

var (
	// ErrUnexpectedStatus is returned when the feed answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrResultNotOK is returned when the feed envelope reports a failed query.
	ErrResultNotOK = errors.New("API returned non-OK result")
)

// FuelPriceAPI provides methods to fetch fuel price data from the official API.
type FuelPriceAPI struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a FuelPriceAPI.
type Option func(*FuelPriceAPI)

// WithBaseURL points the client at a different feed endpoint.
func WithBaseURL(u string) Option {
	return func(api *FuelPriceAPI) {
		if u != "" {
			api.baseURL = u
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(api *FuelPriceAPI) {
		if c != nil {
			api.httpClient = c
		}
	}
}

// NewFuelPriceAPI creates a new FuelPriceAPI client with default settings.
func NewFuelPriceAPI(opts ...Option) *FuelPriceAPI {
	api := &FuelPriceAPI{
		baseURL: DefaultURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(api)
	}
	return api
}

// FetchPrices fetches the latest available fuel station prices.
func (api *FuelPriceAPI) FetchPrices(ctx context.Context) (*GasStationList, error) {
	return api.fetch(ctx, api.baseURL)
}

// FetchPricesForDate fetches fuel station prices for a specific date from the
// historic endpoint.
func (api *FuelPriceAPI) FetchPricesForDate(ctx context.Context, date time.Time) (*GasStationList, error) {
	base := strings.TrimSuffix(api.baseURL, "/")
	if !strings.HasSuffix(base, "Hist") {
		base = strings.Replace(base, "EstacionesTerrestres", "EstacionesTerrestresHist", 1)
	}
	return api.fetch(ctx, fmt.Sprintf("%s/%s", base, date.Format("02-01-2006")))
}

// ForDate returns a fetcher bound to the historic prices of date.
func (api *FuelPriceAPI) ForDate(date time.Time) *DateFetcher {
	return &DateFetcher{api: api, date: date}
}

// DateFetcher fetches the historic snapshot of a single day.
type DateFetcher struct {
	api  *FuelPriceAPI
	date time.Time
}

func (f *DateFetcher) FetchPrices(ctx context.Context) (*GasStationList, error) {
	return f.api.FetchPricesForDate(ctx, f.date)
}

func (api *FuelPriceAPI) fetch(ctx context.Context, url string) (*GasStationList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := api.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var pricesResponse GasStationList
	if err := json.Unmarshal(body, &pricesResponse); err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	// The envelope is optional in mirrors of the feed; only an explicit failure counts.
	if pricesResponse.ResultadoConsulta != "" && pricesResponse.ResultadoConsulta != ApiResultOK {
		return nil, fmt.Errorf("%w: %s", ErrResultNotOK, pricesResponse.ResultadoConsulta)
	}

	return &pricesResponse, nil
}
