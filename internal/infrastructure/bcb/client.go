// Package bcb talks to the Banco Central do Brasil SGS open-data API.
package bcb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"rate_audit/pkg/contextx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	DefaultBaseURL = "https://api.bcb.gov.br"

	dateLayout   = "02/01/2006"
	maxBodyBytes = 1 << 20
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrNoObservations   = errors.New("series has no observations")
)

// Observation is a single point of an SGS series. Value is kept exactly as
// published (for the lending-rate series: annual percentage).
type Observation struct {
	Date  time.Time
	Value decimal.Decimal
}

type observationSchema struct {
	Data  string `json:"data"`
	Valor string `json:"valor"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns an SGS client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// LatestValue fetches the most recent observation of the series.
func (c *Client) LatestValue(ctx context.Context, seriesID int) (Observation, error) {
	endpoint := fmt.Sprintf("%s/dados/serie/bcdata.sgs.%d/dados/ultimos/1?formato=json", c.baseURL, seriesID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return Observation{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Observation{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Observation{}, fmt.Errorf("series %d: %w: %d", seriesID, ErrUnexpectedStatus, resp.StatusCode)
	}

	var points []observationSchema

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&points); err != nil {
		return Observation{}, fmt.Errorf("json.Decode: %w", err)
	}

	if len(points) == 0 {
		return Observation{}, fmt.Errorf("series %d: %w", seriesID, ErrNoObservations)
	}

	// "ultimos/1" should yield one point; take the last one if it does not.
	latest := points[len(points)-1]

	obs, err := latest.toDomain()
	if err != nil {
		return Observation{}, fmt.Errorf("series %d: %w", seriesID, err)
	}

	logger(ctx).Debug("sgs observation fetched",
		"series-id", seriesID,
		"date", latest.Data,
		"value", obs.Value.String(),
	)

	return obs, nil
}

func (s observationSchema) toDomain() (Observation, error) {
	value, err := ParseDecimal(s.Valor)
	if err != nil {
		return Observation{}, err
	}

	var date time.Time

	if s.Data != "" {
		date, err = time.Parse(dateLayout, s.Data)
		if err != nil {
			return Observation{}, fmt.Errorf("time.Parse: %w", err)
		}
	}

	return Observation{Date: date, Value: value}, nil
}

// ParseDecimal reads a number written with a comma as decimal separator
// ("25,31"). A dot-separated value is accepted as well.
func ParseDecimal(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decimal.NewFromString(%q): %w", s, err)
	}

	return d, nil
}
