package bcb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rate_audit/internal/infrastructure/bcb"
	"rate_audit/pkg/httpx"
)

func TestClientLatestValue(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name      string
		status    int
		body      string
		wantValue string
		wantDate  time.Time
		wantErr   error
		anyErr    bool
	}{
		{
			name:      "Latest observation",
			status:    http.StatusOK,
			body:      `[{"data":"01/09/2025","valor":"52,31"}]`,
			wantValue: "52.31",
			wantDate:  time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Dot separator",
			status:    http.StatusOK,
			body:      `[{"data":"01/08/2025","valor":"20.5"}]`,
			wantValue: "20.5",
			wantDate:  time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Empty series",
			status:  http.StatusOK,
			body:    `[]`,
			wantErr: bcb.ErrNoObservations,
		},
		{
			name:    "Upstream failure",
			status:  http.StatusBadGateway,
			body:    `oops`,
			wantErr: bcb.ErrUnexpectedStatus,
		},
		{
			name:   "Unparsable value",
			status: http.StatusOK,
			body:   `[{"data":"01/09/2025","valor":"n/d"}]`,
			anyErr: true,
		},
		{
			name:   "Not JSON",
			status: http.StatusOK,
			body:   `<html></html>`,
			anyErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var gotPath, gotQuery string

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery

				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body)) //nolint:errcheck
			}))
			defer server.Close()

			client := bcb.NewClient(server.URL+"/", httpx.NewClient(time.Second))

			obs, err := client.LatestValue(context.Background(), 25401)

			rq.Equal("/dados/serie/bcdata.sgs.25401/dados/ultimos/1", gotPath)
			rq.Equal("formato=json", gotQuery)

			switch {
			case tc.wantErr != nil:
				rq.ErrorIs(err, tc.wantErr)
			case tc.anyErr:
				rq.Error(err)
			default:
				rq.NoError(err)
				rq.Equal(tc.wantValue, obs.Value.String())
				rq.True(tc.wantDate.Equal(obs.Date))
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := bcb.NewClient(server.URL, httpx.NewClient(50*time.Millisecond))

	_, err := client.LatestValue(context.Background(), 25402)
	rq.Error(err)
}

func TestParseDecimal(t *testing.T) {
	rq := require.New(t)

	d, err := bcb.ParseDecimal(" 25,31 ")
	rq.NoError(err)
	rq.Equal("25.31", d.String())

	_, err = bcb.ParseDecimal("")
	rq.Error(err)
}
