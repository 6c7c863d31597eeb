package finance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nvdaChart = `{
  "chart": {
    "result": [{
      "meta": {
        "symbol": "NVDA",
        "currency": "USD",
        "exchangeName": "NMS",
        "longName": "NVIDIA Corporation",
        "regularMarketPrice": 110.0,
        "regularMarketTime": 1735689600,
        "chartPreviousClose": 100.0,
        "regularMarketDayHigh": 111.5,
        "regularMarketDayLow": 99.25,
        "fiftyTwoWeekHigh": 153.13,
        "fiftyTwoWeekLow": 75.61
      }
    }],
    "error": null
  }
}`

const notFoundChart = `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`

func newTestAgent(t *testing.T) *FinanceAgent {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		switch r.URL.Path {
		case "/v8/finance/chart/NVDA":
			w.Write([]byte(nvdaChart))
		case "/v8/finance/chart/GONE":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(notFoundChart))
		case "/v8/finance/chart/EMPTY":
			w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
		default:
			w.Write([]byte(notFoundChart))
		}
	}))
	t.Cleanup(server.Close)

	return NewFinanceAgent(utils.PromptSet{}, utils.NewConfig(map[string]string{"YAHOO_FINANCE_API_BASE": server.URL}))
}

func TestHandleStockPrice(t *testing.T) {
	fa := newTestAgent(t)

	out, err := fa.handleStockPrice(context.Background(), `{"symbol": " nvda "}`)
	require.NoError(t, err)

	assert.Equal(t, "NVDA", out["symbol"])
	assert.Equal(t, "NVIDIA Corporation", out["name"])
	assert.Equal(t, "USD", out["currency"])
	assert.Equal(t, 110.0, out["price"])
	assert.Equal(t, 10.0, out["change"])
	assert.Equal(t, 10.0, out["change_percent"])
	assert.Equal(t, "2025-01-01T00:00:00Z", out["as_of"])
}

func TestHandleStockPrice_Errors(t *testing.T) {
	fa := newTestAgent(t)

	tests := []struct {
		name      string
		arguments string
	}{
		{name: "invalid json", arguments: `{`},
		{name: "empty symbol", arguments: `{"symbol": ""}`},
		{name: "bad characters", arguments: `{"symbol": "NV DA"}`},
		{name: "unknown symbol status", arguments: `{"symbol": "GONE"}`},
		{name: "unknown symbol body", arguments: `{"symbol": "ZZZZ"}`},
		{name: "no result", arguments: `{"symbol": "EMPTY"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fa.handleStockPrice(context.Background(), tt.arguments)
			assert.Error(t, err)
		})
	}
}
