// tools.go handles registering tools for the FinanceAgent
package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-^=]{1,15}$`)

// chartResponse is the subset of the chart API we read
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	ExchangeName       string  `json:"exchangeName"`
	LongName           string  `json:"longName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
	DayHigh            float64 `json:"regularMarketDayHigh"`
	DayLow             float64 `json:"regularMarketDayLow"`
	FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
}

func (fa *FinanceAgent) registerTools() {
	stockPriceTool := agents.FunctionTool{
		Name:        "get_stock_price",
		Description: "Get the latest price and daily change for a stock ticker symbol",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"symbol": map[string]any{
					"type":        "string",
					"description": "Ticker symbol, e.g. NVDA",
				},
			},
			"additionalProperties": false,
			"required":             []string{"symbol"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return fa.handleStockPrice(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}

	fa.agent.WithTools(stockPriceTool)
}

func (fa *FinanceAgent) handleStockPrice(ctx context.Context, arguments string) (map[string]any, error) {
	var params struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	symbol := strings.ToUpper(strings.TrimSpace(params.Symbol))
	if !symbolPattern.MatchString(symbol) {
		return nil, fmt.Errorf("invalid symbol: %q", params.Symbol)
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", fa.baseURL, url.PathEscape(symbol))

	var resp chartResponse
	if err := utils.GetJSON(ctx, fa.httpClient, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("quote for %s failed: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no quote found for %s", symbol)
	}

	meta := resp.Chart.Result[0].Meta
	out := map[string]any{
		"symbol":              meta.Symbol,
		"name":                meta.LongName,
		"exchange":            meta.ExchangeName,
		"currency":            meta.Currency,
		"price":               meta.RegularMarketPrice,
		"previous_close":      meta.ChartPreviousClose,
		"day_high":            meta.DayHigh,
		"day_low":             meta.DayLow,
		"fifty_two_week_high": meta.FiftyTwoWeekHigh,
		"fifty_two_week_low":  meta.FiftyTwoWeekLow,
	}

	if meta.RegularMarketTime > 0 {
		out["as_of"] = time.Unix(meta.RegularMarketTime, 0).UTC().Format(time.RFC3339)
	}

	if meta.ChartPreviousClose > 0 {
		change := meta.RegularMarketPrice - meta.ChartPreviousClose
		out["change"] = round(change)
		out["change_percent"] = round(change / meta.ChartPreviousClose * 100)
	}

	return out, nil
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
