package market

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
)

// MarketProvider is what the watcher needs from a brokerage: latest price,
// held quantity, and the ability to dump a position at market. Keeping it an
// interface lets the tests run against a fake instead of Alpaca.
type MarketProvider interface {
	// GetPrice returns the latest trade price. It retries transient
	// failures internally; an error means retries are exhausted.
	GetPrice(ticker string) (decimal.Decimal, error)
	// GetPositionQty returns the currently held quantity, zero when no
	// position exists.
	GetPositionQty(ticker string) decimal.Decimal
	// PlaceMarketSell submits an immediate market sell for qty shares.
	PlaceMarketSell(ticker string, qty decimal.Decimal) (*alpaca.Order, error)
}

// Price fetch retry bounds. Delays grow exponentially from the initial
// interval and are capped; after maxPriceAttempts the row gets PRICE ERROR.
const (
	priceRetryInitial = 1 * time.Second
	priceRetryMax     = 10 * time.Second
	maxPriceAttempts  = 5
)

// AlpacaProvider is the production MarketProvider. The underlying clients
// read APCA_API_KEY_ID / APCA_API_SECRET_KEY / APCA_API_BASE_URL from the
// environment themselves.
type AlpacaProvider struct {
	mdClient    *marketdata.Client
	tradeClient *alpaca.Client
}

func NewAlpacaProvider() *AlpacaProvider {
	return &AlpacaProvider{
		mdClient:    marketdata.NewClient(marketdata.ClientOpts{}),
		tradeClient: alpaca.NewClient(alpaca.ClientOpts{}),
	}
}

// GetPrice fetches the latest trade price with bounded exponential backoff.
func (a *AlpacaProvider) GetPrice(ticker string) (decimal.Decimal, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = priceRetryInitial
	policy.MaxInterval = priceRetryMax

	operation := func() (decimal.Decimal, error) {
		trade, err := a.mdClient.GetLatestTrade(ticker, marketdata.GetLatestTradeRequest{})
		if err != nil {
			return decimal.Zero, err
		}
		if trade == nil {
			return decimal.Zero, fmt.Errorf("no trade data for %s", ticker)
		}
		return decimal.NewFromFloat(trade.Price), nil
	}

	notify := func(err error, wait time.Duration) {
		log.Printf("[%s] Price fetch failed, retrying in %s: %v", ticker, wait, err)
	}

	return backoff.Retry(context.Background(), operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(maxPriceAttempts),
		backoff.WithNotify(notify))
}

// GetPositionQty returns the held quantity for ticker. Alpaca answers a
// lookup for a symbol with no open position with an error, so any failure
// collapses to zero and the row is reported as NO POSITION.
func (a *AlpacaProvider) GetPositionQty(ticker string) decimal.Decimal {
	pos, err := a.tradeClient.GetPosition(ticker)
	if err != nil || pos == nil {
		return decimal.Zero
	}
	return pos.Qty
}
