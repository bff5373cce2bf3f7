package market

import (
	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"
)

// PlaceMarketSell submits a day market sell order for qty shares of ticker.
func (a *AlpacaProvider) PlaceMarketSell(ticker string, qty decimal.Decimal) (*alpaca.Order, error) {
	req := alpaca.PlaceOrderRequest{
		Symbol:      ticker,
		Qty:         &qty,
		Side:        alpaca.Sell,
		Type:        alpaca.Market,
		TimeInForce: alpaca.Day,
	}
	return a.tradeClient.PlaceOrder(req)
}
