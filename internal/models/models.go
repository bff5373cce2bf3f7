package models

import "github.com/shopspring/decimal"

// Action is the decision label written back to the sheet for every
// evaluated row. The values mirror what an operator sees in the Action
// column, so they are display strings rather than enum codes.
type Action string

const (
	ActionSkip       Action = "SKIP"        // cost basis missing or unparsable
	ActionNoPosition Action = "NO POSITION" // broker reports zero held quantity
	ActionPriceError Action = "PRICE ERROR" // price fetch exhausted its retries
	ActionHold       Action = "HOLD"        // below arm threshold, nothing to do
	ActionArmed      Action = "ARMED"       // profit above threshold, trailing stop live
	ActionSellTrail  Action = "SELL: TRAIL" // trailing stop fired, position liquidated
	ActionSellStop   Action = "SELL: STOP"  // hard stop-loss fired, position liquidated
	ActionSellError  Action = "SELL ERROR"  // liquidation attempt failed, row kept
)

// PositionRecord is one data row of the exit sheet.
//
// CostBasis and HighWaterMark are pointers because an empty cell is
// meaningful: a nil HighWaterMark means the position is not armed, and a
// nil CostBasis marks the row invalid until someone corrects it.
type PositionRecord struct {
	Row           int // 1-based sheet row this record was read from
	Ticker        string
	CostBasis     *decimal.Decimal
	HighWaterMark *decimal.Decimal
	Action        Action
	TriggerNote   string
	LastUpdated   string // UTC ISO-8601, seconds precision, trailing Z
}

// Armed reports whether the trailing stop is live for this record.
func (r *PositionRecord) Armed() bool {
	return r.HighWaterMark != nil
}
