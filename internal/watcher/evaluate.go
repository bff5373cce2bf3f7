package watcher

import (
	"fmt"

	"exit_sentinel/internal/models"

	"github.com/shopspring/decimal"
)

// result is the outcome of evaluating one position record.
type result struct {
	action   models.Action
	trigger  string
	removed  bool // the position was sold; delete the row
	hwmDirty bool // the high-water mark cell changed (raised or cleared)
}

var hundred = decimal.NewFromInt(100)

// evaluate runs the exit decision for one record against the current price
// and held quantity, mutating rec.HighWaterMark in place.
//
// Branches, in order: invalid cost, no position, arm / de-arm, trailing
// stop, hard stop-loss. The trailing-stop check deliberately uses the mark
// as updated this same cycle, so a position carrying a mark from an earlier
// pass can stay armed and trail-sell within a single evaluation when the
// price has already retreated far enough.
func (w *Watcher) evaluate(rec *models.PositionRecord, price, qty decimal.Decimal) result {
	if rec.CostBasis == nil || rec.CostBasis.IsZero() {
		return result{action: models.ActionSkip, trigger: "Invalid cost"}
	}
	if !qty.IsPositive() {
		return result{action: models.ActionNoPosition, trigger: "Qty=0"}
	}

	changePct := pctChange(*rec.CostBasis, price)
	res := result{
		action:  models.ActionHold,
		trigger: fmt.Sprintf("Δ=%s%% @ %s", changePct.StringFixed(2), price.StringFixed(4)),
	}

	// Arm, raise the mark, or de-arm. The mark only ever goes up while
	// armed; dropping below the arm threshold clears it entirely.
	if changePct.GreaterThanOrEqual(w.armPct) {
		if rec.HighWaterMark == nil || price.GreaterThan(*rec.HighWaterMark) {
			p := price
			rec.HighWaterMark = &p
			res.hwmDirty = true
		}
		res.action = models.ActionArmed
	} else if rec.HighWaterMark != nil {
		rec.HighWaterMark = nil
		res.hwmDirty = true
	}

	// Trailing stop: price has retreated TrailPct from the mark.
	if rec.HighWaterMark != nil {
		hwm := *rec.HighWaterMark
		floor := hwm.Mul(hundred.Sub(w.trailPct)).Div(hundred)
		if price.LessThanOrEqual(floor) {
			if _, err := w.provider.PlaceMarketSell(rec.Ticker, qty); err != nil {
				res.action = models.ActionSellError
				res.trigger = fmt.Sprintf("TRAIL: %v", err)
				return res
			}
			res.action = models.ActionSellTrail
			res.trigger = fmt.Sprintf("HWM=%s hit @ %s", hwm.StringFixed(4), price.StringFixed(4))
			res.removed = true
			return res
		}
	}

	// Hard stop-loss on the cost basis.
	if changePct.LessThanOrEqual(w.stopPct.Neg()) {
		if _, err := w.provider.PlaceMarketSell(rec.Ticker, qty); err != nil {
			res.action = models.ActionSellError
			res.trigger = fmt.Sprintf("STOP: %v", err)
			return res
		}
		res.action = models.ActionSellStop
		res.removed = true
	}

	return res
}
