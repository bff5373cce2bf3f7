package watcher

import (
	"fmt"
	"log"
	"strings"

	"exit_sentinel/internal/config"
	"exit_sentinel/internal/market"
	"exit_sentinel/internal/models"
	"exit_sentinel/internal/notifications"
	"exit_sentinel/internal/sheet"

	"github.com/shopspring/decimal"
)

// Watcher applies the exit decision engine to every data row of the sheet,
// one pass at a time. Passes never overlap; the scheduler in cmd drives them.
type Watcher struct {
	store    sheet.RowStore
	provider market.MarketProvider
	config   *config.Config

	// Thresholds converted once so the per-row math stays in decimal.
	armPct   decimal.Decimal
	trailPct decimal.Decimal
	stopPct  decimal.Decimal
}

func New(cfg *config.Config, store sheet.RowStore, provider market.MarketProvider) *Watcher {
	return &Watcher{
		store:    store,
		provider: provider,
		config:   cfg,
		armPct:   decimal.NewFromFloat(cfg.ProfitArmPct),
		trailPct: decimal.NewFromFloat(cfg.TrailPct),
		stopPct:  decimal.NewFromFloat(cfg.StopLossPct),
	}
}

// Poll runs one reconciliation pass and swallows every failure. A bad pass
// must never take down the long-running process; the next tick retries.
func (w *Watcher) Poll() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Pass panicked: %v", r)
		}
	}()

	if err := w.RunOnce(); err != nil {
		log.Printf("ERROR: Pass failed: %v", err)
	}
}

// RunOnce reconciles the live row range top to bottom. The live row count
// comes from the ticker column; with only a header present there is nothing
// to do. When a row is deleted the cursor holds still, because the next
// physical row has just shifted into the current index.
func (w *Watcher) RunOnce() error {
	tickers, err := w.store.ColumnValues(sheet.ColTicker)
	if err != nil {
		return fmt.Errorf("reading ticker column: %w", err)
	}

	lastRow := len(tickers)
	if lastRow < 2 {
		return nil
	}

	row := 2
	for row <= lastRow {
		if w.processRow(row) {
			lastRow--
		} else {
			row++
		}
	}
	return nil
}

// processRow evaluates one sheet row end to end and reports whether the row
// was removed. Cell-level failures are logged and leave the cursor advancing
// normally so one broken row cannot stall the pass.
func (w *Watcher) processRow(row int) bool {
	ticker, err := w.store.ReadCell(row, sheet.ColTicker)
	if err != nil {
		log.Printf("ERROR: Reading ticker at row %d: %v", row, err)
		return false
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return false
	}

	costRaw, err := w.store.ReadCell(row, sheet.ColCost)
	if err != nil {
		log.Printf("ERROR: Reading cost at row %d: %v", row, err)
		return false
	}
	hwmRaw, err := w.store.ReadCell(row, sheet.ColHWM)
	if err != nil {
		log.Printf("ERROR: Reading high-water mark at row %d: %v", row, err)
		return false
	}

	rec := &models.PositionRecord{
		Row:           row,
		Ticker:        ticker,
		CostBasis:     parseDecimalOrNil(costRaw),
		HighWaterMark: parseDecimalOrNil(hwmRaw),
	}

	// Invalid cost needs no broker calls; evaluate records the skip.
	if rec.CostBasis == nil || rec.CostBasis.IsZero() {
		return w.applyResult(rec, w.evaluate(rec, decimal.Zero, decimal.Zero))
	}

	qty := w.provider.GetPositionQty(ticker)
	if !qty.IsPositive() {
		return w.applyResult(rec, w.evaluate(rec, decimal.Zero, qty))
	}

	price, err := w.provider.GetPrice(ticker)
	if err != nil {
		// Retries are already exhausted inside the provider. Record the
		// failure for this row only and move on.
		w.writeRowCells(row, models.ActionPriceError, err.Error())
		return false
	}

	return w.applyResult(rec, w.evaluate(rec, price, qty))
}

// applyResult writes the evaluation back to the sheet and, on a successful
// sell, deletes the row. Returns true when the row is gone.
func (w *Watcher) applyResult(rec *models.PositionRecord, res result) bool {
	if res.hwmDirty {
		val := ""
		if rec.HighWaterMark != nil {
			val = rec.HighWaterMark.StringFixed(6)
		}
		if err := w.store.WriteCell(rec.Row, sheet.ColHWM, val); err != nil {
			log.Printf("ERROR: Writing high-water mark at row %d: %v", rec.Row, err)
		}
	}

	w.writeRowCells(rec.Row, res.action, res.trigger)
	log.Printf("[%s] %s (%s)", rec.Ticker, res.action, res.trigger)

	switch res.action {
	case models.ActionSellTrail, models.ActionSellStop:
		notifications.Notify(fmt.Sprintf("💸 *%s* %s\n%s", rec.Ticker, res.action, res.trigger))
	case models.ActionSellError:
		notifications.Notify(fmt.Sprintf("⚠️ *%s* SELL FAILED\n%s", rec.Ticker, res.trigger))
	}

	if !res.removed {
		return false
	}

	if err := w.store.DeleteRow(rec.Row); err != nil {
		// The sell already went through; a stale row is operator cleanup,
		// not a reason to re-count it in this pass.
		log.Printf("WARN: Failed to remove row %d: %v", rec.Row, err)
	} else {
		log.Printf("INFO: Removed sold row %d", rec.Row)
	}
	return true
}

// writeRowCells stamps the action, trigger note and timestamp columns.
// Every evaluated row gets these regardless of outcome, so the sheet always
// shows the latest attempt.
func (w *Watcher) writeRowCells(row int, action models.Action, trigger string) {
	cells := []struct {
		col int
		val string
	}{
		{sheet.ColAction, string(action)},
		{sheet.ColTrigger, trigger},
		{sheet.ColTime, nowUTCISO()},
	}
	for _, c := range cells {
		if err := w.store.WriteCell(row, c.col, c.val); err != nil {
			log.Printf("ERROR: Writing row %d col %d: %v", row, c.col, err)
		}
	}
}
