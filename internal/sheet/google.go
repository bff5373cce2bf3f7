package sheet

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheetStore is the production RowStore, backed by one worksheet of a
// Google spreadsheet via the Sheets v4 API.
type GoogleSheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	sheetID       int64 // numeric ID of the worksheet, needed for row deletion
}

// NewGoogleSheetStore authenticates with service-account JSON credentials and
// resolves the worksheet's numeric sheet ID by title.
func NewGoogleSheetStore(ctx context.Context, credsJSON []byte, spreadsheetID, worksheet string) (*GoogleSheetStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credsJSON),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	meta, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == worksheet {
			return &GoogleSheetStore{
				svc:           svc,
				spreadsheetID: spreadsheetID,
				worksheet:     worksheet,
				sheetID:       s.Properties.SheetId,
			}, nil
		}
	}
	return nil, fmt.Errorf("worksheet %q not found in spreadsheet %s", worksheet, spreadsheetID)
}

func (g *GoogleSheetStore) cellRange(row, col int) string {
	return fmt.Sprintf("%s!%s%d", g.worksheet, colLetter(col), row)
}

func (g *GoogleSheetStore) ReadCell(row, col int) (string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.cellRange(row, col)).Do()
	if err != nil {
		return "", fmt.Errorf("reading cell %s: %w", g.cellRange(row, col), err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}

func (g *GoogleSheetStore) WriteCell(row, col int, value string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, g.cellRange(row, col), vr).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("writing cell %s: %w", g.cellRange(row, col), err)
	}
	return nil
}

// DeleteRow removes the whole row via a DeleteDimension request. The API
// shifts all later rows up, matching the RowStore contract.
func (g *GoogleSheetStore) DeleteRow(row int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    g.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1), // API rows are 0-based, end exclusive
					EndIndex:   int64(row),
				},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Do(); err != nil {
		return fmt.Errorf("deleting row %d: %w", row, err)
	}
	return nil
}

func (g *GoogleSheetStore) ColumnValues(col int) ([]string, error) {
	rng := fmt.Sprintf("%s!%s:%s", g.worksheet, colLetter(col), colLetter(col))
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Do()
	if err != nil {
		return nil, fmt.Errorf("reading column %s: %w", colLetter(col), err)
	}

	values := make([]string, 0, len(resp.Values))
	for _, rowVals := range resp.Values {
		if len(rowVals) == 0 {
			values = append(values, "")
			continue
		}
		values = append(values, fmt.Sprint(rowVals[0]))
	}
	return values, nil
}
