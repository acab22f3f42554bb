package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleWorksheets drives one Google spreadsheet through the Sheets API.
type GoogleWorksheets struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleWorksheets authorizes a Sheets client from service-account
// credentials JSON and binds it to one spreadsheet.
func NewGoogleWorksheets(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*GoogleWorksheets, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &GoogleWorksheets{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

func (g *GoogleWorksheets) sheetExists(ctx context.Context, sheet string) (bool, error) {
	doc, err := g.svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to load spreadsheet metadata: %w", err)
	}
	for _, s := range doc.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			return true, nil
		}
	}
	return false, nil
}

func (g *GoogleWorksheets) Header(ctx context.Context, sheet string) ([]string, error) {
	exists, err := g.sheetExists(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	resp, err := g.svc.Spreadsheets.Values.
		Get(g.spreadsheetID, fmt.Sprintf("'%s'!1:1", sheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", sheet, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return toStringRow(resp.Values[0]), nil
}

func (g *GoogleWorksheets) EnsureSheet(ctx context.Context, sheet string, header []string) error {
	exists, err := g.sheetExists(ctx, sheet)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: sheet},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	return g.AppendRow(ctx, sheet, headerRow)
}

func (g *GoogleWorksheets) AppendRow(ctx context.Context, sheet string, row []interface{}) error {
	body := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.
		Append(g.spreadsheetID, fmt.Sprintf("'%s'!A1", sheet), body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", sheet, err)
	}
	return nil
}

func (g *GoogleWorksheets) Rows(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.
		Get(g.spreadsheetID, fmt.Sprintf("'%s'", sheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rows = append(rows, toStringRow(row))
	}
	return rows, nil
}

func toStringRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = fmt.Sprint(cell)
	}
	return out
}
