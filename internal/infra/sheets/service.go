package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// valuesAPI is the narrow slice of the Sheets API the repository needs:
// a full worksheet snapshot plus single-cell point access, 1-based.
type valuesAPI interface {
	Fetch(ctx context.Context) ([][]string, error)
	Read(ctx context.Context, row, col int) (string, error)
	Update(ctx context.Context, row, col int, value string) error
}

// API implements valuesAPI over one worksheet of one spreadsheet.
type API struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	worksheet     string
}

func NewAPI(ctx context.Context, credentialsFile, spreadsheetID, worksheet string) (*API, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &API{svc: svc, spreadsheetID: spreadsheetID, worksheet: worksheet}, nil
}

// Fetch returns the whole worksheet as strings, header row included.
func (a *API) Fetch(ctx context.Context) ([][]string, error) {
	resp, err := a.svc.Spreadsheets.Values.Get(a.spreadsheetID, a.worksheet).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		row := make([]string, len(r))
		for j, c := range r {
			row[j] = fmt.Sprint(c)
		}
		rows[i] = row
	}
	return rows, nil
}

func (a *API) Read(ctx context.Context, row, col int) (string, error) {
	resp, err := a.svc.Spreadsheets.Values.Get(a.spreadsheetID, a.cellRange(row, col)).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}

func (a *API) Update(ctx context.Context, row, col int, value string) error {
	body := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err := a.svc.Spreadsheets.Values.Update(a.spreadsheetID, a.cellRange(row, col), body).
		ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func (a *API) cellRange(row, col int) string {
	return fmt.Sprintf("%s!%s%d", a.worksheet, columnLetter(col), row)
}

// columnLetter converts a 1-based column number to A1 notation (1 -> A,
// 27 -> AA).
func columnLetter(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}
