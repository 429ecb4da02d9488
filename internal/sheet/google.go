package sheet

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/technosurge/leadflow/pkg/logging"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleStore implements RowStore on top of a Google Sheets worksheet.
type GoogleStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *logging.Logger
}

// GoogleConfig holds configuration for the Google Sheets store.
type GoogleConfig struct {
	// CredentialsBase64 is a base64-encoded service-account JSON blob.
	CredentialsBase64 string
	SpreadsheetID     string
	SheetName         string
}

// NewGoogleStore builds a Sheets-backed RowStore. It returns an error when the
// credential blob is missing or malformed; callers treat that as "no sheet
// available" and degrade rather than abort.
func NewGoogleStore(ctx context.Context, cfg GoogleConfig, logger *logging.Logger) (*GoogleStore, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.CredentialsBase64) == "" {
		return nil, fmt.Errorf("sheet: service-account credentials not configured")
	}
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, fmt.Errorf("sheet: spreadsheet id not configured")
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Sheet1"
	}

	raw, err := base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("sheet: decode service-account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(raw),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheet: create sheets service: %w", err)
	}

	logger.Info("google sheets store connected", "spreadsheet_id", cfg.SpreadsheetID, "sheet", cfg.SheetName)
	return &GoogleStore{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger,
	}, nil
}

// Append adds a lead row after the existing rows.
func (s *GoogleStore) Append(ctx context.Context, row Row) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{row.Name, row.Email, row.Summary}},
	}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheet: append row: %w", err)
	}
	return nil
}

// Rows returns every lead row. Row 1 is the header and is skipped.
func (s *GoogleStore) Rows(ctx context.Context) ([]Row, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!A2:D", s.sheetName)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheet: read rows: %w", err)
	}

	rows := make([]Row, 0, len(resp.Values))
	for _, cells := range resp.Values {
		rows = append(rows, Row{
			Name:    cellString(cells, 0),
			Email:   cellString(cells, 1),
			Summary: cellString(cells, 2),
			Status:  cellString(cells, 3),
		})
	}
	return rows, nil
}

// UpdateStatus finds the first row whose email column matches and writes the
// status cell (column D).
func (s *GoogleStore) UpdateStatus(ctx context.Context, email, status string) error {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!B:B", s.sheetName)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheet: read email column: %w", err)
	}

	rowIndex := 0 // 1-based sheet row
	for i, cells := range resp.Values {
		if cellString(cells, 0) == email {
			rowIndex = i + 1
			break
		}
	}
	if rowIndex == 0 {
		return ErrRowNotFound
	}

	values := &sheets.ValueRange{Values: [][]interface{}{{status}}}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("%s!D%d", s.sheetName, rowIndex), values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheet: update status cell: %w", err)
	}
	return nil
}

func cellString(cells []interface{}, i int) string {
	if i >= len(cells) {
		return ""
	}
	s, _ := cells[i].(string)
	return s
}

var _ RowStore = (*GoogleStore)(nil)
