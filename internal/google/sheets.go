package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"hotel/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	sheetName      = "Reservations"
	lastColumn     = "M"
	statusColumn   = "G"
	updatedColumn  = "M"
	timestampInput = "2006-01-02 15:04:05"
)

var ErrRowNotFound = errors.New("reservation row not found")

var headerRow = []interface{}{
	"ID", "User ID", "Room ID", "Check-in", "Check-out", "Guests", "Status",
	"Guest Name", "Guest Email", "Guest Phone", "Total Price", "Created At", "Updated At",
}

// SheetsService mirrors reservations into a spreadsheet, one row per reservation.
type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
	rowCache      map[string]int
	cacheMu       sync.RWMutex
	logger        *zerolog.Logger
}

func NewSheetsService(ctx context.Context, credentialsFile, spreadsheetID string, logger *zerolog.Logger) (*SheetsService, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	return newSheetsService(srv, spreadsheetID, logger), nil
}

func newSheetsService(srv *sheets.Service, spreadsheetID string, logger *zerolog.Logger) *SheetsService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &SheetsService{
		service:       srv,
		spreadsheetID: spreadsheetID,
		rowCache:      make(map[string]int),
		logger:        logger,
	}
}

// Start warms the row cache and refreshes it hourly until ctx is done.
func (s *SheetsService) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := s.WarmUpCache(warmCtx); err != nil {
			s.logger.Warn().Err(err).Msg("sheets cache warm-up failed")
		}
		cancel()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// TestConnection reads the header cell.
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetName+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// ServiceAccountEmail returns the account the spreadsheet must be shared with.
func ServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

// WarmUpCache populates the row index cache by reading the entire ID column.
func (s *SheetsService) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetName+"!A:A").Context(ctx).Do()
	if err != nil {
		return err
	}

	cache := make(map[string]int, len(resp.Values))
	for i, row := range resp.Values {
		if id := cellID(row); id != "" && id != "ID" {
			cache[id] = i + 1
		}
	}

	s.cacheMu.Lock()
	s.rowCache = cache
	s.cacheMu.Unlock()
	return nil
}

// AppendReservation adds a row at the end of the sheet.
func (s *SheetsService) AppendReservation(ctx context.Context, res *models.Reservation) error {
	valueRange := &sheets.ValueRange{Values: [][]interface{}{reservationRowValues(res)}}

	resp, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, sheetName+"!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return err
	}

	if resp.Updates != nil {
		if row, ok := rowFromRange(resp.Updates.UpdatedRange); ok {
			s.setCachedRow(res.ID, row)
		}
	}
	return nil
}

// UpsertReservation rewrites the reservation's row, appending when it is not on the sheet yet.
func (s *SheetsService) UpsertReservation(ctx context.Context, res *models.Reservation) error {
	if res == nil {
		return errors.New("reservation is nil")
	}

	rowIdx, err := s.FindReservationRow(ctx, res.ID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return s.AppendReservation(ctx, res)
		}
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:%s%d", sheetName, rowIdx, lastColumn, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeData, &sheets.ValueRange{
		Values: [][]interface{}{reservationRowValues(res)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// UpdateReservationStatus touches only the status and updated-at cells.
func (s *SheetsService) UpdateReservationStatus(ctx context.Context, reservationID string, status models.ReservationStatus) error {
	rowIdx, err := s.FindReservationRow(ctx, reservationID)
	if err != nil {
		return err
	}

	statusRange := fmt.Sprintf("%s!%s%d:%s%d", sheetName, statusColumn, rowIdx, statusColumn, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, statusRange, &sheets.ValueRange{
		Values: [][]interface{}{{string(status)}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return err
	}

	updatedRange := fmt.Sprintf("%s!%s%d:%s%d", sheetName, updatedColumn, rowIdx, updatedColumn, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, updatedRange, &sheets.ValueRange{
		Values: [][]interface{}{{time.Now().UTC().Format(timestampInput)}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// FindReservationRow locates the 1-based row for reservationID, consulting the cache first.
func (s *SheetsService) FindReservationRow(ctx context.Context, reservationID string) (int, error) {
	if reservationID == "" {
		return 0, errors.New("reservation id is required")
	}
	if row, ok := s.getCachedRow(reservationID); ok {
		return row, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetName+"!A:A").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	for i, row := range resp.Values {
		if cellID(row) == reservationID {
			s.setCachedRow(reservationID, i+1)
			return i + 1, nil
		}
	}
	return 0, ErrRowNotFound
}

// ReplaceReservationsSheet clears the sheet and writes header plus all reservations.
func (s *SheetsService) ReplaceReservationsSheet(ctx context.Context, reservations []*models.Reservation) error {
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, sheetName+"!A:"+lastColumn, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear reservations sheet: %w", err)
	}

	values := make([][]interface{}, 0, len(reservations)+1)
	values = append(values, headerRow)
	for _, res := range reservations {
		values = append(values, reservationRowValues(res))
	}

	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, sheetName+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write reservations sheet: %w", err)
	}

	cache := make(map[string]int, len(reservations))
	for i, res := range reservations {
		cache[res.ID] = i + 2
	}
	s.cacheMu.Lock()
	s.rowCache = cache
	s.cacheMu.Unlock()

	s.logger.Info().Int("rows", len(reservations)).Msg("reservations sheet replaced")
	return nil
}

func (s *SheetsService) getCachedRow(id string) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func (s *SheetsService) setCachedRow(id string, row int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache[id] = row
}

// ClearCache clears the row index cache.
func (s *SheetsService) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache = make(map[string]int)
}

func reservationRowValues(res *models.Reservation) []interface{} {
	return []interface{}{
		res.ID,
		res.UserID,
		res.RoomID,
		res.CheckIn.String(),
		res.CheckOut.String(),
		res.Guests,
		string(res.Status),
		res.GuestName,
		res.GuestEmail,
		res.GuestPhone,
		res.TotalPrice,
		res.CreatedAt.UTC().Format(timestampInput),
		res.UpdatedAt.UTC().Format(timestampInput),
	}
}

func cellID(row []interface{}) string {
	if len(row) == 0 {
		return ""
	}
	switch v := row[0].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return ""
}

// rowFromRange extracts the first row number from an A1 range like "Reservations!A10:M10".
func rowFromRange(a1 string) (int, bool) {
	if i := strings.LastIndex(a1, "!"); i >= 0 {
		a1 = a1[i+1:]
	}
	if i := strings.Index(a1, ":"); i >= 0 {
		a1 = a1[:i]
	}
	digits := strings.TrimLeft(a1, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return 0, false
	}
	return row, true
}
