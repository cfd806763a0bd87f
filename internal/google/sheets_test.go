package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func setupMockServer(t *testing.T) (*http.ServeMux, *SheetsService) {
	t.Helper()
	ctx := context.Background()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	srv, err := sheets.NewService(ctx, option.WithEndpoint(server.URL), option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("sheets service: %v", err)
	}
	return mux, newSheetsService(srv, "hotel_tid", nil)
}

func testReservation(id string) *models.Reservation {
	return &models.Reservation{
		ID:         id,
		UserID:     "user-1",
		RoomID:     "room-1",
		CheckIn:    models.NewDate(2026, time.April, 1),
		CheckOut:   models.NewDate(2026, time.April, 4),
		Guests:     2,
		Status:     models.StatusPending,
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		TotalPrice: 300,
		CreatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSheetsService_TestConnection(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!A1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"ID"}}})
	})
	if err := s.TestConnection(context.Background()); err != nil {
		t.Errorf("TestConnection failed: %v", err)
	}
}

func TestSheetsService_WarmUpCache(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!A:A", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{
			Values: [][]interface{}{{"ID"}, {"res-1"}, {}, {"res-3"}},
		})
	})
	if err := s.WarmUpCache(context.Background()); err != nil {
		t.Fatalf("WarmUpCache failed: %v", err)
	}
	if row, ok := s.getCachedRow("res-1"); !ok || row != 2 {
		t.Errorf("Expected row 2 for res-1, got %d", row)
	}
	if row, ok := s.getCachedRow("res-3"); !ok || row != 4 {
		t.Errorf("Expected row 4 for res-3, got %d", row)
	}
	if _, ok := s.getCachedRow("ID"); ok {
		t.Error("header must not be cached")
	}
}

func TestSheetsService_UpsertReservation_Append(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!A:A", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"ID"}}})
	})
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!A:A:append", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.AppendValuesResponse{
			Updates: &sheets.UpdateValuesResponse{UpdatedRange: "Reservations!A10:M10"},
		})
	})

	if err := s.UpsertReservation(context.Background(), testReservation("res-new")); err != nil {
		t.Fatalf("UpsertReservation failed: %v", err)
	}
	if row, _ := s.getCachedRow("res-new"); row != 10 {
		t.Errorf("Expected cached row 10, got %d", row)
	}
}

func TestSheetsService_UpsertReservation_Update(t *testing.T) {
	mux, s := setupMockServer(t)
	s.setCachedRow("res-1", 2)

	var written sheets.ValueRange
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!A2:M2", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &written)
		_ = json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})
	})

	if err := s.UpsertReservation(context.Background(), testReservation("res-1")); err != nil {
		t.Fatalf("UpsertReservation failed: %v", err)
	}
	if len(written.Values) != 1 || len(written.Values[0]) != len(headerRow) {
		t.Fatalf("unexpected row written: %+v", written.Values)
	}
	if written.Values[0][3] != "2026-04-01" || written.Values[0][6] != "PENDING" {
		t.Errorf("unexpected cells: %+v", written.Values[0])
	}
}

func TestSheetsService_UpdateReservationStatus(t *testing.T) {
	mux, s := setupMockServer(t)
	s.setCachedRow("res-1", 5)

	calls := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})
	}
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!G5:G5", handler)
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!M5:M5", handler)

	if err := s.UpdateReservationStatus(context.Background(), "res-1", models.StatusConfirmed); err != nil {
		t.Fatalf("UpdateReservationStatus failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 cell updates, got %d", calls)
	}
}

func TestSheetsService_UpdateReservationStatus_Missing(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!A:A", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"ID"}, {"res-2"}}})
	})
	err := s.UpdateReservationStatus(context.Background(), "res-1", models.StatusCancelled)
	if err != ErrRowNotFound {
		t.Errorf("expected ErrRowNotFound, got %v", err)
	}
}

func TestSheetsService_ReplaceReservationsSheet(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!A:M:clear", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ClearValuesResponse{})
	})
	var written sheets.ValueRange
	mux.HandleFunc("/v4/spreadsheets/hotel_tid/values/Reservations!A1", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &written)
		_ = json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})
	})

	err := s.ReplaceReservationsSheet(context.Background(), []*models.Reservation{testReservation("a"), testReservation("b")})
	if err != nil {
		t.Fatalf("ReplaceReservationsSheet failed: %v", err)
	}
	if len(written.Values) != 3 || written.Values[0][0] != "ID" {
		t.Errorf("expected header plus 2 rows, got %+v", written.Values)
	}
	if row, _ := s.getCachedRow("b"); row != 3 {
		t.Errorf("Expected cached row 3, got %d", row)
	}
}

func TestRowFromRange(t *testing.T) {
	tests := []struct {
		in   string
		row  int
		isOK bool
	}{
		{"Reservations!A10:M10", 10, true},
		{"A7", 7, true},
		{"Reservations!A:A", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		row, ok := rowFromRange(tt.in)
		if row != tt.row || ok != tt.isOK {
			t.Errorf("rowFromRange(%q) = %d, %v", tt.in, row, ok)
		}
	}
}

func TestServiceAccountEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte(`{"client_email":"bot@hotel.iam.gserviceaccount.com"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	email, err := ServiceAccountEmail(path)
	if err != nil {
		t.Fatalf("ServiceAccountEmail failed: %v", err)
	}
	if email != "bot@hotel.iam.gserviceaccount.com" {
		t.Errorf("unexpected email %q", email)
	}

	if _, err := ServiceAccountEmail(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
