package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"presupuesto/internal/analytics"
	"presupuesto/internal/core"
)

func TestNewFromEnv_MissingSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")

	_, err := NewFromEnv(context.Background())
	if err == nil {
		t.Fatal("expected error for missing GOOGLE_SPREADSHEET_ID")
	}
	if err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewFromEnv_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "test-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := NewFromEnv(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("expected credentials error, got %v", err)
	}
}

func TestNewFromEnv_UnreadableCredentialsFile(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "test-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "/nonexistent/credentials.json")
	os.Unsetenv("GOOGLE_APPLICATION_CREDENTIALS")

	_, err := NewFromEnv(context.Background())
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestWriteExport_NilService(t *testing.T) {
	c := &Client{spreadsheetID: "test"}
	if _, err := c.WriteExport(context.Background(), "x", &analytics.ExportData{}); err == nil {
		t.Fatal("expected error with nil service")
	}
}

// fakeSheets records the calls a WriteExport makes against the REST API.
type fakeSheets struct {
	mu       sync.Mutex
	titles   []string
	ranges   []string
	values   [][]interface{}
	failNext bool
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, _ := io.ReadAll(r.Body)

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		if f.failNext {
			http.Error(w, `{"error":{"code":400,"message":"duplicate sheet"}}`, http.StatusBadRequest)
			return
		}
		var req gsheet.BatchUpdateSpreadsheetRequest
		_ = json.Unmarshal(body, &req)
		f.titles = append(f.titles, req.Requests[0].AddSheet.Properties.Title)
		_ = json.NewEncoder(w).Encode(gsheet.BatchUpdateSpreadsheetResponse{
			Replies: []*gsheet.Response{{AddSheet: &gsheet.AddSheetResponse{
				Properties: &gsheet.SheetProperties{SheetId: 42, Title: req.Requests[0].AddSheet.Properties.Title},
			}}},
		})
	case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/values/"):
		var vr gsheet.ValueRange
		_ = json.Unmarshal(body, &vr)
		f.ranges = append(f.ranges, r.URL.Path)
		f.values = vr.Values
		_ = json.NewEncoder(w).Encode(gsheet.UpdateValuesResponse{UpdatedRows: int64(len(vr.Values))})
	default:
		http.NotFound(w, r)
	}
}

func newFakeClient(t *testing.T) (*Client, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return New(svc, "sheet-123"), fake
}

func TestWriteExport(t *testing.T) {
	c, fake := newFakeClient(t)
	w := analytics.Window{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 1, 31)}
	data := &analytics.ExportData{
		Period: w,
		Income: []core.Income{{Source: "Salary", Amount: core.Money{Cents: 50000}, Date: core.NewDate(2024, 1, 10), Frequency: core.Monthly}},
		Summary: analytics.DashboardSummary{
			Period:  w,
			Balance: core.Money{Cents: 50000},
		},
	}

	ref, err := c.WriteExport(context.Background(), "Export: January", data)
	if err != nil {
		t.Fatalf("write export: %v", err)
	}
	if ref != "sheet-123#gid=42" {
		t.Fatalf("unexpected ref %q", ref)
	}
	if len(fake.titles) != 1 || fake.titles[0] != "Export  January" {
		t.Fatalf("unexpected sheet titles %v", fake.titles)
	}
	if len(fake.values) == 0 || fake.values[0][0] != "INCOME" {
		t.Fatalf("unexpected values %v", fake.values)
	}
}

func TestWriteExport_AddSheetFailure(t *testing.T) {
	c, fake := newFakeClient(t)
	fake.failNext = true

	_, err := c.WriteExport(context.Background(), "dup", &analytics.ExportData{})
	if err == nil || !strings.Contains(err.Error(), "add sheet") {
		t.Fatalf("expected add sheet error, got %v", err)
	}
	if len(fake.ranges) != 0 {
		t.Fatalf("values must not be written after a failed add, got %v", fake.ranges)
	}
}
