package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mamadbah2/suraksha/internal/service/records"
)

func useTempStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("STORAGE_FILE_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRecordLifecycle(t *testing.T) {
	useTempStorage(t)

	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Rajesh Kumar") || strings.Count(out, "\n") != 6 {
		t.Fatalf("expected header plus seeded records:\n%s", out)
	}

	out, err = run(t, "add", "--name", "Meera Iyer", "--phone", "+91 90000 11111",
		"--address", "12 HSR Layout, Bangalore", "--date", "2024-02-03", "--type", "both", "--price", "4000")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(out, "Saved Meera Iyer") {
		t.Fatalf("unexpected add output %q", out)
	}

	if _, err := run(t, "update", "3", "--price", "3100"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := run(t, "delete", "5"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := run(t, "delete", "5"); !errors.Is(err, records.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	out, err = run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "February 2024: income 4000 from 1 customers") {
		t.Fatalf("unexpected history:\n%s", out)
	}
	if !strings.Contains(out, "January 2024: income 11600 from 4 customers") {
		t.Fatalf("january should reflect the update and delete:\n%s", out)
	}

	out, err = run(t, "search", "HSR")
	if err != nil || !strings.Contains(out, "Meera Iyer") {
		t.Fatalf("search: %v\n%s", err, out)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	useTempStorage(t)

	if _, err := run(t, "add", "--name", "X", "--phone", "1", "--address", "a", "--date", "2024-02-30", "--type", "well"); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := run(t, "stats", "--month", "Feb"); err == nil {
		t.Fatal("expected month format error")
	}
}

func TestAddRejectsNonFinitePrice(t *testing.T) {
	dir := useTempStorage(t)

	for _, price := range []string{"Inf", "+Inf", "NaN"} {
		out, err := run(t, "add", "--name", "Meera", "--phone", "1", "--address", "HSR",
			"--date", "2024-02-03", "--type", "tank", "--price", price)
		if err == nil || strings.Contains(out, "Saved") {
			t.Fatalf("price %s accepted: %v\n%s", price, err, out)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read storage dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected input must not touch storage, found %d files", len(entries))
	}
}

func TestStatsForMonth(t *testing.T) {
	useTempStorage(t)

	out, err := run(t, "stats", "--month", "2024-01")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "January 2024: income 16500 from 5 customers (sump 2, tank 2, both 1).") {
		t.Fatalf("unexpected stats output %q", out)
	}
}

func TestReportSendNeedsWhatsApp(t *testing.T) {
	useTempStorage(t)

	if _, err := run(t, "report", "--send"); err == nil || !strings.Contains(err.Error(), "WHATSAPP_OWNER_ID") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
