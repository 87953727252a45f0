package records

import (
	"regexp"
	"strings"
	"testing"

	"github.com/mamadbah2/suraksha/internal/domain/models"
)

func ids(records []models.ServiceRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	records := append(SeedRecords(), models.ServiceRecord{
		ID:      "6",
		Name:    "Helpline",
		Phone:   "1800-CLEAN",
		Address: "Call centre",
	})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns everything", query: "", want: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "whitespace query returns everything", query: "   ", want: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "name is case insensitive", query: "rAjEsH", want: []string{"1"}},
		{name: "address is case insensitive", query: "BRIGADE", want: []string{"2"}},
		{name: "shared address preserves order", query: "bangalore", want: []string{"1", "2", "3", "4", "5"}},
		{name: "phone as typed", query: "9876543213", want: []string{"4"}},
		{name: "phone is case sensitive", query: "clean", want: []string{}},
		{name: "phone exact case", query: "CLEAN", want: []string{"6"}},
		{name: "phone tolerates spacing", query: "98765 43214", want: []string{"5"}},
		{name: "phone tolerates punctuation", query: "+91-98765-43212", want: []string{"3"}},
		{name: "no match", query: "chennai", want: []string{}},
		{name: "text with digits needs a real match", query: "Chennai 1", want: []string{}},
		{name: "address with digit", query: "Whitefield 9", want: []string{}},
		{name: "address number", query: "654 Whitefield", want: []string{"5"}},
		{name: "letters around plus are not a phone", query: "a+b", want: []string{}},
		{name: "phone letters keep their case", query: "1800-clean", want: []string{}},
		{name: "phone with letters as typed", query: "1800-CLEAN", want: []string{"6"}},
		{name: "bracketed country code", query: "(+91) 98765-43211", want: []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(records, tt.query))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// The documented phone rule, written without Filter's helpers: a query with
// any letter is never reduced.
var (
	phoneQueryPattern = regexp.MustCompile(`^[0-9+\s\-()/.]*[0-9][0-9+\s\-()/.]*$`)
	notDigitOrPlus    = regexp.MustCompile(`[^0-9+]`)
)

func digitsAndPlus(s string) string {
	return notDigitOrPlus.ReplaceAllString(s, "")
}

func TestFilterAgreesWithFieldRules(t *testing.T) {
	records := SeedRecords()
	queries := []string{"a", "Road", "+91", "12", "koramangala", "x", "Flat 4", "Whitefield 9", "a+b", "98765-43213", "Chennai 1"}
	for _, q := range queries {
		got := Filter(records, q)
		for _, r := range records {
			lq := strings.ToLower(q)
			want := strings.Contains(strings.ToLower(r.Name), lq) ||
				strings.Contains(strings.ToLower(r.Address), lq) ||
				strings.Contains(r.Phone, q) ||
				(phoneQueryPattern.MatchString(q) && strings.Contains(digitsAndPlus(r.Phone), digitsAndPlus(q)))

			returned := false
			for _, g := range got {
				if g.ID == r.ID {
					returned = true
				}
			}
			if returned != want {
				t.Fatalf("Filter(%q): record %s returned=%v, want %v", q, r.ID, returned, want)
			}
		}
	}
}

func TestStoreSearchUsesLiveRecords(t *testing.T) {
	store := NewStore(nil, nil, nil)
	store.records = SeedRecords()
	if got := ids(store.Search("priya")); len(got) != 1 || got[0] != "2" {
		t.Fatalf("unexpected search result %v", got)
	}
}
