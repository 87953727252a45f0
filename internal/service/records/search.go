package records

import (
	"strings"
	"unicode"

	"github.com/mamadbah2/suraksha/internal/domain/models"
)

// Filter returns the records matching query in their original order. A blank
// query matches everything. Name and address match case-insensitively; the
// phone matches the query as typed. A query written only with digits, '+',
// spaces and phone punctuation also matches after both sides are reduced to
// digits and '+', so "98765 43210" finds "+91 9876543210".
func Filter(records []models.ServiceRecord, query string) []models.ServiceRecord {
	if strings.TrimSpace(query) == "" {
		return records
	}

	lowered := strings.ToLower(query)
	phoneQuery := ""
	if phoneLike(query) {
		phoneQuery = normalizePhone(query)
	}

	found := make([]models.ServiceRecord, 0, len(records))
	for _, r := range records {
		if matches(r, lowered, query, phoneQuery) {
			found = append(found, r)
		}
	}
	return found
}

// matches reports whether r matches a query given in its lowered, raw and
// phone-normalized forms.
func matches(r models.ServiceRecord, lowered, raw, phoneQuery string) bool {
	if strings.Contains(strings.ToLower(r.Name), lowered) {
		return true
	}
	if strings.Contains(r.Phone, raw) {
		return true
	}
	if phoneQuery != "" && strings.Contains(normalizePhone(r.Phone), phoneQuery) {
		return true
	}
	return strings.Contains(strings.ToLower(r.Address), lowered)
}

// phoneLike reports whether s holds at least one digit and nothing besides
// digits, '+', whitespace and the separators people type in phone numbers.
func phoneLike(s string) bool {
	digits := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '+' || unicode.IsSpace(c) || strings.ContainsRune("-()/.", c):
		default:
			return false
		}
	}
	return digits > 0
}

func normalizePhone(s string) string {
	var b strings.Builder
	for _, c := range s {
		if (c >= '0' && c <= '9') || c == '+' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
