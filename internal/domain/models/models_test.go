package models

import (
	"math"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{in: "/stats", want: Command{Type: CommandStats, Raw: "/stats"}},
		{in: "  HISTORY ", want: Command{Type: CommandHistory, Raw: "  HISTORY "}},
		{in: "/search Rajesh Kumar", want: Command{Type: CommandSearch, Raw: "/search Rajesh Kumar", Args: []string{"Rajesh", "Kumar"}}},
		{in: "/eggs 4", want: Command{Type: CommandUnknown, Raw: "/eggs 4", Args: []string{"4"}}},
		{in: "", want: Command{Type: CommandUnknown, Raw: ""}},
	}
	for _, tt := range tests {
		if got := ParseCommand(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ParseCommand(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestRecordPatchApply(t *testing.T) {
	record := ServiceRecord{ID: "1", Name: "A", Phone: "1", Address: "x", ServiceDate: "2024-01-01",
		ServiceType: ServiceSump, Price: 10, Notes: "n", CreatedAt: "2024-01-01T00:00:00.000Z"}

	var patch RecordPatch
	if !patch.Empty() {
		t.Fatal("zero patch should be empty")
	}
	patch.Apply(&record)
	if record.Name != "A" || record.Price != 10 {
		t.Fatalf("empty patch changed record: %+v", record)
	}

	notes := ""
	kind := ServiceTank
	price := 0.0
	patch = RecordPatch{Notes: &notes, ServiceType: &kind, Price: &price}
	patch.Apply(&record)
	want := ServiceRecord{ID: "1", Name: "A", Phone: "1", Address: "x", ServiceDate: "2024-01-01",
		ServiceType: ServiceTank, Price: 0, CreatedAt: "2024-01-01T00:00:00.000Z"}
	if record != want {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestServiceTypeValid(t *testing.T) {
	for _, v := range []ServiceType{ServiceSump, ServiceTank, ServiceBoth} {
		if !v.Valid() {
			t.Fatalf("%s should be valid", v)
		}
	}
	if ServiceType("Sump").Valid() {
		t.Fatal("service types are lowercase")
	}
}

func TestPriceMustBeFinite(t *testing.T) {
	valid := RecordInput{Name: "A", Phone: "1", Address: "x", ServiceDate: "2024-01-01", ServiceType: ServiceSump, Price: 1500}
	if err := binding.Validator.ValidateStruct(&valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	for _, price := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		input := valid
		input.Price = price
		if err := binding.Validator.ValidateStruct(&input); err == nil {
			t.Fatalf("input price %v accepted", price)
		}

		p := price
		patch := RecordPatch{Price: &p}
		if err := binding.Validator.ValidateStruct(&patch); err == nil {
			t.Fatalf("patch price %v accepted", price)
		}
	}
}
