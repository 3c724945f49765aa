package content

import "testing"

func TestGetValue(t *testing.T) {
	doc := Document{
		"id":       "R1",
		"name":     "  My Rule  ",
		"quoted":   `"quoted value"`,
		"single":   "'single'",
		"number":   42,
		"flag":     true,
		"list":     []interface{}{"a", "b"},
		"nested":   map[string]interface{}{"Title": " Nested Title ", "Version": "0.1"},
		"mismatch": "scalar",
	}

	tests := []struct {
		name   string
		key    string
		subKey string
		clean  bool
		want   string
	}{
		{name: "simple string", key: "id", want: "R1"},
		{name: "trims without clean", key: "name", want: "My Rule"},
		{name: "clean strips double quotes", key: "quoted", clean: true, want: "quoted value"},
		{name: "clean strips single quotes", key: "single", clean: true, want: "single"},
		{name: "no clean keeps quotes", key: "quoted", want: `"quoted value"`},
		{name: "number coerces", key: "number", want: "42"},
		{name: "bool coerces", key: "flag", want: "true"},
		{name: "list has no string form", key: "list", want: ""},
		{name: "missing key", key: "nope", want: ""},
		{name: "nested value", key: "nested", subKey: "Title", want: "Nested Title"},
		{name: "nested missing subkey", key: "nested", subKey: "nope", want: ""},
		{name: "subkey on scalar", key: "mismatch", subKey: "Title", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetValue(doc, tt.key, tt.subKey, tt.clean); got != tt.want {
				t.Errorf("GetValue(%q, %q, %v) = %q, want %q", tt.key, tt.subKey, tt.clean, got, tt.want)
			}
		})
	}

	if got := GetValue(nil, "id", "", false); got != "" {
		t.Errorf("GetValue(nil doc) = %q, want empty", got)
	}
}

func TestGetTag(t *testing.T) {
	doc := Document{
		"description": " a rule ",
		"blank":       "   ",
		"nested":      map[string]interface{}{"Schema": "Dns"},
	}

	tag, ok := GetTag(doc, "description", "", "description", true)
	if !ok {
		t.Fatal("GetTag() expected present tag")
	}
	if tag.Name != "description" || tag.Value != "a rule" {
		t.Errorf("GetTag() = %+v, want {description, a rule}", tag)
	}

	if _, ok := GetTag(doc, "blank", "", "blank", false); ok {
		t.Error("GetTag() on whitespace-only value should be absent")
	}
	if _, ok := GetTag(doc, "missing", "", "missing", false); ok {
		t.Error("GetTag() on missing key should be absent")
	}

	tag, ok = GetTag(doc, "nested", "Schema", "schema", false)
	if !ok || tag.Value != "Dns" {
		t.Errorf("GetTag() nested = %+v ok=%v, want {schema, Dns}", tag, ok)
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := Document{
		"enabled": false,
		"tactics": []interface{}{"Execution", 5, "Persistence"},
		"empty":   "",
	}

	if doc.Bool("enabled", true) != false {
		t.Error("Bool() should return explicit false")
	}
	if doc.Bool("missing", true) != true {
		t.Error("Bool() should default on missing key")
	}
	got := doc.StringSlice("tactics")
	if len(got) != 2 || got[0] != "Execution" || got[1] != "Persistence" {
		t.Errorf("StringSlice() = %v, want non-string elements dropped", got)
	}
	if !IsBlank(doc, "empty") || !IsBlank(doc, "missing") {
		t.Error("IsBlank() should report empty and missing keys blank")
	}
	if IsBlank(doc, "tactics") == false {
		t.Error("IsBlank() on a list should be blank, lists have no string form")
	}
}
