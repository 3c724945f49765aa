package normalize

import (
	"reflect"
	"testing"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "hours", input: "5H", want: "PT5H"},
		{name: "minutes", input: "30M", want: "PT30M"},
		{name: "days", input: "3D", want: "P3D"},
		{name: "unrecognized unit passes through", input: "2W", want: "2W"},
		{name: "already ISO passes through", input: "PT1H", want: "PT1H"},
		{name: "lowercase passes through", input: "5h", want: "5h"},
		{name: "empty passes through", input: "", want: ""},
		{name: "garbage passes through", input: "soon", want: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.input); got != tt.want {
				t.Errorf("Duration(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsRawDuration(t *testing.T) {
	if !IsRawDuration("14D") {
		t.Error("IsRawDuration(14D) = false, want true")
	}
	if IsRawDuration("P14D") {
		t.Error("IsRawDuration(P14D) = true, want false")
	}
}

func TestTriggerOperator(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lt", input: "lt", want: "LessThan"},
		{name: "eq", input: "eq", want: "Equal"},
		{name: "ne", input: "ne", want: "NotEqual"},
		{name: "canonical LessThan passes", input: "LessThan", want: "LessThan"},
		{name: "canonical Equal passes", input: "Equal", want: "Equal"},
		{name: "canonical NotEqual passes", input: "NotEqual", want: "NotEqual"},
		// The default masks typos but is the documented contract.
		{name: "unknown defaults to GreaterThan", input: "xyz", want: "GreaterThan"},
		{name: "gt defaults to GreaterThan", input: "gt", want: "GreaterThan"},
		{name: "empty defaults to GreaterThan", input: "", want: "GreaterThan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TriggerOperator(tt.input); got != tt.want {
				t.Errorf("TriggerOperator(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitTechniques(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		wantTech []string
		wantSub  []string
	}{
		{
			name:     "dedupes and splits",
			input:    []string{"T1234", "T1234.001", "T1234.001"},
			wantTech: []string{"T1234"},
			wantSub:  []string{"T1234.001"},
		},
		{
			name:     "strips embedded spaces",
			input:    []string{" T1001 . 002 "},
			wantTech: []string{"T1001"},
			wantSub:  []string{"T1001.002"},
		},
		{
			name:     "skips empties and preserves order",
			input:    []string{"", "T2", "T1", "T2"},
			wantTech: []string{"T2", "T1"},
		},
		{
			name:     "subtechnique implies technique",
			input:    []string{"T1059.001"},
			wantTech: []string{"T1059"},
			wantSub:  []string{"T1059.001"},
		},
		{name: "nil input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTech, gotSub := SplitTechniques(tt.input)
			if !reflect.DeepEqual(gotTech, tt.wantTech) {
				t.Errorf("SplitTechniques() techniques = %v, want %v", gotTech, tt.wantTech)
			}
			if !reflect.DeepEqual(gotSub, tt.wantSub) {
				t.Errorf("SplitTechniques() subTechniques = %v, want %v", gotSub, tt.wantSub)
			}
		})
	}
}

func TestFunctionParameters(t *testing.T) {
	tests := []struct {
		name  string
		input []interface{}
		want  string
	}{
		{
			name: "typed parameters with defaults",
			input: []interface{}{
				map[string]interface{}{"Name": "disabled", "Type": "bool", "Default": false},
				map[string]interface{}{"Name": "pack", "Type": "string", "Default": "core"},
			},
			want: "disabled:bool=false,pack:string='core'",
		},
		{
			name: "table type strips prefix",
			input: []interface{}{
				map[string]interface{}{"Name": "events", "Type": "table:(TimeGenerated:datetime)"},
			},
			want: "events:(TimeGenerated:datetime)",
		},
		{
			name:  "raw strings pass through trimmed",
			input: []interface{}{" a:string ", "b:int"},
			want:  "a:string,b:int",
		},
		{
			name: "nameless specs skipped",
			input: []interface{}{
				map[string]interface{}{"Type": "string"},
				map[string]interface{}{"Name": "x", "Type": "int"},
			},
			want: "x:int",
		},
		{name: "empty list", input: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FunctionParameters(tt.input); got != tt.want {
				t.Errorf("FunctionParameters() = %q, want %q", got, tt.want)
			}
		})
	}
}
