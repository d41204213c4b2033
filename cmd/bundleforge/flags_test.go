// SPDX-License-Identifier: MPL-2.0

package main

import (
	"reflect"
	"testing"
)

func TestSplitOnce(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		sep       byte
		before    string
		after     string
		wantFound bool
	}{
		{name: "simple split", in: "name:value", sep: ':', before: "name", after: "value", wantFound: true},
		{name: "first separator wins", in: "name:a:b", sep: ':', before: "name", after: "a:b", wantFound: true},
		{name: "no separator", in: "noseparator", sep: ':', wantFound: false},
		{name: "empty string", in: "", sep: ':', wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, after, ok := splitOnce(tt.in, tt.sep)
			if ok != tt.wantFound {
				t.Fatalf("splitOnce(%q) ok = %v, want %v", tt.in, ok, tt.wantFound)
			}
			if !ok {
				return
			}
			if before != tt.before || after != tt.after {
				t.Errorf("splitOnce(%q) = (%q, %q), want (%q, %q)", tt.in, before, after, tt.before, tt.after)
			}
		})
	}
}

func TestParseResourceFlags(t *testing.T) {
	got, err := parseResourceFlags([]string{"readme:README.md", "license:LICENSE"})
	if err != nil {
		t.Fatalf("parseResourceFlags() error = %v", err)
	}
	want := map[string]string{"readme": "README.md", "license": "LICENSE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseResourceFlags() = %v, want %v", got, want)
	}
}

func TestParseResourceFlags_RejectsMissingSeparator(t *testing.T) {
	if _, err := parseResourceFlags([]string{"no-colon-here"}); err == nil {
		t.Fatal("parseResourceFlags() expected an error for a value with no colon")
	}
}

func TestParseExternalFlags(t *testing.T) {
	runtime, optional, err := parseExternalFlags([]string{"react:runtime", "lodash:optional", "react-dom:runtime"})
	if err != nil {
		t.Fatalf("parseExternalFlags() error = %v", err)
	}
	wantRuntime := []string{"react", "react-dom"}
	wantOptional := []string{"lodash"}
	if !reflect.DeepEqual(runtime, wantRuntime) {
		t.Errorf("runtime = %v, want %v", runtime, wantRuntime)
	}
	if !reflect.DeepEqual(optional, wantOptional) {
		t.Errorf("optional = %v, want %v", optional, wantOptional)
	}
}

func TestParseExternalFlags_RejectsUnknownKind(t *testing.T) {
	if _, _, err := parseExternalFlags([]string{"react:sometimes"}); err == nil {
		t.Fatal("parseExternalFlags() expected an error for an unknown external kind")
	}
}

func TestParseExternalFlags_RejectsMissingSeparator(t *testing.T) {
	if _, _, err := parseExternalFlags([]string{"react"}); err == nil {
		t.Fatal("parseExternalFlags() expected an error for a value with no colon")
	}
}

func TestFormatErrorForDisplay_PlainError(t *testing.T) {
	err := errPlain("boom")
	if got := formatErrorForDisplay(err, false); got != "boom" {
		t.Errorf("formatErrorForDisplay() = %q, want %q", got, "boom")
	}
}

type errPlain string

func (e errPlain) Error() string { return string(e) }
