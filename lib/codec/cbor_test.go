// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// sampleSpan mirrors the shape of a trace span: a purely internal
// type, so it carries cbor struct tags.
type sampleSpan struct {
	Component string `cbor:"component"`
	Consumed  string `cbor:"consumed,omitempty"`
	Start     int    `cbor:"start"`
	End       int    `cbor:"end"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleSpan{
		Component: "amount",
		Consumed:  "42 ",
		Start:     11,
		End:       14,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleSpan
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	// Map iteration order varies between runs; deterministic
	// encoding must not.
	value := map[string]any{
		"zeta":  1,
		"alpha": "first",
		"mid":   []any{"a", "b"},
	}
	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 16; i++ {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal iteration %d: %v", i, err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("iteration %d produced different bytes", i)
		}
	}
}

func TestStreamEncodeDecode(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	spans := []sampleSpan{
		{Component: "target", Start: 5, End: 11},
		{Component: "amount", Start: 11, End: 14},
	}
	for _, span := range spans {
		if err := encoder.Encode(span); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range spans {
		var got sampleSpan
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode %d: %v", i, err)
		}
		if got != want {
			t.Errorf("span %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(map[string]any{
		"component": "target",
		"start":     5,
		"end":       11,
		"future":    "field from a newer writer",
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sampleSpan
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Component != "target" || decoded.End != 11 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(sampleSpan{Component: "target"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diagnostic, "target") {
		t.Errorf("diagnostic %q does not mention the component", diagnostic)
	}
}
