package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tasks := []Task{
		{ID: "1712345678901", Text: "Buy milk", Completed: true},
		{ID: "1712345678902", Text: "Walk the dog"},
	}
	payload, err := EncodeTasks(tasks)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeTasks(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Fatalf("round trip mismatch: got %#v want %#v", got, tasks)
	}
}

func TestEncodeNilListAsEmptyArray(t *testing.T) {
	payload, err := EncodeTasks(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(payload) != "[]" {
		t.Fatalf("expected [], got %s", payload)
	}
	got, err := DecodeTasks(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
}

func TestDecodeAcceptsWireFormat(t *testing.T) {
	raw := `[{"id":"1","text":"  Pay rent ","completed":false,"extra":1}]`
	got, err := DecodeTasks([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Task{{ID: "1", Text: "Pay rent"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tasks: %#v", got)
	}
}

func TestDecodeRejectsCorruptSnapshots(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "{oops"},
		{"null", "null"},
		{"object", `{"id":"1"}`},
		{"missing completed", `[{"id":"1","text":"a"}]`},
		{"wrong type", `[{"id":1,"text":"a","completed":false}]`},
		{"empty text", `[{"id":"1","text":"","completed":false}]`},
		{"blank text", `[{"id":"1","text":"   ","completed":false}]`},
		{"duplicate id", `[{"id":"1","text":"a","completed":false},{"id":"1","text":"b","completed":true}]`},
	}

	for _, tc := range cases {
		_, err := DecodeTasks([]byte(tc.raw))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, ErrCorruptSnapshot) {
			t.Fatalf("%s: expected ErrCorruptSnapshot, got %v", tc.name, err)
		}
	}
}
