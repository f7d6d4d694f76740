// Copyright 2026 The Parlance Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/parlance-dev/parlance/lib/clock"
	"github.com/parlance-dev/parlance/lib/execute"
	"github.com/parlance-dev/parlance/lib/parser"
	"github.com/parlance-dev/parlance/lib/tree"
)

type testSender string

func (s testSender) Name() string { return string(s) }

func TestWriterReader_RoundTrip(t *testing.T) {
	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer)
	if err != nil {
		t.Fatalf("writer: %v", err)
	}

	want := []Record{
		{
			Sender:  "alice",
			Line:    "give Bob 5",
			Command: "give",
			Elapsed: 3 * time.Millisecond,
			Spans: []Span{
				{Component: "give", Success: true, Start: 0, End: 5, Consumed: "give"},
				{Component: "target", Success: true, Start: 5, End: 9, Consumed: "Bob "},
			},
		},
		{
			Sender: "mallory",
			Line:   "gvie Bob 5",
			Error:  `unknown command "gvie" (did you mean "give"?)`,
		},
	}
	for i, record := range want {
		if err := writer.Write(record); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reader, err := NewReader(bytes.NewReader(buffer.Bytes()))
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	defer reader.Close()

	got, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Line != want[i].Line || got[i].Command != want[i].Command || got[i].Error != want[i].Error {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
		if len(got[i].Spans) != len(want[i].Spans) {
			t.Errorf("record %d: %d spans, want %d", i, len(got[i].Spans), len(want[i].Spans))
		}
	}
}

func TestWriter_RejectsAfterClose(t *testing.T) {
	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer)
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := writer.Write(Record{Line: "late"}); err == nil {
		t.Fatal("write after close accepted")
	}
}

func TestRecorder_ObservesDispatches(t *testing.T) {
	tr := tree.New(tree.Config{})
	cmd, err := tree.NewCommand("echo").
		Component(tree.Argument("text", parser.Greedy())).
		Handler(func(ctx *parser.Context) error { return nil }).
		Done()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	tr.MustRegister(cmd)

	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer)
	if err != nil {
		t.Fatalf("writer: %v", err)
	}
	fake := clock.Fake(time.Unix(1700000000, 0))
	recorder := NewRecorder(writer, WithClock(fake))

	coordinator := newTestCoordinator(tr, recorder)
	coordinator.Dispatch(context.Background(), testSender("alice"), "echo hello")
	coordinator.Dispatch(context.Background(), testSender("bob"), "missing")
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reader, err := NewReader(bytes.NewReader(buffer.Bytes()))
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	defer reader.Close()
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	success := records[0]
	if success.Command != "echo" || success.Sender != "alice" || success.Error != "" {
		t.Errorf("success record = %+v", success)
	}
	foundText := false
	for _, span := range success.Spans {
		if span.Component == "text" && span.Consumed == "hello" {
			foundText = true
		}
	}
	if !foundText {
		t.Errorf("spans = %+v, want text span consuming hello", success.Spans)
	}

	failure := records[1]
	if failure.Command != "" || failure.Error == "" {
		t.Errorf("failure record = %+v", failure)
	}
}

// newTestCoordinator wires an inline coordinator with the recorder as
// its observer.
func newTestCoordinator(tr *tree.Tree, recorder *Recorder) execute.Coordinator {
	return execute.NewInline(execute.Config{Tree: tr, Observer: recorder})
}
