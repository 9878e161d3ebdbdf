package diag

import (
	"testing"

	"fern/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(SemaUnboundName, span(0, 0, 1), "a")) {
		t.Fatal("first add must succeed")
	}
	if !b.Add(NewError(SemaUnboundName, span(0, 1, 2), "b")) {
		t.Fatal("second add must succeed")
	}
	if b.Add(NewError(SemaUnboundName, span(0, 2, 3), "c")) {
		t.Fatal("add beyond cap must report false")
	}
	if b.Len() != 2 {
		t.Fatalf("len: got=%d want=2", b.Len())
	}
}

func TestBagCapBeyondUint16(t *testing.T) {
	b := NewBag(1 << 16)
	if got := b.Cap(); got != 1<<16 {
		t.Fatalf("cap: got=%d want=%d", got, 1<<16)
	}
	if !b.Add(NewError(SemaUnboundName, span(0, 0, 1), "a")) {
		t.Fatal("add under a large cap must succeed")
	}
	if b.Len() != 1 {
		t.Fatalf("len: got=%d want=1", b.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(New(SevWarning, LexUnknownChar, span(1, 5, 6), "w"))
	b.Add(NewError(SynUnexpectedToken, span(0, 9, 10), "e2"))
	b.Add(NewError(SemaUnboundName, span(0, 2, 4), "e1"))
	b.Add(NewError(LexUnknownChar, span(1, 5, 6), "e3"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "e1" || items[1].Message != "e2" {
		t.Fatalf("file/start order broken: got=%q,%q", items[0].Message, items[1].Message)
	}
	// Same span in file 1: error sorts before warning.
	if items[2].Message != "e3" || items[3].Message != "w" {
		t.Fatalf("severity order broken: got=%q,%q", items[2].Message, items[3].Message)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	d := NewError(SemaCannotUnify, span(0, 3, 7), "dup")
	b.Add(d)
	b.Add(d)
	b.Add(NewError(SemaCannotUnify, span(0, 3, 8), "other span"))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("len after dedup: got=%d want=2", b.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	b := NewBag(4)
	rb := ReportError(BagReporter{Bag: b}, SemaOccursCheck, span(0, 0, 1), "occurs")
	rb.WithNote(span(0, 2, 3), "variable bound here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("emit count: got=%d want=1", b.Len())
	}
	got := b.Items()[0]
	if got.Code != SemaOccursCheck || len(got.Notes) != 1 {
		t.Fatalf("diagnostic shape: got=%+v", got)
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{SemaUnboundName, "SEM3001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Fatalf("ID(%d): got=%q want=%q", tc.code, got, tc.want)
		}
	}
}
