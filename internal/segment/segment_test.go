package segment

import (
	"strings"
	"testing"

	"github.com/wesleyflorence/bookchat/internal/book"
)

func doc(lines ...string) *book.Document {
	return book.NewDocument("test", strings.Join(lines, "\n"))
}

func TestFindOccurrences_BasicHeadings(t *testing.T) {
	d := doc(
		"CONTENTS",
		"1. Intro",
		"body",
		"body",
		"2. Middle",
		"body",
	)
	occs := FindOccurrences(d, []string{"Intro", "Middle"}, nil)

	want := []Occurrence{
		{Title: "Intro", Line: 2},
		{Title: "Middle", Line: 5},
	}
	if len(occs) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(occs), occs)
	}
	for i, w := range want {
		if occs[i] != w {
			t.Errorf("occurrence[%d]: expected %v, got %v", i, w, occs[i])
		}
	}
}

func TestFindOccurrences_AnchoredAtLineStart(t *testing.T) {
	// A title appearing mid-line is running prose, not a heading.
	d := doc(
		"the Intro was memorable",
		"body",
	)
	occs := FindOccurrences(d, []string{"Intro"}, nil)
	if len(occs) != 0 {
		t.Errorf("expected no occurrences for mid-line match, got %v", occs)
	}
}

func TestFindOccurrences_CaseInsensitive(t *testing.T) {
	d := doc("THE FIRST STEP", "body")
	occs := FindOccurrences(d, []string{"The First Step"}, nil)
	if len(occs) != 1 || occs[0].Line != 1 {
		t.Fatalf("expected case-insensitive match at line 1, got %v", occs)
	}
}

func TestFindOccurrences_OptionalChapterNumber(t *testing.T) {
	d := doc(
		"12. The Final Push",
		"body",
		"The Final Push",
	)
	occs := FindOccurrences(d, []string{"The Final Push"}, nil)
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences (with and without number), got %v", occs)
	}
	if occs[0].Line != 1 || occs[1].Line != 3 {
		t.Errorf("expected lines 1 and 3, got %v", occs)
	}
}

func TestFindOccurrences_RegexMetacharactersInTitle(t *testing.T) {
	// Titles are matched literally, not as regex syntax.
	d := doc("What Next? (A Postscript)", "body")
	occs := FindOccurrences(d, []string{"What Next? (A Postscript)"}, nil)
	if len(occs) != 1 {
		t.Fatalf("expected literal match for metacharacter title, got %v", occs)
	}
}

func TestFindOccurrences_EmptyTitles(t *testing.T) {
	d := doc("line one", "line two")
	occs := FindOccurrences(d, nil, nil)
	if len(occs) != 0 {
		t.Errorf("expected no occurrences for empty title list, got %v", occs)
	}
}

func TestFindOccurrences_DocumentOrder(t *testing.T) {
	// Lines are visited outer-loop, so output is ascending by line even
	// when titles hit out of extraction order.
	d := doc(
		"Middle",
		strings.Repeat("x", 3),
		"Intro",
	)
	occs := FindOccurrences(d, []string{"Intro", "Middle"}, nil)
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %v", occs)
	}
	if occs[0].Line > occs[1].Line {
		t.Errorf("expected document order, got %v", occs)
	}
}

func TestMergeNearby_CollapsesRepeatWithinWindow(t *testing.T) {
	occs := []Occurrence{
		{Title: "Intro", Line: 10},
		{Title: "Intro", Line: 12},
	}
	merged := MergeNearby(occs, 10)
	if len(merged) != 1 {
		t.Fatalf("expected 1 occurrence after merge, got %v", merged)
	}
	if merged[0].Line != 10 {
		t.Errorf("expected first sighting (line 10) kept, got %v", merged[0])
	}
}

func TestMergeNearby_KeepsRepeatBeyondWindow(t *testing.T) {
	occs := []Occurrence{
		{Title: "Intro", Line: 10},
		{Title: "Intro", Line: 25},
	}
	merged := MergeNearby(occs, 10)
	if len(merged) != 2 {
		t.Fatalf("expected both occurrences kept (gap > window), got %v", merged)
	}
}

func TestMergeNearby_DifferentTitlesNotMerged(t *testing.T) {
	occs := []Occurrence{
		{Title: "Intro", Line: 10},
		{Title: "Middle", Line: 12},
	}
	merged := MergeNearby(occs, 10)
	if len(merged) != 2 {
		t.Fatalf("expected different titles untouched by merge, got %v", merged)
	}
}

func TestMergeNearby_Idempotent(t *testing.T) {
	occs := []Occurrence{
		{Title: "A", Line: 5},
		{Title: "A", Line: 8},
		{Title: "B", Line: 30},
		{Title: "B", Line: 45},
		{Title: "C", Line: 50},
	}
	once := MergeNearby(occs, 10)
	twice := MergeNearby(once, 10)
	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("merge not idempotent at %d: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestMergeNearby_Empty(t *testing.T) {
	if got := MergeNearby(nil, 10); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %v", got)
	}
}

func TestFilterNear_DropsCloseStartRegardlessOfTitle(t *testing.T) {
	occs := []Occurrence{
		{Title: "Intro", Line: 10},
		{Title: "Middle", Line: 15},
	}
	kept := FilterNear(occs, 20)
	if len(kept) != 1 {
		t.Fatalf("expected only the first occurrence kept, got %v", kept)
	}
	if kept[0].Line != 10 {
		t.Errorf("expected line 10 kept, got %v", kept[0])
	}
}

func TestFilterNear_KeepsSpacedStarts(t *testing.T) {
	occs := []Occurrence{
		{Title: "Intro", Line: 10},
		{Title: "Middle", Line: 30},
		{Title: "End", Line: 49},
	}
	kept := FilterNear(occs, 20)
	// Line 49 is only 19 lines after the previous kept (30), so it goes.
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept, got %v", kept)
	}
	if kept[0].Line != 10 || kept[1].Line != 30 {
		t.Errorf("expected lines 10 and 30, got %v", kept)
	}
}

func TestFilterNear_MeasuresFromKeptNotDropped(t *testing.T) {
	// 10 kept, 25 dropped (gap 15), 40 must be compared against 10 — the
	// previous kept occurrence — and kept (gap 30).
	occs := []Occurrence{
		{Title: "A", Line: 10},
		{Title: "B", Line: 25},
		{Title: "C", Line: 40},
	}
	kept := FilterNear(occs, 20)
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept, got %v", kept)
	}
	if kept[1].Line != 40 {
		t.Errorf("expected line 40 kept, got %v", kept)
	}
}

func TestFilterNear_NeverIncreasesCount(t *testing.T) {
	occs := []Occurrence{
		{Title: "A", Line: 1},
		{Title: "B", Line: 2},
		{Title: "C", Line: 100},
		{Title: "D", Line: 105},
		{Title: "E", Line: 300},
	}
	for _, gap := range []int{0, 1, 5, 20, 500} {
		kept := FilterNear(occs, gap)
		if len(kept) > len(occs) {
			t.Errorf("gap %d: filter increased count: %d > %d", gap, len(kept), len(occs))
		}
		// Order preserved: ascending lines.
		for i := 1; i < len(kept); i++ {
			if kept[i].Line < kept[i-1].Line {
				t.Errorf("gap %d: order not preserved: %v", gap, kept)
			}
		}
	}
}

func TestReconcile_EmptyInput(t *testing.T) {
	if got := Reconcile(nil, DefaultOptions()); len(got) != 0 {
		t.Errorf("expected empty reconciliation for empty input, got %v", got)
	}
}

func TestSplit_ScenarioWithPreface(t *testing.T) {
	d := doc(
		"CONTENTS",
		"1. Intro",
		"body",
		"body",
		"2. Middle",
		"body",
	)
	starts := []Occurrence{
		{Title: "Intro", Line: 2},
		{Title: "Middle", Line: 5},
	}
	ranges, err := Split(d, starts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKeys := []string{"0000_Preface", "0002_Intro", "0005_Middle"}
	if len(ranges) != len(wantKeys) {
		t.Fatalf("expected %d ranges, got %d: %v", len(wantKeys), len(ranges), ranges)
	}
	for i, k := range wantKeys {
		if ranges[i].Key != k {
			t.Errorf("range[%d]: expected key %q, got %q", i, k, ranges[i].Key)
		}
	}

	if ranges[0].Text != "CONTENTS" {
		t.Errorf("expected preface text %q, got %q", "CONTENTS", ranges[0].Text)
	}
	if ranges[1].Text != "1. Intro\nbody\nbody" {
		t.Errorf("expected intro lines 2-4, got %q", ranges[1].Text)
	}
	if ranges[2].Text != "2. Middle\nbody" {
		t.Errorf("expected middle lines 5-6, got %q", ranges[2].Text)
	}
}

func TestSplit_NoPrefaceWhenFirstStartIsLineOne(t *testing.T) {
	d := doc("Intro", "body")
	ranges, err := Split(d, []Occurrence{{Title: "Intro", Line: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %v", ranges)
	}
	if ranges[0].Key != "0001_Intro" {
		t.Errorf("expected key %q, got %q", "0001_Intro", ranges[0].Key)
	}
}

func TestSplit_EmptyStarts(t *testing.T) {
	d := doc("line")
	_, err := Split(d, nil)
	if err != ErrNoOccurrences {
		t.Fatalf("expected ErrNoOccurrences, got %v", err)
	}
}

func TestSplit_RangesPartitionDocument(t *testing.T) {
	lines := []string{
		"front matter",
		"more front matter",
		"Chapter One",
		"text a",
		"text b",
		"Chapter Two",
		"text c",
		"Chapter Three",
		"text d",
		"text e",
	}
	d := doc(lines...)
	starts := []Occurrence{
		{Title: "Chapter One", Line: 3},
		{Title: "Chapter Two", Line: 6},
		{Title: "Chapter Three", Line: 8},
	}
	ranges, err := Split(d, starts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Contiguous, non-overlapping, covering all lines.
	expectedStart := 1
	for i, r := range ranges {
		if r.Start != expectedStart {
			t.Errorf("range[%d] (%s): expected start %d, got %d", i, r.Key, expectedStart, r.Start)
		}
		if r.End < r.Start {
			t.Errorf("range[%d] (%s): end %d before start %d", i, r.Key, r.End, r.Start)
		}
		expectedStart = r.End + 1
	}
	if last := ranges[len(ranges)-1]; last.End != d.LineCount() {
		t.Errorf("expected last range to end at line %d, got %d", d.LineCount(), last.End)
	}

	// Concatenating the ranges reconstructs the document, modulo the
	// per-range whitespace trim (none of these lines have edge whitespace).
	var rebuilt []string
	for _, r := range ranges {
		rebuilt = append(rebuilt, r.Text)
	}
	if got, want := strings.Join(rebuilt, "\n"), strings.Join(lines, "\n"); got != want {
		t.Errorf("ranges do not reconstruct document:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestPipeline_EndToEndReconciliation(t *testing.T) {
	// A TOC echo right before the real chapter start: the heading appears
	// in the contents listing and again as the actual chapter heading.
	d := doc(
		"CONTENTS",            // 1
		"The First Step",      // 2 (toc echo)
		"The Second Step",     // 3 (toc echo)
		"",                    // 4
		"1. The First Step",   // 5 (real heading)
		"body", "body", "body", // 6-8
		"body", "body", "body", // 9-11
		"body", "body", "body", // 12-14
		"body", "body", "body", // 15-17
		"body", "body", "body", // 18-20
		"body", "body", "body", // 21-23
		"body",                // 24
		"2. The Second Step",  // 25
		"body",                // 26
	)
	titles := []string{"The First Step", "The Second Step"}

	occs := FindOccurrences(d, titles, nil)
	starts := Reconcile(occs, DefaultOptions())

	// The filter drops lines 3 and 5 for crowding the kept start at line
	// 2; the real second chapter at line 25 survives.
	want := []Occurrence{
		{Title: "The First Step", Line: 2},
		{Title: "The Second Step", Line: 25},
	}
	if len(starts) != len(want) {
		t.Fatalf("expected %d starts, got %v", len(want), starts)
	}
	for i, w := range want {
		if starts[i] != w {
			t.Errorf("start[%d]: expected %v, got %v", i, w, starts[i])
		}
	}
}
