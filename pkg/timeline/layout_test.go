package timeline

import (
	"reflect"
	"testing"
)

var layoutOpts = Options{HourHeight: 60, MinVisualHeight: 24}

func laidByID(t *testing.T, laid []Laid, id string) Laid {
	t.Helper()
	for _, l := range laid {
		if l.ID == id {
			return l
		}
	}
	t.Fatalf("block %q missing from layout output", id)
	return Laid{}
}

func TestLayoutEmptyAndSingle(t *testing.T) {
	if got := Layout(nil, layoutOpts); len(got) != 0 {
		t.Fatalf("empty input should yield empty output, got %d", len(got))
	}

	laid := Layout([]Entry{{ID: "a", StartMin: 540, Duration: 60}}, layoutOpts)
	if len(laid) != 1 {
		t.Fatalf("expected 1 block, got %d", len(laid))
	}
	if laid[0].Col != 0 || laid[0].TotalCols != 1 {
		t.Fatalf("single block col/totalCols = %d/%d, want 0/1", laid[0].Col, laid[0].TotalCols)
	}
	if laid[0].Top != 540 || laid[0].Height != 60 {
		t.Fatalf("single block top/height = %v/%v, want 540/60", laid[0].Top, laid[0].Height)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	entries := []Entry{
		{ID: "a", StartMin: 540, Duration: 60},
		{ID: "b", StartMin: 540, Duration: 60},
		{ID: "c", StartMin: 570, Duration: 30},
		{ID: "d", StartMin: 600, Duration: 90},
	}
	first := Layout(entries, layoutOpts)
	second := Layout(entries, layoutOpts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("layout is not deterministic:\n%v\n%v", first, second)
	}
}

func TestLayoutNoOverlapWithinColumn(t *testing.T) {
	entries := []Entry{
		{ID: "a", StartMin: 540, Duration: 60},
		{ID: "b", StartMin: 555, Duration: 120},
		{ID: "c", StartMin: 560, Duration: 15},
		{ID: "d", StartMin: 600, Duration: 30},
		{ID: "e", StartMin: 700, Duration: 45},
	}
	laid := Layout(entries, layoutOpts)
	for i := range laid {
		for j := i + 1; j < len(laid); j++ {
			a, b := laid[i], laid[j]
			if a.Col != b.Col {
				continue
			}
			if float64(a.StartMin) < b.VisualEnd && float64(b.StartMin) < a.VisualEnd {
				t.Fatalf("blocks %q and %q share column %d and overlap", a.ID, b.ID, a.Col)
			}
		}
	}
}

func TestLayoutMinimumColumns(t *testing.T) {
	// Three blocks covering the same interval need exactly 3 columns.
	entries := []Entry{
		{ID: "a", StartMin: 540, Duration: 30},
		{ID: "b", StartMin: 540, Duration: 30},
		{ID: "c", StartMin: 540, Duration: 30},
	}
	for _, l := range Layout(entries, layoutOpts) {
		if l.TotalCols != 3 {
			t.Fatalf("block %q totalCols = %d, want 3", l.ID, l.TotalCols)
		}
	}

	// Two back-to-back blocks stay in one full-width column each.
	entries = []Entry{
		{ID: "a", StartMin: 540, Duration: 30},
		{ID: "b", StartMin: 570, Duration: 30},
	}
	for _, l := range Layout(entries, layoutOpts) {
		if l.Col != 0 || l.TotalCols != 1 {
			t.Fatalf("block %q col/totalCols = %d/%d, want 0/1", l.ID, l.Col, l.TotalCols)
		}
	}
}

func TestLayoutScenario(t *testing.T) {
	// 09:00+60 overlaps 09:30+30; 10:00+60 starts exactly when both
	// end, so it reopens column 0 and forms its own group.
	entries := []Entry{
		{ID: "one", StartMin: 540, Duration: 60},
		{ID: "two", StartMin: 570, Duration: 30},
		{ID: "three", StartMin: 600, Duration: 60},
	}
	laid := Layout(entries, Options{HourHeight: 60})

	one := laidByID(t, laid, "one")
	two := laidByID(t, laid, "two")
	three := laidByID(t, laid, "three")

	if one.Col != 0 || one.TotalCols != 2 {
		t.Fatalf("one col/totalCols = %d/%d, want 0/2", one.Col, one.TotalCols)
	}
	if two.Col != 1 || two.TotalCols != 2 {
		t.Fatalf("two col/totalCols = %d/%d, want 1/2", two.Col, two.TotalCols)
	}
	if three.Col != 0 || three.TotalCols != 1 {
		t.Fatalf("three col/totalCols = %d/%d, want 0/1", three.Col, three.TotalCols)
	}
}

func TestLayoutVisualEndForcesColumn(t *testing.T) {
	// A 15-minute block at the 24px floor occupies 24 visual minutes,
	// so a block starting 15 minutes later still collides visually and
	// must take a second column.
	entries := []Entry{
		{ID: "short", StartMin: 540, Duration: 15},
		{ID: "next", StartMin: 555, Duration: 30},
	}
	laid := Layout(entries, layoutOpts)
	short := laidByID(t, laid, "short")
	next := laidByID(t, laid, "next")

	if short.VisualEnd != 564 { // 540 + 24px/60px*60min
		t.Fatalf("short visualEnd = %v, want 564", short.VisualEnd)
	}
	if short.Col == next.Col {
		t.Fatalf("visually colliding blocks share column %d", short.Col)
	}
	if short.TotalCols != 2 || next.TotalCols != 2 {
		t.Fatalf("totalCols = %d/%d, want 2/2", short.TotalCols, next.TotalCols)
	}
	if short.Height != 24 {
		t.Fatalf("short height = %v, want the 24 floor", short.Height)
	}

	// Without pixel options, nominal durations rule and both fit in
	// one column.
	laid = Layout(entries, Options{HourHeight: 60})
	if laidByID(t, laid, "short").Col != laidByID(t, laid, "next").Col {
		t.Fatalf("nominal layout should stack back-to-back blocks in one column")
	}
}

func TestLayoutLongerBlockTakesLowerColumn(t *testing.T) {
	entries := []Entry{
		{ID: "short", StartMin: 540, Duration: 30},
		{ID: "long", StartMin: 540, Duration: 120},
	}
	laid := Layout(entries, layoutOpts)
	if laidByID(t, laid, "long").Col != 0 {
		t.Fatalf("longer block should take column 0")
	}
	if laidByID(t, laid, "short").Col != 1 {
		t.Fatalf("shorter block should take column 1")
	}
}

func TestLayoutDefaultDuration(t *testing.T) {
	laid := Layout([]Entry{{ID: "a", StartMin: 540}}, layoutOpts)
	if laid[0].EndMin != 600 {
		t.Fatalf("zero duration should default to 60 minutes, end = %d", laid[0].EndMin)
	}
}
