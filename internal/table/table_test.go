package table

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ironsheep/imgshape/internal/shape"
)

// writeTable writes content to a temp file and returns its path.
func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shapes.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}
	return path
}

func TestEncode_Row(t *testing.T) {
	d := shape.NewDistribution()
	d.Set(shape.Shape{Width: 100, Height: 200}, 1)

	got := string(Marshal(d))
	want := "\"(100, 200)\",1\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncode_FollowsIterationOrder(t *testing.T) {
	d := shape.Aggregate([]shape.Shape{{Width: 800, Height: 600}, {Width: 1, Height: 2}, {Width: 800, Height: 600}, {Width: 30, Height: 40}})

	got := string(Marshal(d))
	want := "\"(800, 600)\",2\n\"(1, 2)\",1\n\"(30, 40)\",1\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncode_Empty(t *testing.T) {
	if got := Marshal(shape.NewDistribution()); len(got) != 0 {
		t.Errorf("got %q, want no output", got)
	}
}

func TestQuoteField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5", "5"},
		{"(1, 2)", "\"(1, 2)\""},
		{"a,b", "\"a,b\""},
		{"has \"quotes\"", "has \"quotes\""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := quoteField(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain pair", "key1,val1", []string{"key1", "val1"}},
		{"single field", "key1", []string{"key1"}},
		{"empty value", "key1,", []string{"key1", ""}},
		{"quoted key", "\"key1, key\",val1", []string{"key1, key", "val1"}},
		{"quoted value", "key2,\"val2, val\"", []string{"key2", "val2, val"}},
		{"three fields", "a,b,c", []string{"a", "b", "c"}},
		{"doubled quote", "\"say \"\"hi\"\"\",1", []string{"say \"hi\"", "1"}},
		{"quote mid field", "ab\"c,d", []string{"ab\"c", "d"}},
		{"text after closing quote", "\"ab\"cd,e", []string{"abcd", "e"}},
		{"unterminated quote", "\"ab,cd", []string{"ab,cd"}},
		{"leading empty", ",x", []string{"", "x"}},
		{"tuple key", "\"(800, 600)\",5", []string{"(800, 600)", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRow(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitRow(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitKeyValue(t *testing.T) {
	tests := []struct {
		name      string
		fields    []string
		wantKey   string
		wantValue string
	}{
		{"one field", []string{"k"}, "k", ""},
		{"two fields", []string{"k", "v"}, "k", "v"},
		{"many fields", []string{"k", "1", "2", "3"}, "k", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, v := splitKeyValue(tt.fields)
			if k != tt.wantKey || v != tt.wantValue {
				t.Errorf("got (%q, %q), want (%q, %q)", k, v, tt.wantKey, tt.wantValue)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		key     string
		want    shape.Shape
		wantErr bool
	}{
		{"(100, 200)", shape.Shape{Width: 100, Height: 200}, false},
		{"(1920,1040)", shape.Shape{Width: 1920, Height: 1040}, false},
		{"  (8, 6)  ", shape.Shape{Width: 8, Height: 6}, false},
		{"800, 600", shape.Shape{Width: 800, Height: 600}, false},
		{"((3, 4))", shape.Shape{Width: 3, Height: 4}, false},
		{"(1, 2, 3)", shape.Shape{}, true},
		{"(1)", shape.Shape{}, true},
		{"(a, b)", shape.Shape{}, true},
		{"(1.5, 2)", shape.Shape{}, true},
		{"(0, 2)", shape.Shape{}, true},
		{"(-1, 2)", shape.Shape{}, true},
		{"", shape.Shape{}, true},
		{"key1", shape.Shape{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseShape(tt.key)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseShape(%q) should fail, got %v", tt.key, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShape(%q) failed: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"seven", 0, true},
		{"2.0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseCount(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCount(%q) should fail, got %d", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCount(%q) failed: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecode_Rows(t *testing.T) {
	input := "\"(100, 200)\",2\n\n\n\"(200, 100)\",1\r\n   \n\"(800, 600)\", 2\n"

	d, err := Decode(strings.NewReader(input), "inline")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := map[shape.Shape]int{
		{Width: 100, Height: 200}: 2,
		{Width: 200, Height: 100}: 1,
		{Width: 800, Height: 600}: 2,
	}
	if !reflect.DeepEqual(d.Map(), want) {
		t.Errorf("got %v, want %v", d.Map(), want)
	}

	wantOrder := []shape.Shape{{Width: 100, Height: 200}, {Width: 200, Height: 100}, {Width: 800, Height: 600}}
	if !reflect.DeepEqual(d.Shapes(), wantOrder) {
		t.Errorf("order: got %v, want %v", d.Shapes(), wantOrder)
	}
}

func TestDecode_MultiFieldMerge(t *testing.T) {
	d, err := Decode(strings.NewReader("\"(1, 2)\",1,0\n"), "inline")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := d.Count(shape.Shape{Width: 1, Height: 2}); got != 10 {
		t.Errorf("merged count: got %d, want 10", got)
	}
}

func TestDecode_DuplicateKeyReplaces(t *testing.T) {
	d, err := Decode(strings.NewReader("\"(1, 2)\",3\n\"(5, 5)\",1\n\"(1,2)\",7\n"), "inline")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := d.Count(shape.Shape{Width: 1, Height: 2}); got != 7 {
		t.Errorf("count: got %d, want 7", got)
	}
	if d.Len() != 2 {
		t.Errorf("Len: got %d, want 2", d.Len())
	}
}

func TestDecode_Empty(t *testing.T) {
	d, err := Decode(strings.NewReader(""), "inline")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len: got %d, want 0", d.Len())
	}
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		row   string
	}{
		{"bad key", "\"(1, 2)\",1\nkey1,val1\n", "row 2"},
		{"one field", "\"(1, 2)\"\n", "row 1"},
		{"bad value", "\"(1, 2)\",many\n", "row 1"},
		{"unquoted tuple", "(800, 600),2\n", "row 1"},
		{"three dims", "\"(1, 2, 3)\",1\n", "row 1"},
		{"zero count", "\"(1, 2)\",0\n", "row 1"},
		{"row after blanks", "\n\n\"(x, 2)\",1\n", "row 3"},
		{"overlong first line", strings.Repeat("x", 2*maxLine), "row 1"},
		{"overlong second line", "\"(1, 2)\",1\n" + strings.Repeat("7", maxLine+1) + "\n", "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), "shapes.csv")
			if !errors.Is(err, shape.ErrCorruptTable) {
				t.Fatalf("got %v, want ErrCorruptTable", err)
			}
			msg := err.Error()
			if !strings.Contains(msg, "shapes.csv") || !strings.Contains(msg, tt.row) {
				t.Errorf("error %q should name the file and %s", msg, tt.row)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeTable(t, "\"(100, 200)\",2\n\"(800, 600)\",5\n")

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Total() != 7 {
		t.Errorf("Total: got %d, want 7", d.Total())
	}
}

func TestLoad_InputNotFound(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.csv")},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, shape.ErrInputNotFound) {
				t.Fatalf("got %v, want ErrInputNotFound", err)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q should name %s", err, tt.path)
			}
		})
	}
}

func TestLoad_CorruptKey(t *testing.T) {
	path := writeTable(t, "\"(a, b)\",1\n")
	if _, err := Load(path); !errors.Is(err, shape.ErrCorruptTable) {
		t.Fatalf("got %v, want ErrCorruptTable", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	d := shape.Aggregate([]shape.Shape{{Width: 800, Height: 600}, {Width: 800, Height: 600}})

	written, err := Save(path, d)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !written {
		t.Fatal("Save reported nothing written")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\"(800, 600)\",2\n" {
		t.Errorf("file content: got %q", data)
	}
}

func TestSave_EmptyWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	written, err := Save(path, shape.NewDistribution())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if written {
		t.Error("Save reported a write for an empty distribution")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should not exist, stat err = %v", err)
	}
}

func TestSave_OutputAlreadyExists(t *testing.T) {
	path := writeTable(t, "keep me")
	d := shape.Aggregate([]shape.Shape{{Width: 1, Height: 1}})

	if _, err := Save(path, d); !errors.Is(err, shape.ErrOutputAlreadyExists) {
		t.Fatalf("got %v, want ErrOutputAlreadyExists", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "keep me" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestCheckOutput(t *testing.T) {
	existing := writeTable(t, "x")
	if err := CheckOutput(existing); !errors.Is(err, shape.ErrOutputAlreadyExists) {
		t.Errorf("existing: got %v, want ErrOutputAlreadyExists", err)
	}
	if err := CheckOutput(filepath.Join(t.TempDir(), "fresh.csv")); err != nil {
		t.Errorf("fresh: got %v, want nil", err)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		shapes []shape.Shape
	}{
		{"single", []shape.Shape{{Width: 100, Height: 200}}},
		{"five identical", []shape.Shape{{Width: 800, Height: 600}, {Width: 800, Height: 600}, {Width: 800, Height: 600}, {Width: 800, Height: 600}, {Width: 800, Height: 600}}},
		{"mixed", []shape.Shape{{Width: 100, Height: 200}, {Width: 200, Height: 100}, {Width: 800, Height: 600}, {Width: 600, Height: 800}, {Width: 1920, Height: 1040}, {Width: 800, Height: 600}, {Width: 100, Height: 200}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := shape.Aggregate(tt.shapes)

			path := filepath.Join(t.TempDir(), "shapes.csv")
			if _, err := Save(path, d); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !loaded.Equal(d) {
				t.Errorf("round trip: got %v, want %v", loaded.Map(), d.Map())
			}
			if !reflect.DeepEqual(loaded.Shapes(), d.Shapes()) {
				t.Errorf("order: got %v, want %v", loaded.Shapes(), d.Shapes())
			}
		})
	}
}

func TestRoundTrip_ExactTuple(t *testing.T) {
	d := shape.NewDistribution()
	d.Set(shape.Shape{Width: 100, Height: 200}, 1)

	loaded, err := Decode(strings.NewReader(string(Marshal(d))), "inline")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	entries := loaded.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Shape != (shape.Shape{Width: 100, Height: 200}) || entries[0].Count != 1 {
		t.Errorf("got %v, want (100, 200) x1", entries[0])
	}
}
