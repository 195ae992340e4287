package diffparse

import (
	"reflect"
	"testing"

	"diffscope/internal/types"
)

const sampleDiff = `diff --git a/pkg/shapes.go b/pkg/shapes.go
index 0000000..1111111 100644
--- a/pkg/shapes.go
+++ b/pkg/shapes.go
@@ -10,3 +10,4 @@ func Area() int {
 	w := 2
-	return w
+	h := 3
+	return w * h
 }
@@ -30,2 +31,2 @@ func Perimeter() int {
-	return 0
+	return 10
 }
`

func TestBuild(t *testing.T) {
	index, err := Build(sampleDiff)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := RangeIndex{
		"pkg/shapes.go": {
			{Start: 10, End: 13},
			{Start: 31, End: 32},
		},
	}
	if !reflect.DeepEqual(index, want) {
		t.Errorf("Build() = %v, want %v", index, want)
	}
}

func TestBuildEmptyDiff(t *testing.T) {
	for _, raw := range []string{"", "   \n\t\n"} {
		index, err := Build(raw)
		if err != nil {
			t.Fatalf("Build(%q) error = %v", raw, err)
		}
		if len(index) != 0 {
			t.Errorf("Build(%q) = %v, want empty index", raw, index)
		}
	}
}

func TestBuildSkipsDeletedFiles(t *testing.T) {
	raw := `diff --git a/gone.py b/gone.py
deleted file mode 100644
index 1111111..0000000
--- a/gone.py
+++ /dev/null
@@ -1,2 +0,0 @@
-a = 1
-b = 2
`
	index, err := Build(raw)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(index) != 0 {
		t.Errorf("Build() = %v, want deleted file omitted", index)
	}
}

func TestBuildSkipsPureDeletionHunks(t *testing.T) {
	raw := `diff --git a/app.py b/app.py
index 0000000..1111111 100644
--- a/app.py
+++ b/app.py
@@ -5,2 +4,0 @@ def old():
-    x = 1
-    return x
@@ -20,1 +18,2 @@ def new():
-    pass
+    y = 2
+    return y
`
	index, err := Build(raw)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := RangeIndex{
		"app.py": {{Start: 18, End: 19}},
	}
	if !reflect.DeepEqual(index, want) {
		t.Errorf("Build() = %v, want %v", index, want)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		input []types.LineInterval
		want  []types.LineInterval
	}{
		{
			name:  "empty",
			input: nil,
			want:  nil,
		},
		{
			name:  "disjoint stay separate",
			input: []types.LineInterval{{Start: 1, End: 2}, {Start: 10, End: 12}},
			want:  []types.LineInterval{{Start: 1, End: 2}, {Start: 10, End: 12}},
		},
		{
			name:  "overlapping coalesce",
			input: []types.LineInterval{{Start: 1, End: 5}, {Start: 3, End: 8}},
			want:  []types.LineInterval{{Start: 1, End: 8}},
		},
		{
			name:  "adjacent coalesce",
			input: []types.LineInterval{{Start: 1, End: 4}, {Start: 5, End: 7}},
			want:  []types.LineInterval{{Start: 1, End: 7}},
		},
		{
			name:  "unsorted input",
			input: []types.LineInterval{{Start: 20, End: 22}, {Start: 1, End: 3}, {Start: 2, End: 5}},
			want:  []types.LineInterval{{Start: 1, End: 5}, {Start: 20, End: 22}},
		},
		{
			name:  "contained interval absorbed",
			input: []types.LineInterval{{Start: 1, End: 10}, {Start: 3, End: 4}},
			want:  []types.LineInterval{{Start: 1, End: 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	index := RangeIndex{
		"z/last.go":  {{Start: 1, End: 1}},
		"a/first.py": {{Start: 1, End: 1}},
		"m/mid.java": {{Start: 1, End: 1}},
	}

	want := []string{"a/first.py", "m/mid.java", "z/last.go"}
	if got := index.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}
