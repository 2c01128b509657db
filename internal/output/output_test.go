package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/antopolskiy/tasklist/internal/task"
)

func TestDetectJSON(t *testing.T) {
	if got := Detect(true, false, false); got != FormatJSON {
		t.Errorf("Detect(json=true) = %d, want FormatJSON", got)
	}
}

func TestDetectTable(t *testing.T) {
	if got := Detect(false, true, false); got != FormatTable {
		t.Errorf("Detect(table=true) = %d, want FormatTable", got)
	}
}

func TestDetectCompactFlag(t *testing.T) {
	if got := Detect(false, false, true); got != FormatCompact {
		t.Errorf("Detect(compact=true) = %d, want FormatCompact", got)
	}
}

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminalFn
	isTerminalFn = func() bool { return tty }
	t.Cleanup(func() { isTerminalFn = orig })
}

func TestDetectAutoTerminal(t *testing.T) {
	t.Setenv(EnvOutput, "")
	withTerminal(t, true)
	if got := Detect(false, false, false); got != FormatTable {
		t.Errorf("Detect on a terminal = %d, want FormatTable", got)
	}
}

func TestDetectAutoPipe(t *testing.T) {
	t.Setenv(EnvOutput, "")
	withTerminal(t, false)
	if got := Detect(false, false, false); got != FormatJSON {
		t.Errorf("Detect on a pipe = %d, want FormatJSON", got)
	}
}

func TestDetectEnv(t *testing.T) {
	withTerminal(t, true)
	tests := []struct {
		env  string
		want Format
	}{
		{"json", FormatJSON},
		{"table", FormatTable},
		{"compact", FormatCompact},
		{"oneline", FormatCompact},
		{"", FormatTable},
		{"yaml", FormatTable},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(EnvOutput, tt.env)
			if got := Detect(false, false, false); got != tt.want {
				t.Errorf("Detect with %s=%q = %d, want %d", EnvOutput, tt.env, got, tt.want)
			}
		})
	}
}

func TestDetectFlagOverridesEnv(t *testing.T) {
	t.Setenv(EnvOutput, "json")

	if got := Detect(false, true, false); got != FormatTable {
		t.Errorf("Detect(table=true) with %s=json = %d, want FormatTable (flag wins)", EnvOutput, got)
	}
}

var tableTasks = []task.Task{
	{ID: "3f2a9c10-aaaa-4000-8000-000000000001", Text: "Buy milk"},
	{ID: "7b11d2e0-bbbb-4000-8000-000000000002", Text: "Walk dog", Completed: true},
}

func TestTaskTable(t *testing.T) {
	DisableColor()
	var out, errOut bytes.Buffer
	TaskTable(&out, &errOut, tableTasks)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "ID") || !strings.Contains(lines[0], "TEXT") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "3f2a9c10") || !strings.Contains(lines[1], "[ ]") || !strings.Contains(lines[1], "Buy milk") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "[x]") || !strings.Contains(lines[2], "Walk dog") {
		t.Errorf("row 2 = %q", lines[2])
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected notice: %q", errOut.String())
	}
}

func TestTaskTableEmpty(t *testing.T) {
	var out, errOut bytes.Buffer
	TaskTable(&out, &errOut, nil)
	if out.Len() != 0 {
		t.Errorf("expected no table output, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "No tasks found.") {
		t.Errorf("notice = %q", errOut.String())
	}
}

func TestTaskTableTruncatesLongText(t *testing.T) {
	DisableColor()
	var out, errOut bytes.Buffer
	long := strings.Repeat("x", 100)
	TaskTable(&out, &errOut, []task.Task{{ID: "abc", Text: long}})
	if strings.Contains(out.String(), long) {
		t.Error("long text was not truncated")
	}
	if !strings.Contains(out.String(), "...") {
		t.Error("expected ellipsis")
	}
}

func TestTaskCompact(t *testing.T) {
	var out, errOut bytes.Buffer
	TaskCompact(&out, &errOut, tableTasks)
	want := "3f2a9c10 [ ] Buy milk\n7b11d2e0 [x] Walk dog\n"
	if out.String() != want {
		t.Errorf("compact =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(tableTasks); got != "2 tasks (1 done)" {
		t.Errorf("Summary = %q", got)
	}
	if got := Summary(tableTasks[:1]); got != "1 task (0 done)" {
		t.Errorf("Summary = %q", got)
	}
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "DUPLICATE_TASK", "Task already exists!", map[string]any{"text": "x"})

	var got ErrorResponse
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Code != "DUPLICATE_TASK" || got.Error != "Task already exists!" || got.Details["text"] != "x" {
		t.Errorf("got %+v", got)
	}
}

func TestJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, tableTasks[:1]); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  {\n    \"id\"") {
		t.Errorf("unexpected JSON layout:\n%s", buf.String())
	}
}
