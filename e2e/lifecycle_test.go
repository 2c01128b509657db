package e2e_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestE2E_Lifecycle(t *testing.T) {
	dir := initList(t)

	milk := mustAdd(t, dir, "Buy milk")
	dog := mustAdd(t, dir, "Walk dog")
	mustAdd(t, dir, "Write report")

	if got := texts(mustList(t, dir, "all")); got != "Buy milk,Walk dog,Write report" {
		t.Fatalf("list = %s", got)
	}

	var res resultJSON
	if r := runTasklistJSON(t, dir, &res, "done", dog.ID[:8]); r.exitCode != 0 {
		t.Fatalf("done failed: %s", r.stdout+r.stderr)
	}
	if res.Status != "completed" {
		t.Errorf("done status = %q", res.Status)
	}
	if got := texts(mustList(t, dir, "completed")); got != "Walk dog" {
		t.Errorf("completed = %s", got)
	}
	if got := texts(mustList(t, dir, "incomplete")); got != "Buy milk,Write report" {
		t.Errorf("incomplete = %s", got)
	}

	if r := runTasklistJSON(t, dir, &res, "edit", dog.ID, "Walk", "the", "dog"); r.exitCode != 0 {
		t.Fatalf("edit failed: %s", r.stdout+r.stderr)
	}
	tasks := mustList(t, dir, "all")
	if tasks[1].Text != "Walk the dog" || !tasks[1].Completed {
		t.Errorf("edited task = %+v", tasks[1])
	}

	if r := runTasklistJSON(t, dir, &res, "rm", "--force", milk.ID); r.exitCode != 0 {
		t.Fatalf("delete failed: %s", r.stdout+r.stderr)
	}
	if got := texts(mustList(t, dir, "all")); got != "Walk the dog,Write report" {
		t.Errorf("after delete = %s", got)
	}

	if r := runTasklistJSON(t, dir, &res, "toggle", dog.ID); r.exitCode != 0 || res.Status != "reopened" {
		t.Errorf("toggle back: exit %d status %q", r.exitCode, res.Status)
	}
}

func TestE2E_DuplicateAdd(t *testing.T) {
	dir := initList(t)
	mustAdd(t, dir, "Buy milk")

	r := runTasklist(t, dir, "--json", "add", "buy MILK")
	if r.exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", r.exitCode)
	}
	e := parseError(t, r)
	if e.Code != "DUPLICATE_TASK" || e.Error != "Task already exists!" {
		t.Errorf("error = %+v", e)
	}
	if n := len(mustList(t, dir, "all")); n != 1 {
		t.Errorf("got %d tasks, want 1", n)
	}
}

func TestE2E_DuplicateAddText(t *testing.T) {
	dir := initList(t)
	mustAdd(t, dir, "Buy milk")

	r := runTasklist(t, dir, "--table", "add", "Buy milk")
	if r.exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", r.exitCode)
	}
	if !strings.Contains(r.stderr, "Task already exists!") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestE2E_UnknownID(t *testing.T) {
	dir := initList(t)
	mustAdd(t, dir, "Buy milk")

	r := runTasklist(t, dir, "--json", "done", "ffffffff")
	if r.exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", r.exitCode)
	}
	if e := parseError(t, r); e.Code != "TASK_NOT_FOUND" {
		t.Errorf("code = %s", e.Code)
	}
}

func TestE2E_DeleteWithoutTTYNeedsForce(t *testing.T) {
	dir := initList(t)
	milk := mustAdd(t, dir, "Buy milk")

	r := runTasklist(t, dir, "--json", "delete", milk.ID)
	if r.exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", r.exitCode)
	}
	if n := len(mustList(t, dir, "all")); n != 1 {
		t.Errorf("task deleted without confirmation")
	}
}

func TestE2E_InvalidFilter(t *testing.T) {
	dir := initList(t)

	r := runTasklist(t, dir, "--json", "list", "--filter", "done")
	if r.exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", r.exitCode)
	}
	if e := parseError(t, r); e.Code != "INVALID_FILTER" {
		t.Errorf("code = %s", e.Code)
	}
}

func TestE2E_TableOutput(t *testing.T) {
	dir := initList(t)
	milk := mustAdd(t, dir, "Buy milk")

	r := runTasklist(t, dir, "--no-color", "--table", "list")
	if r.exitCode != 0 {
		t.Fatalf("list failed: %s", r.stderr)
	}
	if !strings.Contains(r.stdout, milk.ID[:8]) || !strings.Contains(r.stdout, "Buy milk") {
		t.Errorf("table = %q", r.stdout)
	}
}

func TestE2E_EmptyListTable(t *testing.T) {
	dir := initList(t)

	r := runTasklist(t, dir, "--table", "list")
	if r.exitCode != 0 {
		t.Fatalf("list failed: %s", r.stderr)
	}
	if !strings.Contains(r.stderr, "No tasks found.") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestE2E_CorruptSlotLoadsEmpty(t *testing.T) {
	dir := initList(t)
	if err := os.WriteFile(filepath.Join(dir, "todos.json"), []byte("not json at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	if n := len(mustList(t, dir, "all")); n != 0 {
		t.Errorf("got %d tasks from corrupt slot", n)
	}
	mustAdd(t, dir, "Recovered")
	if got := texts(mustList(t, dir, "all")); got != "Recovered" {
		t.Errorf("list = %s", got)
	}
}

func TestE2E_SQLiteBackend(t *testing.T) {
	dir := initList(t, "--storage", "sqlite")

	mustAdd(t, dir, "Buy milk")
	mustAdd(t, dir, "Walk dog")

	if got := texts(mustList(t, dir, "all")); got != "Buy milk,Walk dog" {
		t.Errorf("list = %s", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasklist.db")); err != nil {
		t.Errorf("expected sqlite database: %v", err)
	}
}

func TestE2E_EnvSelectsKey(t *testing.T) {
	dir := initList(t)
	mustAdd(t, dir, "Default list")

	r := runTasklistEnv(t, dir, []string{"TASKLIST_STORAGE_KEY=work"}, "--json", "add", "Work item")
	if r.exitCode != 0 {
		t.Fatalf("add failed: %s", r.stderr)
	}

	if got := texts(mustList(t, dir, "all")); got != "Default list" {
		t.Errorf("default list = %s", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "work.json")); err != nil {
		t.Errorf("expected work.json: %v", err)
	}
}

func TestE2E_LogFile(t *testing.T) {
	dir := initList(t)

	r := runTasklistEnv(t, dir, []string{"TASKLIST_LOG_FILE=tasklist.log", "TASKLIST_LOG_LEVEL=debug"}, "--json", "add", "Logged")
	if r.exitCode != 0 {
		t.Fatalf("add failed: %s", r.stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tasklist.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `msg="task add"`) {
		t.Errorf("log = %s", data)
	}
}

func TestE2E_InitTwice(t *testing.T) {
	dir := initList(t)

	cmd := runTasklist(t, dir, "--json", "init", "--dir", filepath.Dir(dir))
	if cmd.exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", cmd.exitCode)
	}
	if e := parseError(t, cmd); e.Code != "CONFIG_EXISTS" {
		t.Errorf("code = %s", e.Code)
	}
}
