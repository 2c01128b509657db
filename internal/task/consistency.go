package task

import "fmt"

// EnsureConsistency assigns IDs to records that lack one and replaces
// duplicated IDs, keeping the first occurrence. It returns the repaired list
// and a description of every repair.
func EnsureConsistency(tasks []Task) ([]Task, []string) {
	out := Clone(tasks)
	seen := make(map[string]bool, len(out))
	var repairs []string

	for i := range out {
		t := &out[i]
		switch {
		case t.ID == "":
			t.ID = NewID()
			repairs = append(repairs, fmt.Sprintf("assigned id %s to %q", ShortID(t.ID), t.Text))
		case seen[t.ID]:
			old := t.ID
			t.ID = NewID()
			repairs = append(repairs, fmt.Sprintf("duplicate id %s on %q reassigned to %s",
				ShortID(old), t.Text, ShortID(t.ID)))
		}
		seen[t.ID] = true
	}
	return out, repairs
}
