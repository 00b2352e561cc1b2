package goals

import "sort"

// RenumberTasks returns tasks sorted by their current order with orders reset to 0..n-1.
func RenumberTasks(tasks []Task) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Order = i
	}
	return out
}

// AppendTask adds t after the existing tasks.
func AppendTask(tasks []Task, t Task) []Task {
	out := RenumberTasks(tasks)
	t.Order = len(out)
	return append(out, t)
}

// RemoveTask drops the task with id and closes the gap in the ordering.
func RemoveTask(tasks []Task, id string) ([]Task, bool) {
	out := make([]Task, 0, len(tasks))
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return tasks, false
	}
	return RenumberTasks(out), true
}

// MoveTask moves the task with id to toIndex, clamped into range.
func MoveTask(tasks []Task, id string, toIndex int) ([]Task, bool) {
	ordered := RenumberTasks(tasks)
	from := -1
	for i, t := range ordered {
		if t.ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return tasks, false
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(ordered)-1 {
		toIndex = len(ordered) - 1
	}
	moved := ordered[from]
	rest := append(append([]Task(nil), ordered[:from]...), ordered[from+1:]...)
	out := make([]Task, 0, len(ordered))
	out = append(out, rest[:toIndex]...)
	out = append(out, moved)
	out = append(out, rest[toIndex:]...)
	for i := range out {
		out[i].Order = i
	}
	return out, true
}

// ToggleTask flips the completed flag of the task with id.
func ToggleTask(tasks []Task, id string) ([]Task, bool) {
	out := append([]Task(nil), tasks...)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
			return out, true
		}
	}
	return tasks, false
}

// IsPermutation reports whether ids names every existing id exactly once.
func IsPermutation(existing, ids []string) bool {
	if len(existing) != len(ids) {
		return false
	}
	want := make(map[string]int, len(existing))
	for _, id := range existing {
		want[id]++
	}
	for _, id := range ids {
		if want[id] == 0 {
			return false
		}
		want[id]--
	}
	return true
}
