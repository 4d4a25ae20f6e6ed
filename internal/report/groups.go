package report

import (
	"github.com/unobserved-io/furt/internal/models"
)

// TaskGroup collects tasks sharing an identical name and tag string, the
// unit the history view repeats and edits together.
type TaskGroup struct {
	Name  string
	Tags  string
	Tasks []models.Task
}

// SecondsTotal sums the member durations.
func (g *TaskGroup) SecondsTotal() int {
	total := 0
	for i := range g.Tasks {
		total += g.Tasks[i].SecondsTotal()
	}
	return total
}

// Earnings sums the member earnings.
func (g *TaskGroup) Earnings() float64 {
	total := 0.0
	for i := range g.Tasks {
		total += g.Tasks[i].Earnings()
	}
	return total
}

// GroupByNameAndTags partitions tasks into groups by exact (name, tags)
// match. Group order follows first encounter in the input, so callers get
// newest-first groups when they pass tasks sorted by start time descending.
func GroupByNameAndTags(tasks []models.Task) []*TaskGroup {
	var groups []*TaskGroup
	index := make(map[string]*TaskGroup)

	for _, task := range tasks {
		key := task.Name + "\x00" + task.Tags
		group, ok := index[key]
		if !ok {
			group = &TaskGroup{Name: task.Name, Tags: task.Tags}
			index[key] = group
			groups = append(groups, group)
		}
		group.Tasks = append(group.Tasks, task)
	}

	return groups
}
