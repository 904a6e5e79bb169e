package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/kitchenlog/models"
)

func keys[T any](groups []Group[T]) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}

func TestGroupBy_ScenarioByDepartment(t *testing.T) {
	groups := GroupBy(scenarioTasks(), DepartmentLevel())

	require.Len(t, groups, 2)
	assert.Equal(t, "Deli", groups[0].Key)
	assert.Len(t, groups[0].Records, 2)
	assert.Equal(t, "Warehouse", groups[1].Key)
	assert.Len(t, groups[1].Records, 1)
}

func TestGroupBy_DepartmentThenArea(t *testing.T) {
	tasks := []models.CleaningTask{
		{ID: "a", Department: "Deli", AreaEquipment: "Slicer"},
		{ID: "b", Department: "Deli", AreaEquipment: "Floors"},
		{ID: "c", Department: "Deli", AreaEquipment: "Slicer"},
		{ID: "d", Department: "Deli"},
	}
	groups := GroupBy(tasks, DepartmentLevel(), AreaLevel())

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"Floors", "Slicer", UnknownKey}, keys(groups[0].Children))
	assert.Len(t, groups[0].Children[1].Records, 2)
	assert.Equal(t, len(tasks), Count(groups[0].Children))
}

func TestGroupBy_InsertionOrder(t *testing.T) {
	words := []string{"pear", "apple", "plum", "avocado", "banana"}
	groups := GroupBy(words, Level[string]{Key: func(s string) string { return s[:1] }})

	assert.Equal(t, []string{"p", "a", "b"}, keys(groups))
	assert.Equal(t, []string{"pear", "plum"}, groups[0].Records)
}

func TestGroupBy_SortedOrders(t *testing.T) {
	words := []string{"pear", "apple", "banana"}
	first := func(s string) string { return s[:1] }

	asc := GroupBy(words, Level[string]{Key: first, Order: Ascending})
	desc := GroupBy(words, Level[string]{Key: first, Order: Descending})

	assert.Equal(t, []string{"a", "b", "p"}, keys(asc))
	assert.Equal(t, []string{"p", "b", "a"}, keys(desc))
}

func TestGroupBy_UnknownBucket(t *testing.T) {
	tasks := []models.CleaningTask{{ID: "a", Department: ""}, {ID: "b", Department: "Deli"}, {ID: "c", Department: "  "}}
	groups := GroupBy(tasks, DepartmentLevel())

	// schema departments rank before anything else
	assert.Equal(t, []string{"Deli", UnknownKey}, keys(groups))
	assert.Len(t, groups[1].Records, 2)
}

func TestGroupBy_NestedCompleteness(t *testing.T) {
	f := NewFormatter(time.UTC, "")
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	var records []models.TemperatureRecord
	for i := 0; i < 30; i++ {
		r := reading(models.Locations[i%len(models.Locations)], "1", "C")
		r.RecordedAt = base.Add(time.Duration(i) * 7 * time.Hour)
		records = append(records, r)
	}

	groups := GroupBy(records, DayLevel(f), LocationLevel())
	assert.Equal(t, len(records), Count(groups))

	leaves := 0
	prev := ""
	for _, g := range groups {
		if prev != "" {
			assert.Greater(t, prev, g.Key, "days must be newest first")
		}
		prev = g.Key
		assert.Equal(t, len(g.Records), Count(g.Children))
		for _, c := range g.Children {
			leaves += len(c.Records)
		}
	}
	assert.Equal(t, len(records), leaves)
}

func TestGroupBy_NoLevels(t *testing.T) {
	groups := GroupBy([]int{1, 2, 3})
	require.Len(t, groups, 1)
	assert.Equal(t, []int{1, 2, 3}, groups[0].Records)
}

func TestGroupBy_DoesNotAliasInput(t *testing.T) {
	in := []string{"a1", "a2", "b1"}
	groups := GroupBy(in, Level[string]{Key: func(s string) string { return s[:1] }})
	groups[0].Records[0] = "zz"
	assert.Equal(t, "a1", in[0])
}
