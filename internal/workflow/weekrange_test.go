package workflow_test

import (
	"testing"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWeekRange 测试周区间计算 (周日起始)
func TestWeekRange(t *testing.T) {
	// 2025-03-12 为周三,所在周为 03-09 (周日) 到 03-15 (周六)
	day, err := time.Parse(workflow.DateLayout, "2025-03-12")
	require.NoError(t, err)

	start, end := workflow.WeekRange(day)
	assert.Equal(t, "2025-03-09", start.Format(workflow.DateLayout))
	assert.Equal(t, "2025-03-15", end.Format(workflow.DateLayout))
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Saturday, end.Weekday())
}

// TestWeekRange_Sunday 测试周日当天
func TestWeekRange_Sunday(t *testing.T) {
	day, err := time.Parse(workflow.DateLayout, "2025-03-09")
	require.NoError(t, err)

	start, end := workflow.WeekRange(day)
	assert.Equal(t, "2025-03-09", start.Format(workflow.DateLayout))
	assert.Equal(t, "2025-03-15", end.Format(workflow.DateLayout))
}

// TestWeekRange_Saturday 测试周六 (周末一天)
func TestWeekRange_Saturday(t *testing.T) {
	day, err := time.Parse(workflow.DateLayout, "2025-03-15")
	require.NoError(t, err)

	start, _ := workflow.WeekRange(day)
	assert.Equal(t, "2025-03-09", start.Format(workflow.DateLayout))
}

// TestWeekRange_CrossMonth 测试跨月的周
func TestWeekRange_CrossMonth(t *testing.T) {
	// 2025-04-01 为周二,所在周从 2025-03-30 (周日) 开始
	day, err := time.Parse(workflow.DateLayout, "2025-04-01")
	require.NoError(t, err)

	start, end := workflow.WeekRange(day)
	assert.Equal(t, "2025-03-30", start.Format(workflow.DateLayout))
	assert.Equal(t, "2025-04-05", end.Format(workflow.DateLayout))
}

// TestWeekStartOf 测试日期归一化到周日
func TestWeekStartOf(t *testing.T) {
	start, err := workflow.WeekStartOf("2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", start)

	start, err = workflow.WeekStartOf("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", start)

	_, err = workflow.WeekStartOf("not-a-date")
	assert.Error(t, err)
}
