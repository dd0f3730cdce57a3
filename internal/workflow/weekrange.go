package workflow

import "time"

// DateLayout 业务日期格式
const DateLayout = "2006-01-02"

// WorkingDaysPerWeek 每周工作日数,用于从周目标折算日目标
const WorkingDaysPerWeek = 6

// WeekRange 计算日期所在周的区间
// weekStart 为该日期之前 (或当天) 的周日,weekEnd = weekStart + 6 天
func WeekRange(date time.Time) (time.Time, time.Time) {
	// time.Weekday: Sunday == 0
	offset := int(date.Weekday())
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// WeekStartOf 返回日期所在周的周日,按业务日期格式输出
func WeekStartOf(dateStr string) (string, error) {
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return "", err
	}
	start, _ := WeekRange(date)
	return start.Format(DateLayout), nil
}
