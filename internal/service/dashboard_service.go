package service

import (
	"fmt"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"gorm.io/gorm"
)

// DashboardService 仪表盘统计服务接口
type DashboardService interface {
	// DailySummary 某生产日期的按编辑员汇总,supervisorID 非空时只统计其名下编辑员
	DailySummary(date string, supervisorID *string) (*DailySummary, error)
	// WeeklySummary 日期所在周 (周日起始) 的按图层目标达成情况
	WeeklySummary(date string, productID *string) (*WeeklySummary, error)
	// ProjectSummary 某产品的整体图幅完成进度
	ProjectSummary(productID string) (*ProjectSummary, error)
	// EditorPerformance 时间区间内各编辑员的产出统计
	EditorPerformance(startDate string, endDate string, supervisorID *string) ([]*EditorPerformance, error)
}

// DailySummary 日汇总
type DailySummary struct {
	Date    string            `json:"date"`
	Editors []*EditorDayEntry `json:"editors"`
}

// EditorDayEntry 单个编辑员的日条目
type EditorDayEntry struct {
	FormID            string  `json:"form_id"`
	TaqniaID          string  `json:"taqnia_id"`
	Name              string  `json:"name"`
	State             string  `json:"state"`
	TotalProductivity float64 `json:"total_productivity"`
	TargetCount       int64   `json:"target_count"`
}

// WeeklySummary 周汇总
type WeeklySummary struct {
	WeekStart string              `json:"week_start"`
	WeekEnd   string              `json:"week_end"`
	Layers    []*LayerWeekEntry   `json:"layers"`
}

// LayerWeekEntry 单个图层的周条目
// DailyTarget 为周目标按每周 6 个工作日折算的日目标
type LayerWeekEntry struct {
	LayerID      string  `json:"layer_id"`
	LayerName    string  `json:"layer_name"`
	TargetAmount float64 `json:"target_amount"`
	DailyTarget  float64 `json:"daily_target"`
	Achieved     float64 `json:"achieved"`
	Progress     float64 `json:"progress"` // achieved / target, 无目标时为 0
}

// ProjectSummary 项目汇总
type ProjectSummary struct {
	ProductID       string               `json:"product_id"`
	TotalSheets     int64                `json:"total_sheets"`
	CompletedSheets int64                `json:"completed_sheets"`
	Layers          []*LayerProjectEntry `json:"layers"`
}

// LayerProjectEntry 单个图层的项目进度条目
type LayerProjectEntry struct {
	LayerID       string  `json:"layer_id"`
	LayerName     string  `json:"layer_name"`
	SheetCount    int64   `json:"sheet_count"`
	AvgCompletion float64 `json:"avg_completion"`
}

// EditorPerformance 编辑员产出统计
// 只统计审批通过的表单
type EditorPerformance struct {
	TaqniaID          string  `json:"taqnia_id"`
	Name              string  `json:"name"`
	DaysWorked        int64   `json:"days_worked"`
	TotalProductivity float64 `json:"total_productivity"`
	AvgPerDay         float64 `json:"avg_per_day"`
}

// dashboardService 仪表盘统计服务实现
type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService 创建仪表盘统计服务
func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

// DailySummary 日汇总
func (s *dashboardService) DailySummary(date string, supervisorID *string) (*DailySummary, error) {
	var results []struct {
		FormID            string
		TaqniaID          string
		Name              string
		State             string
		TotalProductivity float64
		TargetCount       int64
	}

	query := s.db.Table("forms").
		Select("forms.id as form_id, forms.taqnia_id, users.name, forms.state, "+
			"COALESCE(SUM(daily_targets.productivity), 0) as total_productivity, "+
			"COUNT(daily_targets.id) as target_count").
		Joins("LEFT JOIN users ON users.taqnia_id = forms.taqnia_id").
		Joins("LEFT JOIN daily_targets ON daily_targets.form_id = forms.id").
		Where("forms.productivity_date = ?", date)

	if supervisorID != nil {
		query = query.Where("forms.supervisor_id = ?", *supervisorID)
	}

	err := query.Group("forms.id, forms.taqnia_id, users.name, forms.state").
		Order("forms.taqnia_id ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build daily summary: %w", err)
	}

	summary := &DailySummary{Date: date, Editors: make([]*EditorDayEntry, 0, len(results))}
	for _, r := range results {
		summary.Editors = append(summary.Editors, &EditorDayEntry{
			FormID:            r.FormID,
			TaqniaID:          r.TaqniaID,
			Name:              r.Name,
			State:             r.State,
			TotalProductivity: workflow.Round2(r.TotalProductivity),
			TargetCount:       r.TargetCount,
		})
	}
	return summary, nil
}

// WeeklySummary 周汇总
func (s *dashboardService) WeeklySummary(date string, productID *string) (*WeeklySummary, error) {
	day, err := time.Parse(workflow.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start, end := workflow.WeekRange(day)
	weekStart := start.Format(workflow.DateLayout)
	weekEnd := end.Format(workflow.DateLayout)

	// 本周各图层的目标量
	var targets []struct {
		LayerID   string
		LayerName string
		Amount    float64
	}
	targetQuery := s.db.Table("weekly_targets").
		Select("weekly_targets.layer_id, layers.name as layer_name, weekly_targets.amount").
		Joins("LEFT JOIN layers ON layers.id = weekly_targets.layer_id").
		Where("weekly_targets.week_start = ?", weekStart)
	if productID != nil {
		targetQuery = targetQuery.Where("weekly_targets.product_id = ?", *productID)
	}
	if err := targetQuery.Scan(&targets).Error; err != nil {
		return nil, fmt.Errorf("failed to load weekly targets: %w", err)
	}

	// 本周审批通过的产出,按图层汇总
	var achieved []struct {
		LayerID  string
		Achieved float64
	}
	achievedQuery := s.db.Table("daily_targets").
		Select("daily_targets.layer_id, COALESCE(SUM(daily_targets.productivity), 0) as achieved").
		Joins("JOIN forms ON forms.id = daily_targets.form_id").
		Where("forms.productivity_date BETWEEN ? AND ?", weekStart, weekEnd).
		Where("forms.state = ?", string(workflow.StateApproved))
	if productID != nil {
		achievedQuery = achievedQuery.Where("forms.product_id = ?", *productID)
	}
	if err := achievedQuery.Group("daily_targets.layer_id").Scan(&achieved).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate weekly output: %w", err)
	}

	achievedByLayer := make(map[string]float64, len(achieved))
	for _, a := range achieved {
		achievedByLayer[a.LayerID] = a.Achieved
	}

	summary := &WeeklySummary{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Layers:    make([]*LayerWeekEntry, 0, len(targets)),
	}
	seen := make(map[string]bool, len(targets))

	for _, t := range targets {
		got := achievedByLayer[t.LayerID]
		entry := &LayerWeekEntry{
			LayerID:      t.LayerID,
			LayerName:    t.LayerName,
			TargetAmount: t.Amount,
			DailyTarget:  workflow.Round2(t.Amount / workflow.WorkingDaysPerWeek),
			Achieved:     workflow.Round2(got),
		}
		if t.Amount > 0 {
			entry.Progress = workflow.Round2(got / t.Amount)
		}
		summary.Layers = append(summary.Layers, entry)
		seen[t.LayerID] = true
	}

	// 有产出但没设目标的图层也要展示
	for _, a := range achieved {
		if seen[a.LayerID] {
			continue
		}
		summary.Layers = append(summary.Layers, &LayerWeekEntry{
			LayerID:  a.LayerID,
			Achieved: workflow.Round2(a.Achieved),
		})
	}

	return summary, nil
}

// ProjectSummary 项目汇总
func (s *dashboardService) ProjectSummary(productID string) (*ProjectSummary, error) {
	summary := &ProjectSummary{ProductID: productID}

	if err := s.db.Table("sheet_layer_status").
		Where("product_id = ?", productID).
		Count(&summary.TotalSheets).Error; err != nil {
		return nil, fmt.Errorf("failed to count sheets: %w", err)
	}

	if err := s.db.Table("sheet_layer_status").
		Where("product_id = ? AND completion >= 1", productID).
		Count(&summary.CompletedSheets).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed sheets: %w", err)
	}

	var layers []struct {
		LayerID       string
		LayerName     string
		SheetCount    int64
		AvgCompletion float64
	}
	err := s.db.Table("sheet_layer_status").
		Select("sheet_layer_status.layer_id, layers.name as layer_name, "+
			"COUNT(*) as sheet_count, AVG(sheet_layer_status.completion) as avg_completion").
		Joins("LEFT JOIN layers ON layers.id = sheet_layer_status.layer_id").
		Where("sheet_layer_status.product_id = ?", productID).
		Group("sheet_layer_status.layer_id, layers.name").
		Order("sheet_layer_status.layer_id ASC").
		Scan(&layers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate layer progress: %w", err)
	}

	summary.Layers = make([]*LayerProjectEntry, 0, len(layers))
	for _, l := range layers {
		summary.Layers = append(summary.Layers, &LayerProjectEntry{
			LayerID:       l.LayerID,
			LayerName:     l.LayerName,
			SheetCount:    l.SheetCount,
			AvgCompletion: workflow.Round2(l.AvgCompletion),
		})
	}
	return summary, nil
}

// EditorPerformance 编辑员产出统计
func (s *dashboardService) EditorPerformance(startDate string, endDate string, supervisorID *string) ([]*EditorPerformance, error) {
	var results []struct {
		TaqniaID          string
		Name              string
		DaysWorked        int64
		TotalProductivity float64
	}

	query := s.db.Table("forms").
		Select("forms.taqnia_id, users.name, "+
			"COUNT(DISTINCT forms.productivity_date) as days_worked, "+
			"COALESCE(SUM(daily_targets.productivity), 0) as total_productivity").
		Joins("LEFT JOIN users ON users.taqnia_id = forms.taqnia_id").
		Joins("LEFT JOIN daily_targets ON daily_targets.form_id = forms.id").
		Where("forms.productivity_date BETWEEN ? AND ?", startDate, endDate).
		Where("forms.state = ?", string(workflow.StateApproved))

	if supervisorID != nil {
		query = query.Where("forms.supervisor_id = ?", *supervisorID)
	}

	err := query.Group("forms.taqnia_id, users.name").
		Order("total_productivity DESC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate editor performance: %w", err)
	}

	perf := make([]*EditorPerformance, 0, len(results))
	for _, r := range results {
		entry := &EditorPerformance{
			TaqniaID:          r.TaqniaID,
			Name:              r.Name,
			DaysWorked:        r.DaysWorked,
			TotalProductivity: workflow.Round2(r.TotalProductivity),
		}
		if r.DaysWorked > 0 {
			entry.AvgPerDay = workflow.Round2(r.TotalProductivity / float64(r.DaysWorked))
		}
		perf = append(perf, entry)
	}
	return perf, nil
}
