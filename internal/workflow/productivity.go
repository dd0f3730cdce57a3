package workflow

import "math"

// QCProductivity QC 类角色登记目标时固定记满额生产力
const QCProductivity = 1.0

// ProductivityDelta 计算生产力增量
// 登记的生产力始终是本表单贡献的增量,而非图幅的绝对完成度:
// delta = 选定完成度 − 当前完成度
func ProductivityDelta(currentCompletion, selected float64) float64 {
	return Round2(selected - currentCompletion)
}

// SelectableForRole 判断某图幅状态对给定生产角色是否可选
// QC 角色只能选择已 100% 完成的图幅,非 QC 角色只能选择未完成的图幅
func SelectableForRole(role ProductionRole, completion float64) bool {
	if role.IsQC() {
		return completion >= 1
	}
	return completion < 1
}

// ApplyDelta 将生产力增量累加到完成度上,并钳制在 [0, 1] 区间
func ApplyDelta(completion, delta float64) float64 {
	result := Round2(completion + delta)
	if result < 0 {
		return 0
	}
	if result > 1 {
		return 1
	}
	return result
}

// Round2 四舍五入保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
