// Package workflow 实现表单审批流程的核心规则:
// 状态机、表单校验、生产力增量计算与周区间计算。
package workflow

import "fmt"

// FormState 表单工作流状态
type FormState string

const (
	StateNew      FormState = "new"      // 新建,尚未提交
	StatePending  FormState = "pending"  // 已提交,等待主管审批
	StateApproved FormState = "approved" // 审批通过,表单只读
	StateRejected FormState = "rejected" // 审批驳回,允许修改后重新提交
)

// transitions 允许的状态迁移表
// new → pending, pending → approved/rejected, rejected → pending
var transitions = map[FormState][]FormState{
	StateNew:      {StatePending},
	StatePending:  {StateApproved, StateRejected},
	StateRejected: {StatePending},
	StateApproved: {},
}

// ParseState 解析状态字符串
func ParseState(s string) (FormState, error) {
	switch FormState(s) {
	case StateNew, StatePending, StateApproved, StateRejected:
		return FormState(s), nil
	}
	return "", fmt.Errorf("unknown form state: %q", s)
}

// CanTransition 判断状态迁移是否合法
func CanTransition(from, to FormState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition 执行状态迁移,迁移非法时返回错误
func Transition(from, to FormState) (FormState, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("invalid state transition: %s -> %s", from, to)
	}
	return to, nil
}

// IsEditable 判断表单在当前状态下是否允许编辑
// new/rejected/pending 均可编辑 (pending 下的修改覆盖待审批内容),
// approved 只读
func IsEditable(state FormState) bool {
	return state != StateApproved
}

// IsTerminal 判断是否为终态
func IsTerminal(state FormState) bool {
	return len(transitions[state]) == 0
}
