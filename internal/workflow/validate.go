package workflow

import (
	"fmt"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
)

// ValidationError 表单校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// 校验错误定义
var (
	ErrNoTargets     = &ValidationError{Field: "targets", Message: "form must contain at least one daily target"}
	ErrNoProduct     = &ValidationError{Field: "product_id", Message: "product must be selected"}
	ErrMissingRemark = &ValidationError{Field: "remark_id", Message: "non-QC target must carry a remark"}
	ErrMissingLayer  = &ValidationError{Field: "layer_id", Message: "target must carry a layer"}
	ErrMissingSheet  = &ValidationError{Field: "sheet_status_id", Message: "target must reference a selected sheet status"}
	ErrZeroWork      = &ValidationError{Field: "productivity", Message: "productivity must be greater than 0"}
)

// ValidateForm 校验表单是否可提交
// 规则: 至少一条目标; 非 QC 目标必须带备注; 每条目标必须带图层和图幅状态引用;
// 生产力必须大于 0; 必须选择产品。
// 校验通过时对表单做归一化: 生产力保留两位小数,工时清零 (当前流程不从客户端采集工时)。
func ValidateForm(form *model.FormModel) error {
	if len(form.Targets) == 0 {
		return ErrNoTargets
	}
	if form.ProductID == "" {
		return ErrNoProduct
	}

	for i := range form.Targets {
		t := &form.Targets[i]
		if t.SheetStatusID == "" {
			return ErrMissingSheet
		}
		if t.LayerID == "" {
			return ErrMissingLayer
		}
		if !t.IsQC && t.RemarkID == "" {
			return ErrMissingRemark
		}
		if t.Productivity <= 0 {
			return ErrZeroWork
		}
	}

	// 归一化
	for i := range form.Targets {
		form.Targets[i].Productivity = Round2(form.Targets[i].Productivity)
		form.Targets[i].HoursWorked = 0
	}

	return nil
}
