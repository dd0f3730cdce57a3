package workflow_test

import (
	"testing"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validForm 构造一份可提交的表单
func validForm() *model.FormModel {
	return &model.FormModel{
		ID:               "form-1",
		TaqniaID:         "emp-1",
		ProductivityDate: "2025-03-10",
		ProductID:        "prod-1",
		State:            string(workflow.StateNew),
		Targets: []model.DailyTargetModel{
			{
				ID:            "target-1",
				FormID:        "form-1",
				SheetStatusID: "sheet-1",
				LayerID:       "layer-1",
				RemarkID:      "remark-1",
				Productivity:  0.25,
			},
		},
	}
}

// TestValidateForm 测试表单校验通过
func TestValidateForm(t *testing.T) {
	form := validForm()
	require.NoError(t, workflow.ValidateForm(form))
}

// TestValidateForm_NoTargets 测试无目标的表单
func TestValidateForm_NoTargets(t *testing.T) {
	form := validForm()
	form.Targets = nil
	assert.ErrorIs(t, workflow.ValidateForm(form), workflow.ErrNoTargets)
}

// TestValidateForm_NoProduct 测试未选择产品的表单
func TestValidateForm_NoProduct(t *testing.T) {
	form := validForm()
	form.ProductID = ""
	assert.ErrorIs(t, workflow.ValidateForm(form), workflow.ErrNoProduct)
}

// TestValidateForm_MissingSheet 测试目标缺少图幅状态引用
func TestValidateForm_MissingSheet(t *testing.T) {
	form := validForm()
	form.Targets[0].SheetStatusID = ""
	assert.ErrorIs(t, workflow.ValidateForm(form), workflow.ErrMissingSheet)
}

// TestValidateForm_MissingLayer 测试目标缺少图层
func TestValidateForm_MissingLayer(t *testing.T) {
	form := validForm()
	form.Targets[0].LayerID = ""
	assert.ErrorIs(t, workflow.ValidateForm(form), workflow.ErrMissingLayer)
}

// TestValidateForm_MissingRemark 测试非 QC 目标缺少备注
func TestValidateForm_MissingRemark(t *testing.T) {
	form := validForm()
	form.Targets[0].RemarkID = ""
	assert.ErrorIs(t, workflow.ValidateForm(form), workflow.ErrMissingRemark)

	// QC 目标不要求备注
	form.Targets[0].IsQC = true
	form.Targets[0].Productivity = workflow.QCProductivity
	assert.NoError(t, workflow.ValidateForm(form))
}

// TestValidateForm_ZeroWork 测试生产力为 0 的目标
func TestValidateForm_ZeroWork(t *testing.T) {
	form := validForm()
	form.Targets[0].Productivity = 0
	assert.ErrorIs(t, workflow.ValidateForm(form), workflow.ErrZeroWork)

	form.Targets[0].Productivity = -0.1
	assert.ErrorIs(t, workflow.ValidateForm(form), workflow.ErrZeroWork)
}

// TestValidateForm_Normalizes 测试校验通过后的归一化
func TestValidateForm_Normalizes(t *testing.T) {
	form := validForm()
	form.Targets[0].Productivity = 0.333333
	form.Targets[0].HoursWorked = 8

	require.NoError(t, workflow.ValidateForm(form))
	assert.Equal(t, 0.33, form.Targets[0].Productivity)
	assert.Equal(t, 0.0, form.Targets[0].HoursWorked)
}

// TestValidationError_Error 测试校验错误消息格式
func TestValidationError_Error(t *testing.T) {
	err := &workflow.ValidationError{Field: "targets", Message: "bad"}
	assert.Equal(t, "targets: bad", err.Error())

	err = &workflow.ValidationError{Message: "bad"}
	assert.Equal(t, "bad", err.Error())
}
