package workflow

// ProductionRole 生产角色,标识编辑员所处的 QC 流水线阶段
type ProductionRole string

const (
	RoleProduction  ProductionRole = "production"
	RoleDailyQC     ProductionRole = "daily_qc"
	RoleFinalQC     ProductionRole = "final_qc"
	RoleFinalizedQC ProductionRole = "finalized_qc"
)

// IsQC 判断是否为 QC 类角色
func (r ProductionRole) IsQC() bool {
	switch r {
	case RoleDailyQC, RoleFinalQC, RoleFinalizedQC:
		return true
	}
	return false
}

// Valid 判断角色是否合法
func (r ProductionRole) Valid() bool {
	switch r {
	case RoleProduction, RoleDailyQC, RoleFinalQC, RoleFinalizedQC:
		return true
	}
	return false
}
