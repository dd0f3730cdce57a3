package metrics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Collector 指标收集器
// 定期采样数据库连接池和表单状态分布
type Collector struct {
	db       *gorm.DB
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCollector 创建指标收集器
func NewCollector(db *gorm.DB, interval time.Duration) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		db:       db,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start 启动指标收集器
func (c *Collector) Start() {
	go c.collect()
}

// Stop 停止指标收集器
func (c *Collector) Stop() {
	c.cancel()
	<-c.done
}

// collect 定期收集指标
func (c *Collector) collect() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			// 更新数据库连接数指标
			_ = UpdateDatabaseConnections(c.db)
			// 更新表单状态分布指标
			c.collectFormStates()
		}
	}
}

// collectFormStates 统计各状态表单数量
func (c *Collector) collectFormStates() {
	var results []struct {
		State string
		Count int64
	}
	if err := c.db.Table("forms").
		Select("state, COUNT(*) as count").
		Group("state").
		Scan(&results).Error; err != nil {
		return
	}
	for _, r := range results {
		UpdateFormsByState(r.State, float64(r.Count))
	}
}
