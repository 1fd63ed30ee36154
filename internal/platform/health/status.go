package health

// State 定义了系统健康状态的枚举类型
type State string

const (
	StateHealthy  State = "ok"
	StateDegraded State = "degraded"
	StateDown     State = "unavailable"
)

// 单个依赖的状态
const (
	componentOK          = "ok"
	componentUnavailable = "unavailable"
	componentDisabled    = "disabled"
)

// Report 是一次健康检查的结果
type Report struct {
	Status   State  `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Healthy 报告所有已启用的依赖是否都可用
func (r Report) Healthy() bool {
	return r.Status == StateHealthy
}
