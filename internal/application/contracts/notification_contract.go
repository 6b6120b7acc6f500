package contracts

// RefreshNotifier 后台刷新结果通知
type RefreshNotifier interface {
	// NotifyRefreshFailed 每次后台刷新失败时调用,consecutiveFailures从1开始计数
	NotifyRefreshFailed(err error, consecutiveFailures int)
	// NotifyRefreshRecovered 连续失败后首次成功时调用
	NotifyRefreshRecovered(snapshot *TreeSnapshot, previousFailures int)
}
