package repo

import (
	"fmt"
	"time"
)

// 相对时间的分桶边界（秒）。
const (
	minuteSeconds = 60
	hourSeconds   = 3600
	daySeconds    = 86400
	weekSeconds   = 604800
	monthSeconds  = 2592000 // 约 30 天
)

// RelativeTime 把时间点格式化为相对于 now 的人类可读字符串。
// 超过约 30 天后一律按月计数，不会出现"年"。
func RelativeTime(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()

	switch {
	case seconds < minuteSeconds:
		return "just now"
	case seconds < hourSeconds:
		return fmt.Sprintf("%d minutes ago", int(seconds/minuteSeconds))
	case seconds < daySeconds:
		return fmt.Sprintf("%d hours ago", int(seconds/hourSeconds))
	case seconds < weekSeconds:
		days := int(seconds / daySeconds)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	case seconds < monthSeconds:
		weeks := int(seconds / weekSeconds)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		months := int(seconds / monthSeconds)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}
