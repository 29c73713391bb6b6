package service

// Snapshot 打分用的即时快照，每次请求从存储现读，不落库
type Snapshot struct {
	ApplicationCount    int
	InterviewCount      int
	ResumePresent       bool
	FlashcardDeckCount  int
	StreakDays          int
	RecentActivityCount int // 采样上限 10 条
}

// ScorePolicy 上岸概率计算策略（可替换）
type ScorePolicy interface {
	Score(s Snapshot) int
}

// DefaultScorePolicy 默认策略：逐项先封顶再求和，总分再封顶
//
// 逐项封顶保证单一信号（比如批量灌 50 条投递）吃不掉整个分布，
// 每类信号有固定的配额。上限刻意停在 95：产品永远不宣称稳上岸。
type DefaultScorePolicy struct{}

const maxProbability = 95

// Score 计算 [0, 95] 内的整数概率
func (DefaultScorePolicy) Score(s Snapshot) int {
	score := 0

	// 投递：每条 +4，封顶 20
	score += minInt(s.ApplicationCount*4, 20)

	// 面试：每场 +5，封顶 15
	score += minInt(s.InterviewCount*5, 15)

	// 已上传简历：+10
	if s.ResumePresent {
		score += 10
	}

	// 记忆卡组：每组 +2，封顶 5
	score += minInt(s.FlashcardDeckCount*2, 5)

	// 连续打卡：每满 7 天 +5，封顶 15
	score += minInt(s.StreakDays/7*5, 15)

	// 近期活动：每条 +1，封顶 5
	score += minInt(s.RecentActivityCount, 5)

	// 各项均非负时下限自然为 0，这里防御未来出现负信号
	return clampInt(score, 0, maxProbability)
}

// minInt 取较小值
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// clampInt 将数值限制在指定范围内
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
