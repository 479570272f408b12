package statistic

import "fmt"

func redisKeyQuestLeaderBoard(guildID string) string {
	return fmt.Sprintf("leaderboard:quest:%s", guildID)
}
