package utils

import "strconv"

func Ptr[T any](v T) *T {
	return &v
}

// RankPrefix returns a medal for the podium and the ordinal otherwise.
func RankPrefix(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return "`#" + strconv.Itoa(rank) + "`"
}
