package logger

import "fmt"

// Category is a routing key for logged events. The set is closed:
// selectors naming anything else are configuration errors.
//
// Category expansion (e.g. "all implies chat for dispatch purposes") is
// encoded by each dispatcher's category list, never by the membership
// store.
type Category string

const (
	// CategoryAll logs everything below except viewers.
	CategoryAll Category = "all"
	// CategoryNoChat logs everything below except chat and viewers.
	CategoryNoChat Category = "nochat"
	// CategoryChat logs room chat messages.
	CategoryChat Category = "chat"
	// CategoryTips logs token tips.
	CategoryTips Category = "tips"
	// CategoryViewers logs guest counts and member join/part notices.
	CategoryViewers Category = "viewers"
	// CategoryRank logs leaderboard rank changes.
	CategoryRank Category = "rank"
	// CategoryTopic logs room topic changes.
	CategoryTopic Category = "topic"
	// CategoryState logs video state changes.
	CategoryState Category = "state"
	// CategoryCamscore logs camscore changes.
	CategoryCamscore Category = "camscore"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryAll,
	CategoryNoChat,
	CategoryChat,
	CategoryTips,
	CategoryViewers,
	CategoryRank,
	CategoryTopic,
	CategoryState,
	CategoryCamscore,
}

// RoomCategories are the categories whose events only arrive while the
// model's room is joined. Membership in any of them makes the room
// lifecycle manager keep a live subscription open.
var RoomCategories = []Category{
	CategoryAll,
	CategoryNoChat,
	CategoryChat,
	CategoryTips,
	CategoryViewers,
}

// ParseCategory validates a config-supplied category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
