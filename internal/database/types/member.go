package types

// Member holds the running endorsement totals for one community member.
// A row is created the first time a member receives a vouch. Counts are
// derived from the vouch log but may diverge downward after explicit
// decrements, which never touch the log.
type Member struct {
	UserID        uint64 `bun:"user_id,pk"`
	VouchCount    int64  `bun:"vouch_count,notnull,default:0"`
	ReferralCount int64  `bun:"referral_count,notnull,default:0"`
}

// RankedMember is a member's position in the community leaderboard.
// Rank is 1-based and computed from the listing order, never stored.
type RankedMember struct {
	Rank       int
	UserID     uint64
	VouchCount int64
}
