package types

import "time"

// Vouch is one endorsement event. Rows are append-only and immutable;
// the only deletion path is an explicit reset of the vouched-for member.
type Vouch struct {
	ID         int64     `bun:"id,pk,autoincrement"`
	VouchedFor uint64    `bun:"vouched_for,notnull"`
	VouchedBy  uint64    `bun:"vouched_by,notnull"`
	Referral   uint64    `bun:"referral,notnull"`
	Timestamp  time.Time `bun:"timestamp,notnull,default:current_timestamp"`
}
