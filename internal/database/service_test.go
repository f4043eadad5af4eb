package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vouchtally/vouchtally/internal/database/service"
)

func TestVouchService_RecordKeepsCountersAndLogInStep(t *testing.T) {
	ctx := context.Background()
	client := openTestLedger(t)
	svc := client.Service().Vouch()

	const target = uint64(100)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Record(ctx, target, 300, 200))
	}

	member, err := client.Model().Member().Get(ctx, target)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, int64(5), member.VouchCount)
	assert.Equal(t, int64(5), member.ReferralCount)

	// Counter and event log must agree after any run of records
	count, err := client.Model().Vouch().CountFor(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestVouchService_RecordCreditsTargetNotIssuer(t *testing.T) {
	ctx := context.Background()
	client := openTestLedger(t)

	require.NoError(t, client.Service().Vouch().Record(ctx, 100, 300, 200))

	issuer, err := client.Model().Member().Get(ctx, 200)
	require.NoError(t, err)
	assert.Nil(t, issuer)

	referral, err := client.Model().Member().Get(ctx, 300)
	require.NoError(t, err)
	assert.Nil(t, referral)
}

func TestVouchService_RecordPartialWrite(t *testing.T) {
	ctx := context.Background()
	client := openTestLedger(t)

	// Break the counter update while leaving the event log writable
	_, err := client.DB().ExecContext(ctx, "DROP TABLE members")
	require.NoError(t, err)

	err = client.Service().Vouch().Record(ctx, 100, 300, 200)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPartialWrite)

	// The orphan event stays persisted so counters can be reconciled
	// later by replaying the log
	count, err := client.Model().Vouch().CountFor(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVouchService_Reset(t *testing.T) {
	ctx := context.Background()
	client := openTestLedger(t)
	svc := client.Service().Vouch()

	require.NoError(t, svc.Record(ctx, 100, 300, 200))
	require.NoError(t, svc.Record(ctx, 100, 300, 201))
	require.NoError(t, svc.Record(ctx, 101, 300, 200))

	require.NoError(t, svc.Reset(ctx, 100))

	member, err := client.Model().Member().Get(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, int64(0), member.VouchCount)
	assert.Equal(t, int64(0), member.ReferralCount)

	count, err := client.Model().Vouch().CountFor(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Other members keep their state
	other, err := client.Model().Member().Get(ctx, 101)
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, int64(1), other.VouchCount)

	count, err = client.Model().Vouch().CountFor(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVouchService_ResetUnknownMember(t *testing.T) {
	client := openTestLedger(t)

	require.NoError(t, client.Service().Vouch().Reset(context.Background(), 999))
}

func TestVouchService_Decrement(t *testing.T) {
	ctx := context.Background()
	client := openTestLedger(t)
	svc := client.Service().Vouch()

	// Zero state: a no-op, not an error
	changed, err := svc.Decrement(ctx, 100)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, svc.Record(ctx, 100, 300, 200))
	require.NoError(t, svc.Record(ctx, 100, 300, 200))

	changed, err = svc.Decrement(ctx, 100)
	require.NoError(t, err)
	assert.True(t, changed)

	member, err := client.Model().Member().Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), member.VouchCount)

	// The event log is not rewritten by decrements
	count, err := client.Model().Vouch().CountFor(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLeaderboardService_Ranked(t *testing.T) {
	ctx := context.Background()
	client := openTestLedger(t)
	svc := client.Service()

	ranked, err := svc.Leaderboard().Ranked(ctx)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	require.NoError(t, svc.Vouch().Record(ctx, 1, 300, 200))
	require.NoError(t, svc.Vouch().Record(ctx, 2, 300, 200))
	require.NoError(t, svc.Vouch().Record(ctx, 2, 300, 201))
	require.NoError(t, svc.Vouch().Record(ctx, 3, 300, 200))

	// Drop member 3 back to zero; they must leave the board entirely
	changed, err := svc.Vouch().Decrement(ctx, 3)
	require.NoError(t, err)
	require.True(t, changed)

	ranked, err = svc.Leaderboard().Ranked(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, uint64(2), ranked[0].UserID)
	assert.Equal(t, int64(2), ranked[0].VouchCount)

	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, uint64(1), ranked[1].UserID)
	assert.Equal(t, int64(1), ranked[1].VouchCount)
}

func TestLeaderboardService_EmptyAfterReset(t *testing.T) {
	ctx := context.Background()
	client := openTestLedger(t)
	svc := client.Service()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Vouch().Record(ctx, 100, 300, 200))
	}

	require.NoError(t, svc.Vouch().Reset(ctx, 100))

	ranked, err := svc.Leaderboard().Ranked(ctx)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}
