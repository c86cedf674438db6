package service

import (
	"testing"

	"jirepedia_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTodayCreatesChallengeOnce(t *testing.T) {
	env := newTestEnv(t)
	env.createTerm(t, "光合成", "理科", nil)
	env.createTerm(t, "民主主義", "社会", nil)

	first, err := env.challenge.GetToday(0)
	require.NoError(t, err)
	require.NotNil(t, first.Challenge)
	assert.NotZero(t, first.Challenge.TermID)
	assert.False(t, first.Completed)

	// 2回目は同じ挑戦が返る
	second, err := env.challenge.GetToday(0)
	require.NoError(t, err)
	assert.Equal(t, first.Challenge.ID, second.Challenge.ID)
}

func TestGetTodayWithoutTerms(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.challenge.GetToday(0)
	assert.ErrorIs(t, err, util.ErrChallengeNotFound)
}

func TestCompleteIfToday(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	env.createTerm(t, "光合成", "理科", nil)

	view, err := env.challenge.GetToday(user.ID)
	require.NoError(t, err)

	env.challenge.CompleteIfToday(user.ID, view.Challenge.TermID)

	after, err := env.challenge.GetToday(user.ID)
	require.NoError(t, err)
	assert.True(t, after.Completed)

	count, err := env.chalRepo.CountCompletedByUser(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// 重複完了は1件のまま
	env.challenge.CompleteIfToday(user.ID, view.Challenge.TermID)
	count, err = env.chalRepo.CountCompletedByUser(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCompleteIfTodayIgnoresOtherTerms(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	env.createTerm(t, "光合成", "理科", nil)
	other := env.createTerm(t, "民主主義", "社会", nil)

	view, err := env.challenge.GetToday(user.ID)
	require.NoError(t, err)

	// 今日のお題と違う用語では完了扱いにならない
	if view.Challenge.TermID != other.ID {
		env.challenge.CompleteIfToday(user.ID, other.ID)

		count, err := env.chalRepo.CountCompletedByUser(user.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	}
}
