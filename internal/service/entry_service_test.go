package service

import (
	"testing"

	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntryService(env *testEnv) *EntryService {
	return NewEntryService(env.entryRepo, env.attemptRepo, env.termRepo, env.notification, env.db)
}

func (env *testEnv) createAttempt(t *testing.T, userID, termID uint, success bool, confidence int) *model.Attempt {
	t.Helper()

	attempt := &model.Attempt{
		UserID:      &userID,
		TermID:      termID,
		Difficulty:  model.DifficultyNormal,
		Explanation: "テスト用の説明文。十分な長さがある。",
		Success:     success,
		Confidence:  confidence,
	}
	require.NoError(t, env.attemptRepo.Create(env.db, attempt))
	return attempt
}

func (env *testEnv) countCrowns(t *testing.T, termID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, env.db.Model(&model.Entry{}).
		Where("term_id = ? AND is_crown = ?", termID, true).
		Count(&count).Error)
	return count
}

func TestCreateFromAttemptFirstEntryTakesCrown(t *testing.T) {
	env := newTestEnv(t)
	svc := newEntryService(env)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)
	attempt := env.createAttempt(t, user.ID, term.ID, true, 80)

	entry, err := svc.CreateFromAttempt(user.ID, attempt.ID)
	require.NoError(t, err)

	assert.True(t, entry.IsCrown)
	assert.NotNil(t, entry.CrownStartDate)
	assert.EqualValues(t, 1, env.countCrowns(t, term.ID))
}

func TestCreateFromAttemptHigherConfidenceTransfersCrown(t *testing.T) {
	env := newTestEnv(t)
	svc := newEntryService(env)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	term := env.createTerm(t, "光合成", "理科", nil)

	aliceAttempt := env.createAttempt(t, alice.ID, term.ID, true, 85)
	_, err := svc.CreateFromAttempt(alice.ID, aliceAttempt.ID)
	require.NoError(t, err)

	bobAttempt := env.createAttempt(t, bob.ID, term.ID, true, 91)
	bobEntry, err := svc.CreateFromAttempt(bob.ID, bobAttempt.ID)
	require.NoError(t, err)

	assert.True(t, bobEntry.IsCrown)
	assert.EqualValues(t, 1, env.countCrowns(t, term.ID))

	aliceEntry, err := env.entryRepo.FindByUserAndTerm(env.db, alice.ID, term.ID)
	require.NoError(t, err)
	assert.False(t, aliceEntry.IsCrown)

	// 奪われた側に通知が届く
	notifications, _, err := env.notification.List(alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "crown_lost", notifications[0].Type)
}

func TestCreateFromAttemptEqualConfidenceKeepsIncumbent(t *testing.T) {
	env := newTestEnv(t)
	svc := newEntryService(env)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	term := env.createTerm(t, "光合成", "理科", nil)

	aliceAttempt := env.createAttempt(t, alice.ID, term.ID, true, 90)
	aliceEntry, err := svc.CreateFromAttempt(alice.ID, aliceAttempt.ID)
	require.NoError(t, err)
	assert.True(t, aliceEntry.IsCrown)

	// 同点では王冠は動かない（先着優先）
	bobAttempt := env.createAttempt(t, bob.ID, term.ID, true, 90)
	bobEntry, err := svc.CreateFromAttempt(bob.ID, bobAttempt.ID)
	require.NoError(t, err)

	assert.False(t, bobEntry.IsCrown)
	assert.EqualValues(t, 1, env.countCrowns(t, term.ID))

	current, err := env.entryRepo.FindCrownByTerm(env.db, term.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, current.UserID)
}

func TestCreateFromAttemptResubmitUpdatesInPlace(t *testing.T) {
	env := newTestEnv(t)
	svc := newEntryService(env)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)

	first := env.createAttempt(t, user.ID, term.ID, true, 70)
	firstEntry, err := svc.CreateFromAttempt(user.ID, first.ID)
	require.NoError(t, err)

	second := env.createAttempt(t, user.ID, term.ID, true, 95)
	secondEntry, err := svc.CreateFromAttempt(user.ID, second.ID)
	require.NoError(t, err)

	// 同一ユーザー×同一用語のエントリーは1件のまま
	assert.Equal(t, firstEntry.ID, secondEntry.ID)
	assert.Equal(t, 95, secondEntry.Confidence)
	assert.Equal(t, 2, secondEntry.Version)
	assert.True(t, secondEntry.IsCrown)

	var count int64
	require.NoError(t, env.db.Model(&model.Entry{}).
		Where("user_id = ? AND term_id = ?", user.ID, term.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateFromAttemptRejectsFailedAttempt(t *testing.T) {
	env := newTestEnv(t)
	svc := newEntryService(env)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)
	attempt := env.createAttempt(t, user.ID, term.ID, false, 40)

	_, err := svc.CreateFromAttempt(user.ID, attempt.ID)
	assert.ErrorIs(t, err, util.ErrAttemptNotSuccess)
}

func TestCreateFromAttemptRejectsForeignAttempt(t *testing.T) {
	env := newTestEnv(t)
	svc := newEntryService(env)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	term := env.createTerm(t, "光合成", "理科", nil)
	attempt := env.createAttempt(t, alice.ID, term.ID, true, 80)

	_, err := svc.CreateFromAttempt(bob.ID, attempt.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.CreateFromAttempt(alice.ID, 9999)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}
