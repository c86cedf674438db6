package service

import (
	"context"
	"testing"

	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTermService(env *testEnv) *TermService {
	return NewTermService(env.termRepo, env.entryRepo, env.attemptRepo, nil)
}

func TestTermSubmit(t *testing.T) {
	env := newTestEnv(t)
	svc := newTermService(env)
	user := env.createUser(t, "alice")

	term, err := svc.Submit(&user.ID, TermRequest{
		Word:        "慣性",
		Reading:     "かんせい",
		Category:    "理科",
		Subcategory: "物理",
		OfficialDef: "外力が働かない限り物体が運動状態を保とうとする性質",
		NGWords:     []string{"慣性", " ニュートン ", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "慣性", term.Word)
	assert.Equal(t, model.DifficultyNormal, term.Difficulty)
	assert.Equal(t, model.TermApproved, term.Status)
	assert.Equal(t, []string{"慣性", "ニュートン"}, term.NGWords) // 空・前後空白は整形
	assert.Equal(t, []string{"かんせい"}, term.Tags)
	require.NotNil(t, term.CreatorID)
	assert.Equal(t, user.ID, *term.CreatorID)
}

func TestTermSubmitDuplicate(t *testing.T) {
	env := newTestEnv(t)
	svc := newTermService(env)
	env.createTerm(t, "光合成", "理科", nil)

	_, err := svc.Submit(nil, TermRequest{
		Word:        "光合成",
		Reading:     "こうごうせい",
		Category:    "理科",
		OfficialDef: "定義",
		NGWords:     []string{"光合成"},
	})
	assert.ErrorIs(t, err, util.ErrTermAlreadyExists)
}

func TestTermGetDetail(t *testing.T) {
	env := newTestEnv(t)
	svc := newTermService(env)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)

	attempt := env.createAttempt(t, user.ID, term.ID, true, 88)
	entrySvc := newEntryService(env)
	_, err := entrySvc.CreateFromAttempt(user.ID, attempt.ID)
	require.NoError(t, err)

	detail, err := svc.GetDetail(term.ID)
	require.NoError(t, err)
	assert.Equal(t, term.ID, detail.Term.ID)
	require.NotNil(t, detail.CrownEntry)
	assert.Equal(t, user.ID, detail.CrownEntry.UserID)
	assert.Len(t, detail.Entries, 1)
	assert.Len(t, detail.RecentAttempts, 1)

	_, err = svc.GetDetail(9999)
	assert.ErrorIs(t, err, util.ErrTermNotFound)
}

func TestTermTrendingWithoutCache(t *testing.T) {
	env := newTestEnv(t)
	svc := newTermService(env)

	popular := env.createTerm(t, "光合成", "理科", nil)
	require.NoError(t, env.db.Model(popular).Updates(map[string]interface{}{
		"total_attempts": 50,
		"total_success":  30,
	}).Error)
	env.createTerm(t, "民主主義", "社会", nil)

	terms, err := svc.Trending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "光合成", terms[0].Word)
}

func TestTermList(t *testing.T) {
	env := newTestEnv(t)
	svc := newTermService(env)
	env.createTerm(t, "光合成", "理科", nil)
	env.createTerm(t, "重力", "理科", nil)
	env.createTerm(t, "民主主義", "社会", nil)

	terms, total, err := svc.List("理科", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, terms, 2)

	terms, total, err = svc.List("", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, terms, 2)
}
