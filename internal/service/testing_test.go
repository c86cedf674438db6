package service

import (
	"os"
	"testing"

	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Term{},
		&model.Attempt{},
		&model.Entry{},
		&model.Badge{},
		&model.UserBadge{},
		&model.Like{},
		&model.Comment{},
		&model.Improvement{},
		&model.DailyChallenge{},
		&model.UserChallenge{},
		&model.Notification{},
		&model.Checkin{},
	))

	return db
}

// testEnv 测试用的最小依赖图，每个测试一套独立的内存库
type testEnv struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	termRepo     *repository.TermRepository
	attemptRepo  *repository.AttemptRepository
	entryRepo    *repository.EntryRepository
	badgeRepo    *repository.BadgeRepository
	socialRepo   *repository.SocialRepository
	chalRepo     *repository.DailyChallengeRepository
	checkinRepo  *repository.CheckinRepository
	notifyRepo   *repository.NotificationRepository
	notification *NotificationService
	badge        *BadgeService
	challenge    *DailyChallengeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		termRepo:    repository.NewTermRepository(db),
		attemptRepo: repository.NewAttemptRepository(db),
		entryRepo:   repository.NewEntryRepository(db),
		badgeRepo:   repository.NewBadgeRepository(db),
		socialRepo:  repository.NewSocialRepository(db),
		chalRepo:    repository.NewDailyChallengeRepository(db),
		checkinRepo: repository.NewCheckinRepository(db),
		notifyRepo:  repository.NewNotificationRepository(db),
	}
	env.notification = NewNotificationService(env.notifyRepo)
	env.badge = NewBadgeService(env.badgeRepo, env.userRepo, env.attemptRepo, env.socialRepo, env.chalRepo, env.notification)
	env.challenge = NewDailyChallengeService(env.chalRepo, env.termRepo, nil)
	return env
}

func (env *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Level:    1,
		Rank:     model.RankBronze,
	}
	require.NoError(t, env.userRepo.Create(user))
	return user
}

func (env *testEnv) createTerm(t *testing.T, word, category string, ngWords []string) *model.Term {
	t.Helper()

	term := &model.Term{
		Word:        word,
		Category:    category,
		OfficialDef: word + "の定義",
		NGWords:     ngWords,
		Difficulty:  model.DifficultyNormal,
		Status:      model.TermApproved,
	}
	require.NoError(t, env.termRepo.Create(term))
	return term
}
