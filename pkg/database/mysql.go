package database

import (
	"fmt"
	"log"

	"jirepedia_backend/internal/config"
	"jirepedia_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
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
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedBadges(db)
	seedTerms(db)

	return db, nil
}

// seedBadges 徽章目录为静态配置，库里为空时播种
func seedBadges(db *gorm.DB) {
	var count int64
	db.Model(&model.Badge{}).Count(&count)
	if count > 0 {
		return
	}

	defaultBadges := []model.Badge{
		{Name: "はじめの一歩", Category: "プレイ", Condition: model.CondFirstPlay, Rarity: "common", Icon: "🎮"},
		{Name: "三日坊主卒業", Category: "継続", Condition: model.CondStreak3, Rarity: "common", Icon: "🔥"},
		{Name: "挑戦者", Category: "プレイ", Condition: model.CondAttempts10, Rarity: "common", Icon: "⚔️"},
		{Name: "説明の達人", Category: "プレイ", Condition: model.CondSuccess50, Rarity: "rare", Icon: "🎯"},
		{Name: "ハードモード制覇", Category: "プレイ", Condition: model.CondHardSuccess10, Rarity: "rare", Icon: "💪"},
		{Name: "百戦錬磨", Category: "プレイ", Condition: model.CondSuccess100, Rarity: "epic", Icon: "🏆"},
		{Name: "応援団", Category: "コミュニティ", Condition: model.CondLikesGiven10, Rarity: "common", Icon: "👍"},
		{Name: "語り部", Category: "コミュニティ", Condition: model.CondComments10, Rarity: "common", Icon: "💬"},
		{Name: "人気者", Category: "コミュニティ", Condition: model.CondLikesReceived50, Rarity: "rare", Icon: "⭐"},
		{Name: "改善マイスター", Category: "コミュニティ", Condition: model.CondImprovements5, Rarity: "rare", Icon: "🔧"},
		{Name: "皆勤賞", Category: "継続", Condition: model.CondStreak30, Rarity: "epic", Icon: "📅"},
		{Name: "デイリーマスター", Category: "継続", Condition: model.CondDailyChallenges30, Rarity: "epic", Icon: "🌟"},
		{Name: "博識", Category: "プレイ", Condition: model.CondAllCategories, Rarity: "rare", Icon: "📚"},
		{Name: "レジェンド", Category: "レベル", Condition: model.CondLevel50, Rarity: "legendary", Icon: "👑"},
	}
	for _, b := range defaultBadges {
		db.Create(&b)
	}
}

// seedTerms 初期用語。カテゴリは 理科/社会/数学 の3本柱
func seedTerms(db *gorm.DB) {
	var count int64
	db.Model(&model.Term{}).Count(&count)
	if count > 0 {
		return
	}

	defaultTerms := []model.Term{
		{
			Word:        "光合成",
			Category:    "理科",
			Subcategory: "生物",
			OfficialDef: "植物が光エネルギーを使って水と二酸化炭素から糖を合成する過程",
			NGWords:     []string{"光合成", "植物", "光", "エネルギー", "葉緑体"},
			Tags:        []string{"高校生物", "中学理科"},
		},
		{
			Word:        "民主主義",
			Category:    "社会",
			Subcategory: "政治",
			OfficialDef: "国民が主権を持ち、政治的決定に参加する政治体制",
			NGWords:     []string{"民主主義", "democracy", "主権", "国民"},
			Tags:        []string{"中学公民", "高校政治経済"},
		},
		{
			Word:        "円周率",
			Category:    "数学",
			Subcategory: "幾何",
			OfficialDef: "円の円周の長さと直径の比を表す定数で、約3.14159...",
			NGWords:     []string{"円周率", "π", "パイ", "3.14"},
			Tags:        []string{"中学数学"},
		},
		{
			Word:        "重力",
			Category:    "理科",
			Subcategory: "物理",
			OfficialDef: "質量を持つ物体間に働く引力",
			NGWords:     []string{"重力", "gravity", "引力", "万有引力"},
			Tags:        []string{"中学理科", "高校物理"},
		},
		{
			Word:        "憲法",
			Category:    "社会",
			Subcategory: "法律",
			OfficialDef: "国家の基本的な組織や統治の原理を定めた最高法規",
			NGWords:     []string{"憲法", "constitution", "最高法規"},
			Tags:        []string{"中学公民"},
		},
		{
			Word:        "微分",
			Category:    "数学",
			Subcategory: "解析",
			OfficialDef: "関数の変化率を求める数学的操作",
			NGWords:     []string{"微分", "derivative", "導関数", "傾き"},
			Tags:        []string{"高校数学"},
			Difficulty:  model.DifficultyHard,
		},
		{
			Word:        "DNA",
			Category:    "理科",
			Subcategory: "生物",
			OfficialDef: "デオキシリボ核酸。遺伝情報を担う生体高分子",
			NGWords:     []string{"DNA", "デオキシリボ核酸", "遺伝子", "核酸"},
			Tags:        []string{"高校生物"},
		},
		{
			Word:        "三権分立",
			Category:    "社会",
			Subcategory: "政治",
			OfficialDef: "立法・行政・司法の三つの権力を分離し、相互に抑制させる制度",
			NGWords:     []string{"三権分立", "立法", "行政", "司法"},
			Tags:        []string{"中学公民"},
		},
		{
			Word:        "化学反応",
			Category:    "理科",
			Subcategory: "化学",
			OfficialDef: "物質が別の物質に変化する現象",
			NGWords:     []string{"化学反応", "反応", "化学", "変化"},
			Tags:        []string{"中学理科"},
		},
		{
			Word:        "因数分解",
			Category:    "数学",
			Subcategory: "代数",
			OfficialDef: "多項式を複数の多項式の積の形に変形すること",
			NGWords:     []string{"因数分解", "因数", "分解", "多項式"},
			Tags:        []string{"中学数学"},
		},
	}
	for _, t := range defaultTerms {
		db.Create(&t)
	}
}
