package util

import "errors"

var (
	ErrUserNotFound        = errors.New("ユーザーが見つかりません")
	ErrEmailRegistered     = errors.New("このメールアドレスは既に登録されています")
	ErrInvalidCredentials  = errors.New("メールアドレスまたはパスワードが正しくありません")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrTermNotFound        = errors.New("用語が見つかりません")
	ErrTermAlreadyExists   = errors.New("この用語は既に登録されています")
	ErrAttemptNotFound     = errors.New("挑戦記録が見つかりません")
	ErrAttemptNotSuccess   = errors.New("成功した挑戦のみ投稿できます")
	ErrEntryNotFound       = errors.New("エントリーが見つかりません")
	ErrImprovementNotFound = errors.New("改善案が見つかりません")
	ErrJudgementFailed     = errors.New("AI判定に失敗しました")
	ErrExplanationTooShort = errors.New("説明文が短すぎます")
	ErrChallengeNotFound   = errors.New("本日のチャレンジが見つかりません")
)
