package service

import (
	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/pkg/logger"

	"go.uber.org/zap"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

// Notify 写入站内通知。fire-and-forget：失败只记日志，不影响主流程
func (s *NotificationService) Notify(userID uint, notificationType, title, message, link string) {
	n := &model.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := s.NotificationRepo.Create(n); err != nil {
		logger.Log.Error("failed to create notification",
			zap.Uint("userID", userID),
			zap.String("type", notificationType),
			zap.Error(err))
	}
}

func (s *NotificationService) List(userID uint, limit int) ([]model.Notification, int64, error) {
	notifications, err := s.NotificationRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.NotificationRepo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	return s.NotificationRepo.MarkRead(userID, notificationID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.NotificationRepo.MarkAllRead(userID)
}
