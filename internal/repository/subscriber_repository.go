package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// SubscriberRepository tracks chats that started the bot, so the daily
// digest knows whom to address.
type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) Upsert(ctx context.Context, chatID int64, userID, firstName string) (*model.Subscriber, error) {
	var sub model.Subscriber
	db := r.db.WithContext(ctx)
	err := db.Where("chat_id = ?", chatID).First(&sub).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"user_id":    userID,
			"first_name": firstName,
		}
		if err := db.Model(&sub).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update subscriber: %w", err)
		}
		return &sub, nil
	case err == gorm.ErrRecordNotFound:
		sub = model.Subscriber{
			ChatID:    chatID,
			UserID:    userID,
			FirstName: firstName,
		}
		if err := db.Create(&sub).Error; err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}
		return &sub, nil
	default:
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
}

func (r *SubscriberRepository) ListAll(ctx context.Context) ([]model.Subscriber, error) {
	var subs []model.Subscriber
	if err := r.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
