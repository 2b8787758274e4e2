package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

type quickNoteRepository struct {
	db *gorm.DB
}

// NewQuickNoteRepository creates a new quick note repository instance.
func NewQuickNoteRepository(db *gorm.DB) adapter.QuickNoteRepository {
	return &quickNoteRepository{db: db}
}

func (r *quickNoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.QuickNote, error) {
	var models []model.QuickNoteModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	notes := make([]*entity.QuickNote, len(models))
	for i := range models {
		notes[i] = models[i].ToEntity()
	}
	return notes, nil
}

func (r *quickNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.QuickNote, error) {
	var noteModel model.QuickNoteModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&noteModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNoteNotFound
		}
		return nil, result.Error
	}
	return noteModel.ToEntity(), nil
}

func (r *quickNoteRepository) Create(ctx context.Context, note *entity.QuickNote) error {
	return r.db.WithContext(ctx).Create(model.QuickNoteFromEntity(note)).Error
}

func (r *quickNoteRepository) Update(ctx context.Context, note *entity.QuickNote) error {
	return r.db.WithContext(ctx).Save(model.QuickNoteFromEntity(note)).Error
}

func (r *quickNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.QuickNoteModel{}, "id = ?", id).Error
}

func (r *quickNoteRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.QuickNoteModel{}).Error
}

type waterReminderRepository struct {
	db *gorm.DB
}

// NewWaterReminderRepository creates a new water reminder repository instance.
func NewWaterReminderRepository(db *gorm.DB) adapter.WaterReminderRepository {
	return &waterReminderRepository{db: db}
}

func (r *waterReminderRepository) Get(ctx context.Context, userID uuid.UUID) (*entity.WaterReminder, error) {
	var reminderModel model.WaterReminderModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&reminderModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReminderNotFound
		}
		return nil, result.Error
	}
	return reminderModel.ToEntity(), nil
}

func (r *waterReminderRepository) Save(ctx context.Context, reminder *entity.WaterReminder) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(model.WaterReminderFromEntity(reminder)).Error
}

func (r *waterReminderRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.WaterReminderModel{}).Error
}
