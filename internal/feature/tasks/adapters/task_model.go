package adapters

import (
	"time"

	"github.com/google/uuid"

	authadapters "todo_backend/internal/feature/auth/adapters"
	"todo_backend/internal/feature/tasks/domain/entity"
)

// TaskModel is the GORM model for the tasks table.
type TaskModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:ix_tasks_user_id;index:ix_tasks_user_completed,priority:1"`
	Title       string     `gorm:"size:500;not null"`
	Description *string    `gorm:"size:10000"`
	Completed   bool       `gorm:"not null;default:false;index:ix_tasks_completed;index:ix_tasks_user_completed,priority:2"`
	Category    string     `gorm:"size:50;not null;default:General"`
	Priority    string     `gorm:"size:20;not null;default:Low"`
	DueDate     *time.Time
	CreatedAt   time.Time  `gorm:"not null;index:ix_tasks_created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime:false"`

	// Owner only declares the foreign key; it is never loaded.
	Owner *authadapters.UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TaskModel) ToEntity() entity.Task {
	return entity.Task{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		Category:    m.Category,
		Priority:    m.Priority,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TaskModelFromEntity converts a domain entity to a GORM model.
func TaskModelFromEntity(t *entity.Task) *TaskModel {
	return &TaskModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Category:    t.Category,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
