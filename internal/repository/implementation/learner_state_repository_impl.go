package implementation

import (
	"context"
	"time"

	"edumate-be/internal/entity"
	"edumate-be/internal/mapper"
	"edumate-be/internal/model"
	"edumate-be/internal/repository/contract"
	"edumate-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type learnerStateRepository struct {
	db     *gorm.DB
	mapper *mapper.LearnerStateMapper
}

func NewLearnerStateRepository(db *gorm.DB) contract.LearnerStateRepository {
	return &learnerStateRepository{db: db, mapper: mapper.NewLearnerStateMapper()}
}

func (r *learnerStateRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearnerStateEntry, error) {
	var rows []*model.LearnerStateEntry
	if err := specification.Chain(r.db.WithContext(ctx), specs...).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

// Upsert inserts the entry or overwrites the value stored under the same
// (user_id, key).
func (r *learnerStateRepository) Upsert(ctx context.Context, entry *entity.LearnerStateEntry) error {
	row := r.mapper.ToModel(entry)
	row.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(row).Error
}

func (r *learnerStateRepository) DeleteKeys(ctx context.Context, userID uuid.UUID, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return specification.Chain(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userID},
		specification.ByStateKeys{Keys: keys},
	).Delete(&model.LearnerStateEntry{}).Error
}
