package mapper

import (
	"edumate-be/internal/entity"
	"edumate-be/internal/model"
)

type LearnerStateMapper struct{}

func NewLearnerStateMapper() *LearnerStateMapper {
	return &LearnerStateMapper{}
}

func (m *LearnerStateMapper) ToEntity(e *model.LearnerStateEntry) *entity.LearnerStateEntry {
	if e == nil {
		return nil
	}
	return &entity.LearnerStateEntry{
		UserId:    e.UserId,
		Key:       e.Key,
		Value:     e.Value,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *LearnerStateMapper) ToModel(e *entity.LearnerStateEntry) *model.LearnerStateEntry {
	if e == nil {
		return nil
	}
	return &model.LearnerStateEntry{
		UserId:    e.UserId,
		Key:       e.Key,
		Value:     e.Value,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *LearnerStateMapper) ToEntities(entries []*model.LearnerStateEntry) []*entity.LearnerStateEntry {
	out := make([]*entity.LearnerStateEntry, len(entries))
	for i, e := range entries {
		out[i] = m.ToEntity(e)
	}
	return out
}
