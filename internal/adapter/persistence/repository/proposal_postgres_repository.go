package repository

import (
	"context"
	"errors"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProposalPostgresRepository persists Proposal entities with gorm.
type ProposalPostgresRepository struct {
	db *gorm.DB
}

var _ interfaces.IProposalRepository = (*ProposalPostgresRepository)(nil)

func NewProposalPostgresRepository(db *gorm.DB) *ProposalPostgresRepository {
	return &ProposalPostgresRepository{db: db}
}

func (r *ProposalPostgresRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	m, err := toProposalModel(p)
	if err != nil {
		return entities.Proposal{}, err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalPostgresRepository) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	return findProposal(r.db.WithContext(ctx), id)
}

func (r *ProposalPostgresRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]entities.Proposal, error) {
	var models []proposalModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Proposal, 0, len(models))
	for _, m := range models {
		p, err := fromProposalModel(m)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

// Update applies patch under a row lock so concurrent patches do not drop
// each other's fields.
func (r *ProposalPostgresRepository) Update(ctx context.Context, id string, patch entities.ProposalPatch) (entities.Proposal, error) {
	var updated entities.Proposal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findProposal(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil || current.ID == "" {
			return err
		}
		patch.Apply(&current)
		current.UpdatedAt = time.Now().UTC()

		m, err := toProposalModel(current)
		if err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	return updated, nil
}

func (r *ProposalPostgresRepository) UpdateStatus(ctx context.Context, id string, status entities.ProposalStatus) (entities.Proposal, error) {
	res := r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return entities.Proposal{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Proposal{}, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes the proposal together with its signature.
func (r *ProposalPostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proposal_id = ?", id).Delete(&signatureModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&proposalModel{}).Error
	})
}

func findProposal(db *gorm.DB, id string) (entities.Proposal, error) {
	var m proposalModel
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proposal{}, nil
		}
		return entities.Proposal{}, err
	}
	return fromProposalModel(m)
}
