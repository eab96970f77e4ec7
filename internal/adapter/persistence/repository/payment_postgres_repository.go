package repository

import (
	"context"
	"errors"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// PaymentPostgresRepository persists ProposalPayment entities with gorm.
type PaymentPostgresRepository struct {
	db *gorm.DB
}

var _ interfaces.IPaymentRepository = (*PaymentPostgresRepository)(nil)

func NewPaymentPostgresRepository(db *gorm.DB) *PaymentPostgresRepository {
	return &PaymentPostgresRepository{db: db}
}

func (r *PaymentPostgresRepository) Create(ctx context.Context, p entities.ProposalPayment) (entities.ProposalPayment, error) {
	m := toPaymentModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.ProposalPayment{}, err
	}
	return p, nil
}

func (r *PaymentPostgresRepository) GetByID(ctx context.Context, id string) (entities.ProposalPayment, error) {
	var m paymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ProposalPayment{}, nil
		}
		return entities.ProposalPayment{}, err
	}
	return fromPaymentModel(m), nil
}

func (r *PaymentPostgresRepository) ListByProposalID(ctx context.Context, proposalID string) ([]entities.ProposalPayment, error) {
	var models []paymentModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.ProposalPayment, 0, len(models))
	for _, m := range models {
		items = append(items, fromPaymentModel(m))
	}
	return items, nil
}
