package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/usecase/interfaces"
)

// MemoryStore keeps proposals, signatures and payments in memory. It backs
// local runs without a database and the tests. Safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	proposals  map[string]entities.Proposal        // id -> proposal
	signatures map[string]entities.Signature       // proposal id -> signature
	payments   map[string]entities.ProposalPayment // id -> payment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		proposals:  make(map[string]entities.Proposal),
		signatures: make(map[string]entities.Signature),
		payments:   make(map[string]entities.ProposalPayment),
	}
}

func (s *MemoryStore) Proposals() *ProposalMemoryRepository {
	return &ProposalMemoryRepository{store: s}
}

func (s *MemoryStore) Signatures() *SignatureMemoryRepository {
	return &SignatureMemoryRepository{store: s}
}

func (s *MemoryStore) Payments() *PaymentMemoryRepository {
	return &PaymentMemoryRepository{store: s}
}

// cloneProposal copies the slice and pointer fields so stored values never
// alias caller memory.
func cloneProposal(p entities.Proposal) entities.Proposal {
	if p.LineItems != nil {
		p.LineItems = append([]entities.LineItem(nil), p.LineItems...)
	}
	if p.TemplateColors != nil {
		c := *p.TemplateColors
		p.TemplateColors = &c
	}
	return p
}

type ProposalMemoryRepository struct {
	store *MemoryStore
}

var _ interfaces.IProposalRepository = (*ProposalMemoryRepository)(nil)

func (r *ProposalMemoryRepository) Create(_ context.Context, p entities.Proposal) (entities.Proposal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.proposals[p.ID]; ok {
		return entities.Proposal{}, fmt.Errorf("%w: proposal %s", errs.ErrConflict, p.ID)
	}
	r.store.proposals[p.ID] = cloneProposal(p)
	return cloneProposal(p), nil
}

func (r *ProposalMemoryRepository) GetByID(_ context.Context, id string) (entities.Proposal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.proposals[id]
	if !ok {
		return entities.Proposal{}, nil
	}
	return cloneProposal(p), nil
}

func (r *ProposalMemoryRepository) ListByOwnerID(_ context.Context, ownerID string) ([]entities.Proposal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := make([]entities.Proposal, 0)
	for _, p := range r.store.proposals {
		if p.OwnerID == ownerID {
			items = append(items, cloneProposal(p))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *ProposalMemoryRepository) Update(_ context.Context, id string, patch entities.ProposalPatch) (entities.Proposal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.proposals[id]
	if !ok {
		return entities.Proposal{}, nil
	}
	p = cloneProposal(p)
	patch.Apply(&p)
	p.UpdatedAt = time.Now().UTC()
	r.store.proposals[id] = p
	return cloneProposal(p), nil
}

func (r *ProposalMemoryRepository) UpdateStatus(_ context.Context, id string, status entities.ProposalStatus) (entities.Proposal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.proposals[id]
	if !ok {
		return entities.Proposal{}, nil
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	r.store.proposals[id] = p
	return cloneProposal(p), nil
}

func (r *ProposalMemoryRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.proposals, id)
	delete(r.store.signatures, id)
	return nil
}

type SignatureMemoryRepository struct {
	store *MemoryStore
}

var _ interfaces.ISignatureRepository = (*SignatureMemoryRepository)(nil)

func (r *SignatureMemoryRepository) Create(_ context.Context, s entities.Signature) (entities.Signature, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.signatures[s.ProposalID]; ok {
		return entities.Signature{}, fmt.Errorf("%w: signature for proposal %s", errs.ErrConflict, s.ProposalID)
	}
	r.store.signatures[s.ProposalID] = s
	return s, nil
}

func (r *SignatureMemoryRepository) GetByProposalID(_ context.Context, proposalID string) (entities.Signature, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.signatures[proposalID], nil
}

type PaymentMemoryRepository struct {
	store *MemoryStore
}

var _ interfaces.IPaymentRepository = (*PaymentMemoryRepository)(nil)

func (r *PaymentMemoryRepository) Create(_ context.Context, p entities.ProposalPayment) (entities.ProposalPayment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.payments[p.ID]; ok {
		return entities.ProposalPayment{}, fmt.Errorf("%w: payment %s", errs.ErrConflict, p.ID)
	}
	r.store.payments[p.ID] = p
	return p, nil
}

func (r *PaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.ProposalPayment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.payments[id], nil
}

func (r *PaymentMemoryRepository) ListByProposalID(_ context.Context, proposalID string) ([]entities.ProposalPayment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := make([]entities.ProposalPayment, 0)
	for _, p := range r.store.payments {
		if p.ProposalID == proposalID {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})
	return items, nil
}
