package interfaces

import (
	"context"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/palette"
)

// IDocumentRenderer turns a proposal into a printable document. sig is nil
// for unsigned proposals.
type IDocumentRenderer interface {
	Render(ctx context.Context, p entities.Proposal, pal palette.Palette, sig *entities.Signature) (entities.Document, error)
}
