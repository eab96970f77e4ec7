package request

import (
	"strings"

	"orcafacil/internal/infrastructure/canvas"
	"orcafacil/internal/usecase"
)

type PointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SignatureRequest is the body of POST /signature/:proposal_id. Clients send
// either the pointer paths drawn on the pad (strokes, in logical pad
// coordinates) or an already rasterized data URL (signature_data).
type SignatureRequest struct {
	SignerName    string           `json:"signer_name"`
	SignerEmail   string           `json:"signer_email"`
	Strokes       [][]PointRequest `json:"strokes"`
	SignatureData string           `json:"signature_data"`
}

func (r SignatureRequest) ToInput() usecase.SignatureInput {
	in := usecase.SignatureInput{
		SignerName:    strings.TrimSpace(r.SignerName),
		SignerEmail:   strings.TrimSpace(r.SignerEmail),
		SignatureData: strings.TrimSpace(r.SignatureData),
	}
	for _, stroke := range r.Strokes {
		if len(stroke) == 0 {
			continue
		}
		pts := make([]canvas.Point, 0, len(stroke))
		for _, p := range stroke {
			pts = append(pts, canvas.Point{X: p.X, Y: p.Y})
		}
		in.Strokes = append(in.Strokes, pts)
	}
	return in
}
