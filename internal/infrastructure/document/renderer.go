// Package document renders proposals into paginated PDF artifacts.
package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"orcafacil/internal/domain/entities"
	"orcafacil/internal/domain/errs"
	"orcafacil/internal/domain/palette"
	"orcafacil/internal/infrastructure/canvas"

	"github.com/go-pdf/fpdf"
	"github.com/nfnt/resize"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const ContentTypePDF = "application/pdf"

// A4 portrait, millimetres.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	margin       = 20.0
	contentWidth = pageWidth - 2*margin

	pageTop    = 20.0
	pageBottom = 270.0

	blockLine     = 5.0
	rowHeight     = 8.0
	wrapLine      = 5.0
	maxDescLength = 40
	titleLine     = 6.0
	maxTitleLines = 2

	signatureWidth  = 60.0
	signatureHeight = 24.0
	// signatureBlockLimit leaves room for the label, image and metadata.
	signatureBlockLimit = pageHeight - 70.0
	signaturePixelWidth = 600
)

var (
	black = rgb{0, 0, 0}
	white = rgb{0xff, 0xff, 0xff}
)

// trace records where things landed during a render.
type trace struct {
	rows          []rowPlacement
	backgrounds   int
	imageEmbedded bool
}

type rowPlacement struct {
	page int
	top  float64
}

type Option func(*Renderer)

// WithCompression toggles PDF stream compression (on by default).
func WithCompression(on bool) Option {
	return func(r *Renderer) { r.compress = on }
}

// WithLocation sets the timezone used for the signed-at timestamp.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) { r.loc = loc }
}

// Renderer lays a proposal out top to bottom in a single pass, breaking pages
// before any row that would start below the page-bottom threshold.
type Renderer struct {
	compress bool
	loc      *time.Location
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{compress: true, loc: brasilia}
	for _, o := range opts {
		o(r)
	}
	return r
}

// layout is the state of one render: the pdf being built and the vertical
// cursor.
type layout struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	pal struct{ primary, background, text, accent rgb }
	y   float64

	rows        []rowPlacement
	backgrounds int
}

// Render builds the document for p using pal. sig may be nil.
func (r *Renderer) Render(ctx context.Context, p entities.Proposal, pal palette.Palette, sig *entities.Signature) (entities.Document, error) {
	doc, _, err := r.render(ctx, p, pal, sig)
	return doc, err
}

func (r *Renderer) render(ctx context.Context, p entities.Proposal, pal palette.Palette, sig *entities.Signature) (entities.Document, trace, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(margin, pageTop, margin)
	pdf.SetTitle(p.Title, true)

	l := &layout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	l.pal.primary = parseHex(pal.Primary, black)
	l.pal.background = parseHex(pal.Background, white)
	l.pal.text = parseHex(pal.Text, black)
	l.pal.accent = parseHex(pal.Accent, white)

	l.newPage()
	l.y = 25

	l.header(p)
	l.company(p.Company)
	l.client(p.Client)
	l.items(p.LineItems)
	l.grandTotal(p)
	l.terms(p)

	embedded := false
	if sig != nil {
		embedded = l.signature(*sig, r.loc)
	}

	// A cancelled render never yields a partial artifact.
	if err := ctx.Err(); err != nil {
		return entities.Document{}, trace{}, fmt.Errorf("render proposal %s: %w", p.ID, err)
	}
	if pdf.Err() {
		return entities.Document{}, trace{}, fmt.Errorf("render proposal %s: %w", p.ID, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return entities.Document{}, trace{}, fmt.Errorf("render proposal %s: %w", p.ID, err)
	}

	doc := entities.Document{
		Filename:    Filename(p.Title, sig != nil),
		ContentType: ContentTypePDF,
		Content:     buf.Bytes(),
		Pages:       pdf.PageCount(),
		Signed:      sig != nil,
	}
	return doc, trace{rows: l.rows, backgrounds: l.backgrounds, imageEmbedded: embedded}, nil
}

func (l *layout) newPage() {
	l.pdf.AddPage()
	if !l.pal.background.isWhite() {
		l.fill(l.pal.background)
		l.pdf.Rect(0, 0, pageWidth, pageHeight, "F")
		l.backgrounds++
	}
	l.y = pageTop
}

// ensure starts a new page when the cursor is past limit.
func (l *layout) ensure(limit float64) {
	if l.y > limit {
		l.newPage()
	}
}

func (l *layout) fill(c rgb) { l.pdf.SetFillColor(c.r, c.g, c.b) }
func (l *layout) ink(c rgb)  { l.pdf.SetTextColor(c.r, c.g, c.b) }
func (l *layout) draw(c rgb) { l.pdf.SetDrawColor(c.r, c.g, c.b) }

func (l *layout) font(style string, size float64) {
	l.pdf.SetFont("Helvetica", style, size)
}

func (l *layout) text(x float64, s string) {
	l.pdf.Text(x, l.y, l.tr(s))
}

func (l *layout) textRight(right float64, s string) {
	s = l.tr(s)
	l.pdf.Text(right-l.pdf.GetStringWidth(s), l.y, s)
}

func (l *layout) header(p entities.Proposal) {
	l.font("B", 22)
	l.ink(l.pal.primary)
	l.text(margin, "ORÇAMENTO")
	l.y += 10

	l.font("", 14)
	l.ink(l.pal.text)
	for i, line := range l.titleLines(p.Title) {
		if i > 0 {
			l.y += titleLine
		}
		l.pdf.Text(margin, l.y, line)
	}
	l.y += 5

	l.draw(l.pal.primary)
	l.pdf.SetLineWidth(0.8)
	l.pdf.Line(margin, l.y, pageWidth-margin, l.y)
	l.y += 12
}

// titleLines wraps the title to the content width, keeping at most
// maxTitleLines and ending a cut title with an ellipsis.
func (l *layout) titleLines(title string) []string {
	var lines []string
	for _, b := range l.pdf.SplitLines([]byte(l.tr(title)), contentWidth) {
		lines = append(lines, string(b))
	}
	if len(lines) <= maxTitleLines {
		return lines
	}
	lines = lines[:maxTitleLines]
	// Translated text is single-byte, so trimming bytes trims characters.
	last := strings.TrimRight(lines[maxTitleLines-1], " ")
	for last != "" && l.pdf.GetStringWidth(last+"...") > contentWidth {
		last = last[:len(last)-1]
	}
	lines[maxTitleLines-1] = last + "..."
	return lines
}

type labelled struct{ label, value string }

func (l *layout) partyBlock(title, name string, lines []labelled) {
	l.font("B", 11)
	l.ink(l.pal.primary)
	l.text(margin, title)
	l.y += 6

	l.font("B", 10)
	l.ink(l.pal.text)
	l.text(margin, name)
	l.y += blockLine

	l.font("", 10)
	for _, ln := range lines {
		if ln.value == "" {
			continue
		}
		l.text(margin, ln.label+ln.value)
		l.y += blockLine
	}
	l.y += 5
}

func (l *layout) company(c entities.CompanyInfo) {
	l.partyBlock("DADOS DA EMPRESA", c.Name, []labelled{
		{"Email: ", c.Email},
		{"Telefone: ", c.Phone},
		{"CNPJ/CPF: ", c.TaxID},
	})
}

func (l *layout) client(c entities.ClientInfo) {
	l.partyBlock("DADOS DO CLIENTE", c.Name, []labelled{
		{"Local: ", c.Location},
		{"Telefone: ", c.Phone},
	})
}

// Column anchors of the item table; money columns are right-aligned.
const (
	colDescription = margin + 2
	colQuantity    = 118.0
	colUnitRight   = 160.0
	colTotalRight  = pageWidth - margin - 2
)

func (l *layout) tableHeader() {
	l.fill(l.pal.accent)
	l.pdf.Rect(margin, l.y-5.5, contentWidth, rowHeight, "F")
	l.font("B", 10)
	l.ink(l.pal.text)
	l.text(colDescription, "Descrição")
	l.text(colQuantity, "Qtd")
	l.textRight(colUnitRight, "Valor Unit.")
	l.textRight(colTotalRight, "Total")
	l.y += rowHeight
}

func (l *layout) items(items []entities.LineItem) {
	l.tableHeader()

	l.font("", 10)
	for _, it := range items {
		if l.y > pageBottom {
			l.newPage()
			l.font("", 10)
		}
		l.rows = append(l.rows, rowPlacement{page: l.pdf.PageNo(), top: l.y - 5.5})

		l.ink(l.pal.text)
		l.text(colDescription, truncate(it.Description, maxDescLength))
		l.text(colQuantity, fmt.Sprintf("%d", it.Quantity))
		l.textRight(colUnitRight, FormatCurrency(decimal.NewFromFloat(it.UnitPrice)))
		l.textRight(colTotalRight, FormatCurrency(it.Amount()))
		l.y += rowHeight
	}
}

func (l *layout) grandTotal(p entities.Proposal) {
	l.y += 5
	l.ensure(pageBottom)
	l.font("B", 14)
	l.ink(l.pal.primary)
	l.textRight(pageWidth-margin, "TOTAL GERAL: "+FormatCurrency(p.TotalAmount()))
	l.y += 12
}

func (l *layout) terms(p entities.Proposal) {
	l.font("", 10)
	l.ink(l.pal.text)

	for _, ln := range []labelled{
		{"Prazo de entrega: ", p.Deadline},
		{"Condições de pagamento: ", p.PaymentTerms},
	} {
		if ln.value == "" {
			continue
		}
		l.ensure(pageBottom)
		l.text(margin, ln.label+ln.value)
		l.y += 6
	}

	if p.Observations == "" {
		return
	}
	l.ensure(pageBottom)
	l.font("B", 10)
	l.text(margin, "Observações:")
	l.y += 6

	l.font("", 10)
	for _, line := range l.pdf.SplitLines([]byte(l.tr(p.Observations)), contentWidth) {
		l.ensure(pageBottom)
		l.pdf.Text(margin, l.y, string(line))
		l.y += wrapLine
	}
}

// signature draws the signature block and reports whether the image made it
// into the document.
func (l *layout) signature(sig entities.Signature, loc *time.Location) bool {
	l.ensure(signatureBlockLimit)
	l.y += 10

	l.font("B", 12)
	l.ink(l.pal.primary)
	l.text(margin, "ASSINATURA DIGITAL")
	l.y += 4

	embedded := false
	img, err := loadSignatureImage(sig.SignatureData)
	if err == nil {
		err = l.embed("signature-"+sig.ProposalID, img)
	}
	if err != nil {
		zap.L().Warn("[document][renderer] signature image skipped",
			zap.String("proposal_id", sig.ProposalID), zap.Error(err))
		l.y += 4
	} else {
		embedded = true
		l.y += signatureHeight + 6
	}

	l.font("", 10)
	l.ink(l.pal.text)
	l.text(margin, sig.SignerName)
	l.y += blockLine
	l.text(margin, sig.SignerEmail)
	l.y += blockLine
	l.text(margin, "Assinado em: "+FormatDateTime(sig.SignedAt, loc))
	l.y += blockLine
	return embedded
}

func (l *layout) embed(name string, img image.Image) error {
	scaled := resize.Resize(signaturePixelWidth, 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrDecode, err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	l.pdf.RegisterImageOptionsReader(name, opts, &buf)
	if l.pdf.Err() {
		err := l.pdf.Error()
		l.pdf.ClearError()
		return fmt.Errorf("%w: %v", errs.ErrDecode, err)
	}
	l.pdf.ImageOptions(name, margin, l.y, signatureWidth, signatureHeight, false, opts, 0, "")
	return nil
}

// loadSignatureImage decodes the signature payload before layout continues.
// It resolves exactly once, with the image or an ErrDecode.
func loadSignatureImage(data string) (image.Image, error) {
	img, err := canvas.DecodeDataURL(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecode, err)
	}
	return img, nil
}
