package pdf

import (
	"bytes"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/config"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/jung-kurt/gofpdf"
)

const mahaMantra = "Hare Krishna Hare Krishna Krishna Krishna Hare Hare Hare Rama Hare Rama Rama Rama Hare Hare"

// Renderer produces one A4 coupon PDF per record: temple header, the
// maha-mantra, visitor name, seva label, code, issue date, a QR symbol of
// the code and a Bhagavad Gita verse.
type Renderer struct {
	templeName    string
	templeAddress string

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRenderer(conf config.PDFConfig) *Renderer {
	return &Renderer{
		templeName:    conf.TempleName,
		templeAddress: conf.TempleAddress,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Renderer) randomQuote() GitaQuote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gitaQuotes[r.rng.Intn(len(gitaQuotes))]
}

// Render produces the PDF bytes for one coupon.
func (r *Renderer) Render(c models.Coupon) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetTextColor(0, 0, 0)

	// Header
	doc.SetFont("Helvetica", "B", 18)
	doc.SetY(20)
	doc.CellFormat(0, 10, r.templeName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.SetY(32)
	doc.CellFormat(0, 6, r.templeAddress, "", 1, "C", false, 0, "")

	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(0.5)
	doc.Line(20, 45, 190, 45)

	// Maha-mantra block
	doc.SetFont("Helvetica", "I", 14)
	mantraLines := doc.SplitText(mahaMantra, 180)
	y := 60.0
	for _, line := range mantraLines {
		doc.SetY(y)
		doc.CellFormat(0, 8, line, "", 1, "C", false, 0, "")
		y += 8
	}

	doc.SetFont("Helvetica", "B", 8)
	y += 5
	doc.SetY(y)
	doc.CellFormat(0, 5, "Please Chant and be Happy", "", 1, "C", false, 0, "")

	// Visitor name, seva, code
	nameY := y + 15
	doc.SetFont("Helvetica", "", 16)
	doc.SetY(nameY)
	doc.CellFormat(0, 8, c.Name, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 14)
	doc.SetY(nameY + 12)
	doc.CellFormat(0, 8, c.Seva.Label(), "", 1, "C", false, 0, "")

	doc.SetY(nameY + 24)
	doc.CellFormat(0, 8, c.Code, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	doc.SetY(nameY + 36)
	doc.CellFormat(0, 8, "Generated on: "+issueDateLabel(c.IssuedAt), "", 1, "C", false, 0, "")

	// QR symbol of the code, centered
	qrPNG, err := GenerateQRCode(c.Code, 300)
	if err != nil {
		return nil, err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	imageName := "qr-" + c.Code
	doc.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(qrPNG))
	doc.ImageOptions(imageName, 75, nameY+50, 60, 60, false, opts, 0, "")

	// Gita verse near the foot of the page
	quote := r.randomQuote()
	doc.SetFont("Helvetica", "I", 9)
	quoteLines := doc.SplitText(fmt.Sprintf("%q", quote.Translation), 160)
	lineHeight := 7.0
	quoteY := 225 - float64(len(quoteLines)-1)*lineHeight
	for i, line := range quoteLines {
		doc.SetY(quoteY + float64(i)*lineHeight)
		doc.CellFormat(0, lineHeight, line, "", 1, "C", false, 0, "")
	}

	doc.SetFont("Helvetica", "", 8)
	referenceY := quoteY + float64(len(quoteLines))*lineHeight + 10
	doc.SetY(referenceY)
	doc.CellFormat(0, 5, fmt.Sprintf("Chapter %d, Verse %d", quote.Chapter, quote.Verse), "", 1, "C", false, 0, "")

	// Footer
	footerLineY := referenceY + 15
	doc.Line(20, footerLineY, 190, footerLineY)
	doc.SetFont("Helvetica", "", 9)
	doc.SetY(footerLineY + 8)
	doc.CellFormat(0, 6, "Thank you for visiting "+r.templeName, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func issueDateLabel(issuedAt string) string {
	t, err := time.Parse(models.IssueDateFormat, issuedAt)
	if err != nil {
		return issuedAt
	}
	return t.Format("January 2, 2006")
}

var nonWord = regexp.MustCompile(`\s+`)

// FileName builds the per-coupon download name. The code makes it unique
// inside a bulk archive.
func FileName(c models.Coupon) string {
	name := nonWord.ReplaceAllString(strings.TrimSpace(c.Name), "_")
	return fmt.Sprintf("coupon_%s_%s.pdf", name, c.Code)
}
