package application

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/zap-network/zapfoil/internal/core/domain"
)

// Voucher page layout. Placement is specified in millimetres and converted
// to pixels at a fixed resolution when rasterising the QR codes.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 10.0
	cellWidthMM  = 63.0
	cellHeightMM = 66.0
	qrSizeMM     = 50.0
	labelGapMM   = 2.0
	labelHeight  = 6.0
	renderDPI    = 300
)

func mmToPx(mm float64) int {
	return int(mm / 25.4 * renderDPI)
}

// RenderService renders stored foils as a multi-page voucher document.
type RenderService interface {
	// RenderVouchers writes one QR code (the foil secret) plus batch label
	// per foil into a PDF at outPath and returns the number of rendered
	// vouchers. Batch limits the scope to one batch when non-nil.
	RenderVouchers(ctx context.Context, outPath string, batch *int) (int, error)
}

type renderService struct {
	repo domain.FoilRepository
}

// NewRenderService is a constructor function for RenderService.
func NewRenderService(repo domain.FoilRepository) RenderService {
	return &renderService{repo: repo}
}

func (s *renderService) RenderVouchers(
	ctx context.Context, outPath string, batch *int,
) (int, error) {
	var foils []*domain.Foil
	var err error
	if batch != nil {
		foils, err = s.repo.GetByBatch(ctx, *batch)
	} else {
		foils, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		return 0, err
	}

	usableW := float64(pageWidthMM - 2*marginMM)
	usableH := float64(pageHeightMM - 2*marginMM)
	cols := int(usableW / cellWidthMM)
	rows := int(usableH / cellHeightMM)
	perPage := cols * rows

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "B", 12)

	for i, foil := range foils {
		if i%perPage == 0 {
			pdf.AddPage()
		}
		position := i % perPage
		x := marginMM + float64(position%cols)*cellWidthMM
		y := marginMM + float64(position/cols)*cellHeightMM

		png, err := qrcode.Encode(foil.SecretKey, qrcode.Medium, mmToPx(qrSizeMM))
		if err != nil {
			return 0, err
		}
		name := fmt.Sprintf("foil-%d", foil.ID)
		options := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(png))
		pdf.ImageOptions(
			name, x+(cellWidthMM-qrSizeMM)/2, y, qrSizeMM, qrSizeMM,
			false, options, 0, "",
		)

		pdf.SetXY(x, y+qrSizeMM+labelGapMM)
		pdf.CellFormat(
			cellWidthMM, labelHeight, fmt.Sprintf("Batch %d", foil.Batch),
			"", 0, "C", false, 0, "",
		)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return 0, err
	}
	return len(foils), nil
}
