package application

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/pkg/waves"
)

// ExportService renders stored foils as CSV rows.
type ExportService interface {
	// ExportCSV writes one row per foil in scope and returns the number of
	// data rows written. FromBatch limits the scope to batches at or above
	// the threshold. In secrets-only mode each row holds exactly the secret
	// key, nothing else; otherwise a header row precedes the full metadata
	// columns.
	ExportCSV(
		ctx context.Context, w io.Writer, fromBatch *int, secretsOnly bool,
	) (int, error)
}

type exportService struct {
	repo domain.FoilRepository
	net  waves.Network
}

// NewExportService is a constructor function for ExportService.
func NewExportService(repo domain.FoilRepository, net waves.Network) ExportService {
	return &exportService{repo: repo, net: net}
}

func (s *exportService) ExportCSV(
	ctx context.Context, w io.Writer, fromBatch *int, secretsOnly bool,
) (int, error) {
	var foils []*domain.Foil
	var err error
	if fromBatch != nil {
		foils, err = s.repo.GetFromBatch(ctx, *fromBatch)
	} else {
		foils, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if !secretsOnly {
		header := []string{
			"id", "date", "batch", "address", "amount",
			"funding_txid", "funding_date", "expiry",
		}
		if err := writer.Write(header); err != nil {
			return 0, err
		}
	}

	for _, foil := range foils {
		var record []string
		if secretsOnly {
			record = []string{foil.SecretKey}
		} else {
			address, err := foilAddress(foil, s.net.Scheme)
			if err != nil {
				return 0, err
			}
			record = []string{
				strconv.FormatUint(uint64(foil.ID), 10),
				strconv.FormatInt(foil.Date, 10),
				strconv.Itoa(foil.Batch),
				address,
				formatNullableInt(foil.Amount),
				formatNullableString(foil.FundingTxID),
				formatNullableInt(foil.FundingDate),
				formatNullableInt(foil.Expiry),
			}
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}

	writer.Flush()
	return len(foils), writer.Error()
}

func formatNullableInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatNullableString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
