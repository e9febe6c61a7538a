package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"hotel_portal/internal/domain"
)

const exportSheet = "Reservations"

var exportHeader = []any{
	"Confirmation", "Status", "Guest", "Email", "Property",
	"Check-in", "Check-out", "Nights", "Adults", "Children", "Rooms", "Total", "Currency", "Source",
}

// ExportReservations writes every reservation matching q to w as an xlsx
// workbook. Limit and Offset of q are ignored.
func (s *ReservationService) ExportReservations(ctx context.Context, q domain.ReservationQuery, w io.Writer) (int, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return 0, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return 0, err
	}

	const batch = 200
	q.Limit, q.Offset = batch, 0
	rows := 0
	for {
		page, err := s.repo.ListReservations(ctx, q)
		if err != nil {
			return 0, err
		}
		for _, r := range page.Items {
			cell, err := excelize.CoordinatesToCellName(1, rows+2)
			if err != nil {
				return 0, err
			}
			row := exportRow(r)
			if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
				return 0, err
			}
			rows++
		}
		q.Offset += len(page.Items)
		if len(page.Items) < batch || int64(q.Offset) >= page.Total {
			break
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return 0, err
	}
	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return rows, nil
}

func exportRow(r domain.Reservation) []any {
	var guest, email, property string
	if r.Guest != nil {
		guest, email = r.Guest.FullName(), r.Guest.Email
	}
	if r.Property != nil {
		property = r.Property.Name
	}
	return []any{
		r.ConfirmationNumber, string(r.Status), guest, email, property,
		r.CheckInDate.Format(time.DateOnly), r.CheckOutDate.Format(time.DateOnly),
		r.Nights, r.Adults, r.Children, len(r.Rooms), r.TotalAmount, r.Currency, r.Source,
	}
}
