package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"guesthouse/internal/domains/booking/engine"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared/constant"
	"guesthouse/shared/timezone"
)

const (
	exportSheet   = "Bookings"
	defaultSheet  = "Sheet1"
	exportCreated = "2006-01-02 15:04"
)

var exportHeaders = []string{
	"ID", "Room", "Guest", "Email", "Check-in", "Check-out", "Nights", "Guests", "Status", "Message", "Created",
}

var exportWidths = []float64{38, 14, 24, 30, 12, 12, 8, 8, 12, 40, 18}

var statusFill = map[model.Status]string{
	model.StatusPending:   "#FFF2CC",
	model.StatusConfirmed: "#C6EFCE",
	model.StatusCancelled: "#F4CCCC",
}

func workbook(bookings []model.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	f.SetActiveSheet(index)

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	statusStyles := make(map[model.Status]int, len(statusFill))

	for status, color := range statusFill {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create status style: %w", err)
		}

		statusStyles[status] = style
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header: %w", err)
		}

		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}

		if err := f.SetCellStyle(exportSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, booking := range bookings {
		row := i + 2

		message := ""
		if booking.Message != nil {
			message = *booking.Message
		}

		values := []any{
			booking.ID,
			booking.RoomName,
			booking.GuestName,
			booking.GuestEmail,
			booking.CheckIn.Format(constant.DayFormat),
			booking.CheckOut.Format(constant.DayFormat),
			engine.Nights(booking.CheckIn, booking.CheckOut),
			booking.Guests,
			booking.Status.String(),
			message,
			timezone.Format(booking.CreatedAt, exportCreated),
		}

		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("failed to address row: %w", err)
		}

		if err := f.SetSheetRow(exportSheet, start, &values); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}

		statusCell, err := excelize.CoordinatesToCellName(9, row)
		if err != nil {
			return nil, fmt.Errorf("failed to address status: %w", err)
		}

		if err := f.SetCellStyle(exportSheet, statusCell, statusCell, statusStyles[booking.Status]); err != nil {
			return nil, fmt.Errorf("failed to style status: %w", err)
		}
	}

	for col, width := range exportWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to name column: %w", err)
		}

		if err := f.SetColWidth(exportSheet, name, name, width); err != nil {
			return nil, fmt.Errorf("failed to size column: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
