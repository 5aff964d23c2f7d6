package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/saswath-06/roommait/internal/service"
)

const shoppingListSheet = "Shopping List"

var PlacementExportHeader = []string{
	"Item",
	"Model ID",
	"Position X",
	"Position Y",
	"Position Z",
	"Surface",
	"Estimated Cost",
}

var placementColumnWidths = []float64{38, 28, 12, 12, 12, 20, 16}

// GeneratePlacementShoppingList one row per placed item followed by a total row.
func GeneratePlacementShoppingList(p *service.GetPlacementResponse) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(shoppingListSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range PlacementExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(shoppingListSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(shoppingListSheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(shoppingListSheet, name, name, placementColumnWidths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	row := 2
	for _, item := range p.FurnitureItems {
		surface := ""
		if item.SurfaceID != nil {
			surface = *item.SurfaceID
		}
		values := []any{
			item.ItemID,
			item.ModelID,
			item.Position.X,
			item.Position.Y,
			item.Position.Z,
			surface,
			item.EstimatedCost,
		}
		if err := setRow(f, row, values); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(len(PlacementExportHeader)-1, row)
	totalValue, _ := excelize.CoordinatesToCellName(len(PlacementExportHeader), row)
	if err := f.SetCellValue(shoppingListSheet, totalLabel, "Total"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set total label: %w", err)
	}
	if err := f.SetCellValue(shoppingListSheet, totalValue, p.TotalEstimatedCost); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set total value: %w", err)
	}
	if err := f.SetCellStyle(shoppingListSheet, totalLabel, totalValue, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set total style: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(shoppingListSheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
