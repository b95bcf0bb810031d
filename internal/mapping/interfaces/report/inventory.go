package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	scl "cim-mapping/internal/scl/domain"
)

// Summary counts the elements of a mapped document.
type Summary struct {
	Substations          int
	VoltageLevels        int
	Bays                 int
	ConductingEquipments int
	ConnectivityNodes    int
	PowerTransformers    int
	Windings             int
	TapChangers          int
	UnresolvedTerminals  int
}

// EquipmentRow is one piece of equipment and the bay path it sits in.
type EquipmentRow struct {
	Path      string
	Name      string
	Type      string
	Terminals int
}

// Summarize walks doc and counts its elements.
func Summarize(doc *scl.Document) Summary {
	var s Summary
	if doc == nil {
		return s
	}
	s.Substations = len(doc.Substations)
	for _, substation := range doc.Substations {
		s.VoltageLevels += len(substation.VoltageLevels)
		for _, voltageLevel := range substation.VoltageLevels {
			s.Bays += len(voltageLevel.Bays)
			for _, bay := range voltageLevel.Bays {
				s.ConnectivityNodes += len(bay.ConnectivityNodes)
				s.ConductingEquipments += len(bay.ConductingEquipments)
				for _, equipment := range bay.ConductingEquipments {
					s.UnresolvedTerminals += countUnresolved(equipment.Terminals)
				}
			}
		}
		s.PowerTransformers += len(substation.PowerTransformers)
		for _, transformer := range substation.PowerTransformers {
			s.Windings += len(transformer.Windings)
			for _, winding := range transformer.Windings {
				s.UnresolvedTerminals += countUnresolved(winding.Terminals)
				if winding.TapChanger != nil {
					s.TapChangers++
				}
			}
		}
	}
	return s
}

func countUnresolved(terminals []scl.Terminal) int {
	count := 0
	for _, terminal := range terminals {
		if terminal.ConnectivityNode == "" {
			count++
		}
	}
	return count
}

// EquipmentRows lists bay equipment and transformers in document order.
func EquipmentRows(doc *scl.Document) []EquipmentRow {
	var rows []EquipmentRow
	if doc == nil {
		return rows
	}
	for _, substation := range doc.Substations {
		for _, voltageLevel := range substation.VoltageLevels {
			for _, bay := range voltageLevel.Bays {
				path := substation.Name + "/" + voltageLevel.Name + "/" + bay.Name
				for _, equipment := range bay.ConductingEquipments {
					rows = append(rows, EquipmentRow{Path: path, Name: equipment.Name, Type: equipment.Type, Terminals: len(equipment.Terminals)})
				}
			}
		}
		for _, transformer := range substation.PowerTransformers {
			terminals := 0
			for _, winding := range transformer.Windings {
				terminals += len(winding.Terminals)
			}
			rows = append(rows, EquipmentRow{Path: substation.Name, Name: transformer.Name, Type: transformer.Type, Terminals: terminals})
		}
	}
	return rows
}

// ConnectivityNodes lists every node defined in doc.
func ConnectivityNodes(doc *scl.Document) []scl.ConnectivityNode {
	var nodes []scl.ConnectivityNode
	if doc == nil {
		return nodes
	}
	for _, substation := range doc.Substations {
		for _, voltageLevel := range substation.VoltageLevels {
			for _, bay := range voltageLevel.Bays {
				nodes = append(nodes, bay.ConnectivityNodes...)
			}
		}
	}
	return nodes
}

// BuildInventoryXLSX renders a workbook with summary, equipment and
// connectivity node sheets.
func BuildInventoryXLSX(doc *scl.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("report: nil document")
	}
	summary := Summarize(doc)

	f := excelize.NewFile()
	defer f.Close()
	summarySheet := "summary"
	equipmentSheet := "equipment"
	nodesSheet := "connectivity_nodes"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(equipmentSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(nodesSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "SCL Inventory")
	_ = f.SetCellValue(summarySheet, "A2", "Header")
	_ = f.SetCellValue(summarySheet, "B2", doc.Header.ID)
	for i, line := range summaryLines(summary) {
		row := i + 4
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), line.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), line.value)
	}

	_ = f.SetCellValue(equipmentSheet, "A1", "Path")
	_ = f.SetCellValue(equipmentSheet, "B1", "Name")
	_ = f.SetCellValue(equipmentSheet, "C1", "Type")
	_ = f.SetCellValue(equipmentSheet, "D1", "Terminals")
	for i, item := range EquipmentRows(doc) {
		row := i + 2
		_ = f.SetCellValue(equipmentSheet, fmt.Sprintf("A%d", row), item.Path)
		_ = f.SetCellValue(equipmentSheet, fmt.Sprintf("B%d", row), item.Name)
		_ = f.SetCellValue(equipmentSheet, fmt.Sprintf("C%d", row), item.Type)
		_ = f.SetCellValue(equipmentSheet, fmt.Sprintf("D%d", row), item.Terminals)
	}

	_ = f.SetCellValue(nodesSheet, "A1", "Name")
	_ = f.SetCellValue(nodesSheet, "B1", "Path Name")
	for i, node := range ConnectivityNodes(doc) {
		row := i + 2
		_ = f.SetCellValue(nodesSheet, fmt.Sprintf("A%d", row), node.Name)
		_ = f.SetCellValue(nodesSheet, fmt.Sprintf("B%d", row), node.PathName)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSummaryPDF renders a one page summary with the equipment table.
func BuildSummaryPDF(doc *scl.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("report: nil document")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "SCL Mapping Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Header: %s", doc.Header.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Edition: %s%s%s", doc.Version, doc.Revision, doc.Release))
	pdf.Ln(8)
	for _, line := range summaryLines(Summarize(doc)) {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", line.label, line.value))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 6, "Path", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Name", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Terminals", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range EquipmentRows(doc) {
		pdf.CellFormat(80, 6, item.Path, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, item.Type, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Terminals), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type summaryLine struct {
	label string
	value int
}

func summaryLines(s Summary) []summaryLine {
	return []summaryLine{
		{"Substations", s.Substations},
		{"Voltage Levels", s.VoltageLevels},
		{"Bays", s.Bays},
		{"Conducting Equipment", s.ConductingEquipments},
		{"Connectivity Nodes", s.ConnectivityNodes},
		{"Power Transformers", s.PowerTransformers},
		{"Windings", s.Windings},
		{"Tap Changers", s.TapChangers},
		{"Unresolved Terminals", s.UnresolvedTerminals},
	}
}
