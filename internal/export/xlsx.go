package export

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/windload-cli/internal/wind"
)

// WritePlanXLSX writes a combined line-load plan to an XLSX workbook with a
// single "Loads" sheet. Rows are written in the order given.
func WritePlanXLSX(path string, rows []wind.Row) error {
	f := xlsx.NewFile()
	if err := addPlanSheet(f, "Loads", rows); err != nil {
		return err
	}
	return eris.Wrap(f.Save(path), "export: save workbook")
}

// WriteReportXLSX writes a full run report: the pressure table plus the
// combined plan, one sheet each.
func WriteReportXLSX(path string, pressures *wind.PressureTable, rows []wind.Row) error {
	f := xlsx.NewFile()
	if err := addPressureSheet(f, "Pressures", pressures); err != nil {
		return err
	}
	if err := addPlanSheet(f, "Loads", rows); err != nil {
		return err
	}
	return eris.Wrap(f.Save(path), "export: save workbook")
}

// WriteGroupsXLSX writes a classification result to an XLSX workbook: one
// "Groups" sheet with a row per (group, element) pair. Group names are
// written in sorted order; element ids keep the order given.
func WriteGroupsXLSX(path string, groups map[string][]string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Groups")
	if err != nil {
		return eris.Wrap(err, "export: add sheet Groups")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Group", "Element"} {
		header.AddCell().Value = h
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, id := range groups[name] {
			row := sheet.AddRow()
			row.AddCell().Value = name
			row.AddCell().Value = id
		}
	}
	return eris.Wrap(f.Save(path), "export: save workbook")
}

func addPlanSheet(f *xlsx.File, name string, rows []wind.Row) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	for _, h := range []string{"Element", "Load Case", "Load Group", "Structure Group", "Direction", "Line Load (kip/ft)", "Eccentricity (ft)"} {
		header.AddCell().Value = h
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt(r.ElementID)
		row.AddCell().Value = r.LoadCase
		row.AddCell().Value = r.LoadGroup
		row.AddCell().Value = r.GroupName
		row.AddCell().Value = r.Direction
		row.AddCell().SetFloat(r.LineLoad)
		row.AddCell().SetFloat(r.Eccentricity)
	}
	return nil
}

func addPressureSheet(f *xlsx.File, name string, pressures *wind.PressureTable) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	for _, h := range []string{"Group", "Load Case", "Gust Speed (mph)", "Kz", "G", "Cd", "Pz (ksf)"} {
		header.AddCell().Value = h
	}

	for _, r := range pressures.Rows() {
		row := sheet.AddRow()
		row.AddCell().Value = r.Group
		row.AddCell().Value = r.LoadCase
		row.AddCell().SetFloat(r.GustSpeed)
		row.AddCell().SetFloat(r.Kz)
		row.AddCell().SetFloat(r.G)
		row.AddCell().SetFloat(r.Cd)
		row.AddCell().SetFloat(r.Pz)
	}
	return nil
}
