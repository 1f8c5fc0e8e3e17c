package export

import (
	"testing"
)

func TestNewWorkbook(t *testing.T) {
	wb, err := NewWorkbook([]SheetSpec{{
		Title:  "Pagos",
		Header: []string{"Código", "Monto"},
		Rows: [][]string{
			{"CU-1", "$100.000,00"},
			{"MA-2", "$80.000,00"},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = wb.File.Close() }()

	if got, _ := wb.File.GetCellValue("Pagos", "A1"); got != "Código" {
		t.Fatalf("A1=%q", got)
	}
	if got, _ := wb.File.GetCellValue("Pagos", "B3"); got != "$80.000,00" {
		t.Fatalf("B3=%q", got)
	}
}

func TestSanitizeSheetName(t *testing.T) {
	if got := sanitizeSheetName("Venta de cursos · Febrero 2026 y algo más"); len([]rune(got)) > 31 {
		t.Fatalf("nombre de hoja demasiado largo: %q", got)
	}
	if got := sanitizeSheetName("a/b:c"); got == "a/b:c" {
		t.Fatalf("los signos prohibidos deben reemplazarse: %q", got)
	}
	if got := sanitizeSheetName("  "); got != "Datos" {
		t.Fatalf("vacío debe caer a Datos: %q", got)
	}
}

func TestColName(t *testing.T) {
	casos := map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ"}
	for n, quiere := range casos {
		if got := colName(n); got != quiere {
			t.Errorf("colName(%d)=%q, quería %q", n, got, quiere)
		}
	}
}
