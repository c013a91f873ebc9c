package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExt(t *testing.T) {
	assert.Equal(t, "csv", Ext("people.csv"))
	assert.Equal(t, "xlsx", Ext("Leads Q3.XLSX"))
	assert.Equal(t, "", Ext("noextension"))
	assert.Equal(t, "", Ext("trailingdot."))
}

func TestParseCSV(t *testing.T) {
	data := "\uFEFFFirst Name, Email \nAda,ada@acme.test\n,,\nAlan,alan@acme.test\n"

	rows, err := ParseFile(strings.NewReader(data), "csv")
	require.NoError(t, err)
	require.Len(t, rows, 2, "fully empty rows are dropped")

	// BOM stripped from the first header, surrounding whitespace trimmed
	assert.Equal(t, "Ada", rows[0]["First Name"])
	assert.Equal(t, "ada@acme.test", rows[0]["Email"])
	assert.Equal(t, "Alan", rows[1]["First Name"])
}

func TestParseCSVRaggedRows(t *testing.T) {
	data := "A,B,C\n1,2\n4,5,6,7\n"

	rows, err := ParseFile(strings.NewReader(data), "csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// short rows leave trailing headers empty, long rows drop extras
	assert.Equal(t, "", rows[0]["C"])
	assert.Equal(t, "6", rows[1]["C"])
}

func TestParseCSVMissingHeader(t *testing.T) {
	_, err := ParseFile(strings.NewReader(""), "csv")
	require.ErrorIs(t, err, ErrParse)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"First Name", "Email"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"Ada", "ada@acme.test"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]string{"", ""}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]string{"Alan", "alan@acme.test"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	rows, err := ParseFile(&buf, "xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ada@acme.test", rows[0]["Email"])
	assert.Equal(t, "Alan", rows[1]["First Name"])
}

func TestParseUnsupported(t *testing.T) {
	_, err := ParseFile(strings.NewReader("x"), "pdf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseLegacyXLS(t *testing.T) {
	// BIFF compound-file magic, the header of a real legacy .xls
	legacy := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	_, err := ParseFile(bytes.NewReader(legacy), "xls")
	require.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "re-save the file as xlsx")
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"First Name", "Email"}, [][]string{
		{"Ada", "ada@acme.test"},
	})
	require.NoError(t, err)

	rows, err := ParseFile(&buf, "csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada", rows[0]["First Name"])
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	data, err := WriteXLSX("Profiles", []string{"First Name"}, [][]string{{"Ada"}})
	require.NoError(t, err)

	rows, err := ParseFile(bytes.NewReader(data), "xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada", rows[0]["First Name"])
}
