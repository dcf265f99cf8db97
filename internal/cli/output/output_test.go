package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "table", input: "table", want: FormatTable},
		{name: "empty defaults to table", input: "", want: FormatTable},
		{name: "json", input: "json", want: FormatJSON},
		{name: "JSON uppercase", input: "JSON", want: FormatJSON},
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "whitespace trimmed", input: "  table  ", want: FormatTable},
		{name: "invalid format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinterMessages(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, false)

	printer.Println("plain line")
	printer.Success("created")
	printer.Error("failed")
	printer.Warning("careful")

	out := buf.String()
	assert.Contains(t, out, "plain line")
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "careful")
	assert.NotContains(t, out, "\033[", "color disabled should emit no escape codes")
}

func TestPrinterColorCodes(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, true)
	printer.Success("ok")
	assert.Contains(t, buf.String(), "\033[32m")
}

func TestPrinterPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatJSON, false)

	require.NoError(t, printer.Print(map[string]int{"count": 3}))
	assert.Contains(t, buf.String(), `"count": 3`)
}

func TestPrinterPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatYAML, false)

	require.NoError(t, printer.Print(map[string]string{"status": "dispatched"}))
	assert.Contains(t, buf.String(), "status: dispatched")
}

func TestPrinterTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, false)

	require.NoError(t, printer.Print(map[string]string{"key": "value"}))
	assert.Contains(t, buf.String(), `"key": "value"`)
}

func TestPrintTable(t *testing.T) {
	table := NewTableData("Call Sign", "Status")
	table.AddRow("ENGINE-7", "available")
	table.AddRow("MEDIC-3", "dispatched")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table))

	out := buf.String()
	assert.Contains(t, out, "CALL SIGN")
	assert.Contains(t, out, "ENGINE-7")
	assert.Contains(t, out, "dispatched")
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, [][2]string{
		{"Reference", "SIR-20260831-0001"},
		{"Status", "reported"},
	}))

	out := buf.String()
	assert.Contains(t, out, "Reference")
	assert.Contains(t, out, "SIR-20260831-0001")
}
