package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/pnlink/internal/output"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

func TestFormatter_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)

	require.NoError(t, f.Print(map[string]string{"url": "https://dexscreener.com/solana/T?maker=W"}))

	// ampersands and angle brackets are not HTML-escaped
	assert.Contains(t, buf.String(), "?maker=W")

	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "https://dexscreener.com/solana/T?maker=W", result["url"])
}

func TestFormatter_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	require.NoError(t, f.Print("hello"))
	require.NoError(t, f.Printf("%s=%d\n", "n", 3))
	require.NoError(t, f.Println("bye"))
	assert.Equal(t, "hello\nn=3\nbye\n", buf.String())
	assert.False(t, f.IsJSON())
	assert.Equal(t, &buf, f.Writer())
}

func TestNewFormatter_AutoResolves(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatAuto, &buf)
	assert.Equal(t, output.FormatJSON, f.Format(), "buffers are not terminals")
	assert.True(t, f.IsJSON())
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, ""))
}

func TestIsTerminal_RegularFile(t *testing.T) {
	t.Parallel()
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.False(t, output.IsTerminal(f))
	assert.False(t, output.IsTerminal(nil))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want output.Format
	}{
		{"json", output.FormatJSON},
		{" JSON ", output.FormatJSON},
		{"text", output.FormatText},
		{"auto", output.FormatAuto},
		{"", output.FormatAuto},
		{"yaml", output.FormatAuto},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, output.ParseFormat(tc.in), tc.in)
	}

	_, err := output.ParseFormatStrict("yaml")
	require.ErrorIs(t, err, pnlerr.ErrInvalidFormat)
}

func TestTable(t *testing.T) {
	t.Parallel()
	tbl := output.NewTable("#", "TOKEN", "WALLET")
	tbl.AddRow("1", "So111", "9WzD")
	tbl.AddRow("10", "T")

	want := "" +
		"#   TOKEN  WALLET\n" +
		"--  -----  ------\n" +
		"1   So111  9WzD\n" +
		"10  T\n"
	assert.Equal(t, want, tbl.String())
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_Unicode(t *testing.T) {
	t.Parallel()
	tbl := output.NewTable("NICK", "ID")
	tbl.AddRow("ñandú", "1")
	tbl.AddRow("ab", "2")

	assert.Equal(t, "NICK   ID\n-----  --\nñandú  1\nab     2\n", tbl.String())
}

func TestTable_Separator(t *testing.T) {
	t.Parallel()
	tbl := output.NewTable("A", "B")
	tbl.SetSeparator(" | ")
	tbl.AddRow("x", "y")
	assert.Equal(t, "A | B\n- | -\nx | y\n", tbl.String())
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, output.NewTable().String())
}
