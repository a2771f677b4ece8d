package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, true, "Member", "Type")
	tbl.AddRow("Id", "int")
	tbl.AddRow("Title", "string")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Member")
	assert.Contains(t, lines[0], "Type")
	assert.Contains(t, lines[2], "Id")
	assert.Contains(t, lines[3], "Title")

	// Columns align on the widest cell.
	assert.Equal(t, strings.Index(lines[0], "Type"), strings.Index(lines[3], "string"))
}

func TestTableShortRow(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, true, "Member", "Type")
	tbl.AddRow("Id")
	tbl.Render()

	assert.Contains(t, buf.String(), "Id")
}
