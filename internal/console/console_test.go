package console_test

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/autoprep/internal/console"
	"github.com/Tiliavir/autoprep/internal/model"
)

func TestTableData(t *testing.T) {
	data := console.TableData([]model.Row{{Member: "Alice", Hours: "01", Minutes: "30"}})
	assert.Equal(t, pterm.TableData{
		{"Member", "Hours", "Minutes"},
		{"Alice", "01", "30"},
	}, data)
}

func TestRenderTable(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	var buf bytes.Buffer
	c := console.New(&buf, true)
	require.NoError(t, c.RenderTable([]model.Row{
		{Member: "Alice", Hours: "01", Minutes: "30"},
		{Member: "Bob", Hours: "00", Minutes: "45"},
	}))

	out := buf.String()
	assert.Contains(t, out, "Member")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "45")
}

func TestQuietStatusIsNoop(t *testing.T) {
	c := console.New(&bytes.Buffer{}, true)
	s := c.Status("working")
	s.Update("still working")
	s.Success("done")
}
