package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	sheet := MarkSheet{
		Headers: []string{"SL", "Name", "Total"},
		Rows: [][]string{
			{"1", "Ahmed Rahman", "560"},
			{"2", "Fatima, Khan", "610"},
		},
	}

	data, err := NewCSVExporter().Render(sheet)
	require.NoError(t, err)
	assert.Equal(t, "SL,Name,Total\n1,Ahmed Rahman,560\n2,\"Fatima, Khan\",610\n", string(data))
}

func TestCSVRenderPadsShortRows(t *testing.T) {
	sheet := MarkSheet{
		Headers: []string{"SL", "Name", "Total"},
		Rows:    [][]string{{"1", "Ahmed Rahman"}},
	}

	data, err := NewCSVExporter().Render(sheet)
	require.NoError(t, err)
	assert.Equal(t, "SL,Name,Total\n1,Ahmed Rahman,\n", string(data))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(MarkSheet{})
	require.Error(t, err)
}
