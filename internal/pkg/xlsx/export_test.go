package xlsx

import (
	"bytes"
	"testing"

	"github.com/punchdeck/attendance-backend-go/internal/domain/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []summary.Row {
	return []summary.Row{
		{
			UserID: "1", Name: "Ishmal", Date: "2024-01-02",
			CheckIn: "09:05:00", CheckOut: "17:10:00",
			Status: summary.StatusLate, MinutesLate: 3,
			EarlyCheckout: summary.EarlyNo,
		},
		{
			UserID: "2", Name: "Owais", Date: "2024-01-02",
			CheckIn: "08:55:00", CheckOut: "16:45:00",
			Status:        summary.StatusOnTime,
			EarlyCheckout: summary.EarlyYes, MinutesEarly: 15,
		},
	}
}

func TestWriteDetail_RoundTrip(t *testing.T) {
	t.Parallel()
	data, err := WriteDetail(sampleRows())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	header, rows, err := ReadDetail(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, summary.DetailHeader, header)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ishmal", rows[0][1])
	assert.Equal(t, "Late", rows[0][5])
	assert.Equal(t, "3", rows[0][6])
	assert.Equal(t, "Yes", rows[1][7])
}

func TestWriteDetail_EmptyTable(t *testing.T) {
	t.Parallel()
	data, err := WriteDetail(nil)
	require.NoError(t, err)

	header, rows, err := ReadDetail(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, summary.DetailHeader, header)
	assert.Empty(t, rows)
}
