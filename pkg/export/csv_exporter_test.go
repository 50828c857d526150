package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVPadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Table{
		Headers: []string{"student_id", "status", "amount_due"},
		Rows: [][]string{
			{"S1", "ENROLLED", "300000"},
			{"S2", "WITHDRAWN"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "student_id,status,amount_due\nS1,ENROLLED,300000\nS2,WITHDRAWN,\n", buf.String())
}

func TestWriteCSVRejectsInvalidTables(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCSV(&buf, Table{}))
	assert.Error(t, WriteCSV(&buf, Table{Headers: []string{"a"}, Rows: [][]string{{"1", "2"}}}))
}
