package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanu/foodlink/pkg/application/dto"
	"github.com/chetanu/foodlink/pkg/application/services"
	"github.com/chetanu/foodlink/pkg/domain/entities"
)

func sampleResult() *dto.Result {
	return dto.NewResult("claim_status_counts", []string{"Status", "Count"}, [][]any{
		{"Completed", 3},
		{"Pending", 2},
		{"Cancelled", 1},
	})
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), "text"))

	out := buf.String()
	assert.Contains(t, out, "claim_status_counts")
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "3")
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), "csv"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Status", "Count"}, records[0])
	assert.Equal(t, []string{"Completed", "3"}, records[1])
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), "json"))

	var decoded dto.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "claim_status_counts", decoded.Query)
	assert.Equal(t, 3, decoded.RowCount)
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleResult(), "xml")
	assert.Error(t, err)
}

func TestRenderFloatFormatting(t *testing.T) {
	result := dto.NewResult("top_receivers_by_avg_quantity", []string{"Name", "Avg_Quantity"}, [][]any{
		{"Hope Shelter", 65.0 / 3.0},
	})
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, result, "csv"))
	assert.Contains(t, buf.String(), "21.67")
}

func TestRenderAllReportsFailuresInline(t *testing.T) {
	outcomes := map[string]services.Outcome{
		"table_counts":  {Result: sampleResult()},
		"broken_report": {Err: assert.AnError},
	}

	var buf bytes.Buffer
	err := RenderAll(&buf, []string{"table_counts", "broken_report"}, outcomes, "text")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "claim_status_counts")
	assert.Contains(t, out, "broken_report")
	assert.Contains(t, out, assert.AnError.Error())
}

func TestRenderSummary(t *testing.T) {
	summary := &dto.LoadSummary{Kind: entities.KindProvider, Accepted: 3}
	summary.Reject(2, &entities.ValidationError{Field: "Type", Reason: "unknown provider type"})

	var buf bytes.Buffer
	RenderSummary(&buf, summary)

	out := buf.String()
	assert.Contains(t, out, "providers: 3 accepted, 1 rejected")
	assert.Contains(t, out, "row 2")
	assert.Contains(t, out, "unknown provider type")
}

func TestListQueriesSorted(t *testing.T) {
	runner := services.NewRunner(brokenStore{}, services.NewCatalog())

	var buf bytes.Buffer
	ListQueries(&buf, runner)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 22)
	assert.Contains(t, lines[0], "claim_status_counts")
}

// brokenStore satisfies ReadStore; ListQueries never touches the data
type brokenStore struct{}

func (brokenStore) Providers() ([]*entities.Provider, error)       { return nil, nil }
func (brokenStore) Receivers() ([]*entities.Receiver, error)       { return nil, nil }
func (brokenStore) FoodListings() ([]*entities.FoodListing, error) { return nil, nil }
func (brokenStore) Claims() ([]*entities.Claim, error)             { return nil, nil }
