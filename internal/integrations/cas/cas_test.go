package cas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niveshak/finplan/internal/models"
)

const sampleStatement = `<?xml version="1.0" encoding="utf-8"?>
<statement>
  <holding>
    <name>HDFC Liquid Fund</name>
    <type>MUTUAL_FUND</type>
    <invested>100000</invested>
    <value>112500.50</value>
    <emergencyFund>false</emergencyFund>
  </holding>
  <holding>
    <name>SBI Fixed Deposit</name>
    <type>fd</type>
    <invested>200000</invested>
    <value>220000</value>
    <emergencyFund>true</emergencyFund>
  </holding>
</statement>`

func TestParseStatement(t *testing.T) {
	investments, err := ParseStatement([]byte(sampleStatement))
	require.NoError(t, err)
	require.Len(t, investments, 2)

	assert.Equal(t, "HDFC Liquid Fund", investments[0].Name)
	assert.Equal(t, models.TypeMutualFund, investments[0].Type)
	assert.Equal(t, 112500.50, investments[0].CurrentValue)
	assert.False(t, investments[0].IsEmergencyFund)

	// type casing is normalized
	assert.Equal(t, models.TypeFD, investments[1].Type)
	assert.True(t, investments[1].IsEmergencyFund)
	assert.Equal(t, 220000.0, investments[1].CurrentValue)
}

func TestParseStatement_UnknownType(t *testing.T) {
	raw := `<statement><holding><name>x</name><type>BONDS</type><invested>1</invested><value>1</value></holding></statement>`
	_, err := ParseStatement([]byte(raw))
	assert.ErrorContains(t, err, "unknown holding type")
}

func TestParseStatement_Empty(t *testing.T) {
	_, err := ParseStatement([]byte(`<statement></statement>`))
	assert.ErrorContains(t, err, "no holdings")
}

func TestParseStatement_MissingValue(t *testing.T) {
	raw := `<statement><holding><name>x</name><type>FD</type><invested>1</invested></holding></statement>`
	_, err := ParseStatement([]byte(raw))
	assert.ErrorContains(t, err, `missing element "value"`)
}
