package finmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmortizationSchedule(t *testing.T) {
	t.Run("balance strictly decreases and principal sums to outstanding", func(t *testing.T) {
		outstanding := 1_200_000.0
		emi := EMI(outstanding, 9.0, 60)
		schedule, err := AmortizationSchedule(outstanding, 9.0, emi, 60)
		require.NoError(t, err)
		require.Len(t, schedule, 60)

		prev := outstanding
		totalPrincipal := 0.0
		prevInterest := schedule[0].Interest
		for _, entry := range schedule {
			assert.Less(t, entry.Balance, prev, "month %d", entry.Month)
			assert.LessOrEqual(t, entry.Interest, prevInterest, "month %d", entry.Month)
			prev = entry.Balance
			prevInterest = entry.Interest
			totalPrincipal += entry.PrincipalPaid
		}
		assert.InDelta(t, outstanding, totalPrincipal, 0.01)
		assert.InDelta(t, 0, schedule[len(schedule)-1].Balance, 0.01)
	})

	t.Run("stops early when balance reaches zero", func(t *testing.T) {
		// EMI sized for 12 months but 60 months allowed
		emi := EMI(100_000, 10.0, 12)
		schedule, err := AmortizationSchedule(100_000, 10.0, emi, 60)
		require.NoError(t, err)
		assert.Len(t, schedule, 12)
	})

	t.Run("final month clamps principal to remaining balance", func(t *testing.T) {
		schedule, err := AmortizationSchedule(10_000, 0, 3000, 12)
		require.NoError(t, err)
		require.Len(t, schedule, 4)
		assert.Equal(t, 1000.0, schedule[3].PrincipalPaid)
		assert.Zero(t, schedule[3].Balance)
	})

	t.Run("negative amortization terminates with a signal", func(t *testing.T) {
		// interest on 1M at 12% is 10k/month, emi below that never amortizes
		schedule, err := AmortizationSchedule(1_000_000, 12.0, 5000, 240)
		assert.ErrorIs(t, err, ErrNegativeAmortization)
		assert.Empty(t, schedule)
	})

	t.Run("rejects out-of-domain values", func(t *testing.T) {
		_, err := AmortizationSchedule(-1, 9.0, 1000, 12)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero remaining months yields empty schedule", func(t *testing.T) {
		schedule, err := AmortizationSchedule(100_000, 9.0, 5000, 0)
		require.NoError(t, err)
		assert.Empty(t, schedule)
	})
}
