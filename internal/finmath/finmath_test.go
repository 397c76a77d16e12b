package finmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureValue(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     float64
		want      float64
		delta     float64
	}{
		{"zero rate returns principal", 100000, 0.0, 10, 100000, 0},
		{"zero years returns principal", 100000, 12.0, 0, 100000, 0},
		{"negative years returns principal", 100000, 12.0, -3, 100000, 0},
		{"ten percent doubles in about seven years", 100000, 10.0, 7.2725, 200000, 50},
		{"single year simple compounding", 50000, 8.0, 1, 54000, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FutureValue(tt.principal, tt.rate, tt.years)
			if tt.delta == 0 {
				assert.Equal(t, tt.want, got)
			} else {
				assert.InDelta(t, tt.want, got, tt.delta)
			}
		})
	}
}

func TestSIPFutureValue(t *testing.T) {
	t.Run("zero amount or years returns zero", func(t *testing.T) {
		assert.Zero(t, SIPFutureValue(0, 12.0, 10))
		assert.Zero(t, SIPFutureValue(5000, 12.0, 0))
	})

	t.Run("zero rate is plain accumulation", func(t *testing.T) {
		assert.Equal(t, 5000.0*120, SIPFutureValue(5000, 0, 10))
	})

	t.Run("exceeds total contributions at positive rate", func(t *testing.T) {
		fv := SIPFutureValue(10000, 12.0, 10)
		assert.Greater(t, fv, 10000.0*120)
		// 10k/month at 12% for 10 years is about 23.2 lakh (annuity due)
		assert.InDelta(t, 2_323_391, fv, 5000)
	})
}

func TestStepUpSIPFutureValue(t *testing.T) {
	t.Run("zero step-up equals level sip", func(t *testing.T) {
		level := SIPFutureValue(8000, 11.0, 15)
		stepped := StepUpSIPFutureValue(8000, 11.0, 0, 15)
		assert.InDelta(t, level, stepped, level*1e-9)
	})

	t.Run("positive step-up strictly dominates level sip", func(t *testing.T) {
		for _, years := range []int{1, 5, 10, 25} {
			level := SIPFutureValue(8000, 11.0, years)
			stepped := StepUpSIPFutureValue(8000, 11.0, 10.0, years)
			if years == 1 {
				// step-up kicks in from the second year
				assert.InDelta(t, level, stepped, level*1e-9)
				continue
			}
			assert.Greater(t, stepped, level, "years=%d", years)
		}
	})

	t.Run("zero inputs return zero", func(t *testing.T) {
		assert.Zero(t, StepUpSIPFutureValue(0, 12.0, 10.0, 10))
		assert.Zero(t, StepUpSIPFutureValue(5000, 12.0, 10.0, 0))
	})
}

func TestRequiredSIP(t *testing.T) {
	t.Run("zero years returns target", func(t *testing.T) {
		assert.Equal(t, 1_000_000.0, RequiredSIP(1_000_000, 12.0, 0))
	})

	t.Run("zero rate is target over months", func(t *testing.T) {
		assert.InDelta(t, 1_000_000.0/120, RequiredSIP(1_000_000, 0, 10), 1e-9)
	})

	t.Run("round-trips through the sip formula", func(t *testing.T) {
		target := 5_000_000.0
		monthly := RequiredSIP(target, 12.0, 15)
		require.Greater(t, monthly, 0.0)
		assert.InDelta(t, target, SIPFutureValue(monthly, 12.0, 15), 1.0)
	})
}

func TestInflationAdjusted(t *testing.T) {
	assert.Equal(t, 50000.0, InflationAdjusted(50000, 6.0, 0))
	// 50k of expenses today costs about 89.5k after ten years at 6%
	assert.InDelta(t, 89542, InflationAdjusted(50000, 6.0, 10), 10)
}

func TestCAGR(t *testing.T) {
	tests := []struct {
		name                    string
		begin, end, years, want float64
		delta                   float64
	}{
		{"tripling over a decade", 100000, 300000, 10, 11.6, 0.2},
		{"zero years is undefined", 100000, 300000, 0, 0, 0},
		{"zero base is undefined", 0, 300000, 10, 0, 0},
		{"flat value is zero growth", 100000, 100000, 5, 0, 1e-9},
		{"decline is negative", 100000, 50000, 10, -6.7, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CAGR(tt.begin, tt.end, tt.years)
			if tt.delta == 0 {
				assert.Equal(t, tt.want, got)
			} else {
				assert.InDelta(t, tt.want, got, tt.delta)
			}
		})
	}

	t.Run("inverts compounding", func(t *testing.T) {
		rate := CAGR(100000, 300000, 10)
		assert.InDelta(t, 300000, FutureValue(100000, rate, 10), 1.0)
	})
}

func TestAbsoluteReturns(t *testing.T) {
	assert.Equal(t, -20.0, AbsoluteReturns(100000, 80000))
	assert.Equal(t, 50.0, AbsoluteReturns(100000, 150000))
	assert.Zero(t, AbsoluteReturns(0, 150000))
}

func TestEMI(t *testing.T) {
	t.Run("home loan benchmark", func(t *testing.T) {
		// 50 lakh at 8.5% over 20 years
		assert.InDelta(t, 43391, EMI(5_000_000, 8.5, 240), 100)
	})

	t.Run("zero rate divides principal evenly", func(t *testing.T) {
		assert.Equal(t, 5000.0, EMI(600_000, 0, 120))
	})

	t.Run("zero tenure returns principal", func(t *testing.T) {
		assert.Equal(t, 600_000.0, EMI(600_000, 8.5, 0))
	})
}

func TestPPFMaturity(t *testing.T) {
	t.Run("zero years returns current balance", func(t *testing.T) {
		assert.Equal(t, 250000.0, PPFMaturity(250000, 150000, 7.1, 0))
	})

	t.Run("contribution credited before compounding", func(t *testing.T) {
		assert.InDelta(t, 160650, PPFMaturity(0, 150000, 7.1, 1), 0.01)
	})

	t.Run("multi-year growth", func(t *testing.T) {
		// two years: ((0+150000)*1.071 + 150000)*1.071
		assert.InDelta(t, 332706.15, PPFMaturity(0, 150000, 7.1, 2), 0.01)
	})
}
