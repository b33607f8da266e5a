package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskSignals(t *testing.T) {
	t.Parallel()
	got := RiskSignals("Joining requires a BOND of 2 years and rotational shifts.")
	assert.Equal(t, []string{"bond", "rotational shifts"}, got)
}

func TestRiskSignals_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RiskSignals("We are hiring a software engineer to build internal tools."))
}

func TestRiskSignals_Deduplicates(t *testing.T) {
	t.Parallel()
	got := RiskSignals("bond bond BOND service agreement")
	assert.Equal(t, []string{"bond", "service agreement"}, got)
}

func TestCompensation(t *testing.T) {
	t.Parallel()
	ctc, ok := Compensation("Compensation: 12 LPA plus benefits")
	require.True(t, ok)
	assert.Equal(t, "12 lpa", ctc)

	ctc, ok = Compensation("Package of 4.5 lakhs per annum")
	require.True(t, ok)
	assert.Equal(t, "4.5 lakhs", ctc)

	_, ok = Compensation("Competitive salary for the right candidate")
	assert.False(t, ok)
}

func TestExperienceRequirement(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"TCS is hiring freshers, 0-1 years experience", "0-1 Years (Fresher-friendly)"},
		{"Looking for 1-2 years of backend exposure", "1-2 Years (Early career)"},
		{"3-5 years with Go and Kubernetes", "2-5 Years (Mid-level)"},
		{"Senior Software Engineer, 5-8 years", "5-8 Years (Senior)"},
		{"Senior Software Engineer, 8-10 years", "8+ Years (Lead/Principal)"},
		{"Principal engineer, 10+ years", "8+ Years (Lead/Principal)"},
		{"We are hiring a software engineer.", "Not explicitly specified"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExperienceRequirement(c.in), "input %q", c.in)
	}
}
