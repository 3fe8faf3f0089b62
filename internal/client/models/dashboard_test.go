package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardData_TipWrapsAround(t *testing.T) {
	d := DashboardData{CarouselTips: []string{"a", "b", "c"}}

	assert.Equal(t, "a", d.Tip(0))
	assert.Equal(t, "c", d.Tip(2))
	assert.Equal(t, "a", d.Tip(3))
	assert.Equal(t, "c", d.Tip(-1))
	assert.Empty(t, DashboardData{}.Tip(1))
}

func TestDashboardData_ProtectedPercent(t *testing.T) {
	assert.Equal(t, 92, DashboardData{ProtectedPercentage: 92.3}.ProtectedPercent())
	assert.Equal(t, 93, DashboardData{ProtectedPercentage: 92.5}.ProtectedPercent())
}

func TestRiskStatus_Normalize(t *testing.T) {
	assert.Equal(t, RiskDangerous, RiskDangerous.Normalize())
	assert.Equal(t, RiskSafe, RiskStatus("safe").Normalize())
	assert.Equal(t, RiskUnknown, RiskStatus("weird").Normalize())
	assert.Equal(t, RiskUnknown, RiskStatus("").Normalize())
}
