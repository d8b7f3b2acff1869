package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Example(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "examples", "retirement.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "retirement", s.Name)
	assert.Equal(t, date.MustParse("1990-01-01"), s.Birthdate)
	assert.Equal(t, "EUR", s.Currency)
	require.Len(t, s.Accounts, 2)
	require.NotNil(t, s.Target.Age)
	assert.Equal(t, 90, *s.Target.Age)

	pension, err := s.Accounts[0].Strategy()
	require.NoError(t, err)
	assert.Equal(t, 0.04, pension.AnnualRateAt(date.MustParse("2050-01-01")))

	brokerage, err := s.Accounts[1].Strategy()
	require.NoError(t, err)
	assert.Equal(t, 0.03, brokerage.AnnualRateAt(date.MustParse("2050-01-01")))

	rule, err := s.Contributions[0].Rule()
	require.NoError(t, err)
	assert.Equal(t, 0.02, rule.AnnualIncreaseRate)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeScenario(t, `
birthdate: 1990-01-01
accounts:
  - name: pension
    initial_amount: 100
    start_date: 2023-01-01
    annual_rate: 0
target:
  date: 2030-01-01
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, s.Currency)
	assert.Equal(t, "scenario", s.Name)
	assert.Equal(t, date.MustParse("2030-01-01"), s.Target.Date)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "missing birthdate",
			body:   "accounts: []\ntarget: {age: 60}\n",
			errMsg: "birthdate is required",
		},
		{
			name:   "no accounts",
			body:   "birthdate: 1990-01-01\ntarget: {age: 60}\n",
			errMsg: "at least one account",
		},
		{
			name: "both rate kinds",
			body: `
birthdate: 1990-01-01
accounts:
  - {name: a, start_date: 2023-01-01, annual_rate: 0.01, rate_schedule: [{from: 2023-01-01, annual_rate: 0.02}]}
target: {age: 60}
`,
			errMsg: "exactly one of annual_rate or rate_schedule",
		},
		{
			name: "no target",
			body: `
birthdate: 1990-01-01
accounts:
  - {name: a, start_date: 2023-01-01, annual_rate: 0.01}
`,
			errMsg: "exactly one of age or date",
		},
		{
			name: "negative target age",
			body: `
birthdate: 1990-01-01
accounts:
  - {name: a, start_date: 2023-01-01, annual_rate: 0.01}
target: {age: -1}
`,
			errMsg: "target: age -1 not in [0, 200]",
		},
		{
			name: "target age too large",
			body: `
birthdate: 1990-01-01
accounts:
  - {name: a, start_date: 2023-01-01, annual_rate: 0.01}
target: {age: 4611686018427387904}
`,
			errMsg: "not in [0, 200]",
		},
		{
			name:   "unknown key",
			body:   "birthdate: 1990-01-01\nbirthday: 1990-01-01\n",
			errMsg: "birthday",
		},
		{
			name:   "bad date",
			body:   "birthdate: 01/01/1990\n",
			errMsg: "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeScenario(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_TargetAgeZero(t *testing.T) {
	path := writeScenario(t, `
birthdate: 1990-01-01
accounts:
  - {name: a, start_date: 2023-01-01, annual_rate: 0.01}
target: {age: 0}
`)

	s, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, s.Target.Age)
	assert.Equal(t, 0, *s.Target.Age)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAccountConfig_StrategyErrors(t *testing.T) {
	bad := -1.0
	_, err := AccountConfig{Name: "a", AnnualRate: &bad}.Strategy()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestServerFromEnv(t *testing.T) {
	t.Setenv("GRPC_ADDR", "")
	t.Setenv("API_TOKEN", "")
	t.Setenv("API_ENV", "")
	t.Setenv("MAX_PROJECTION_MONTHS", "")
	t.Setenv("SCENARIO_FILE", "plan.yaml")

	s, err := ServerFromEnv()
	require.NoError(t, err)
	assert.Equal(t, defaultGRPCAddr, s.GRPCAddr)
	assert.Equal(t, defaultAPIToken, s.APIToken)
	assert.Equal(t, defaultMaxProjectionMonths, s.MaxProjectionMonths)
	assert.False(t, s.Production)
	assert.Equal(t, "plan.yaml", s.ScenarioFile)

	t.Setenv("HTTP_ADDR", "")
	t.Setenv("API_ENV", "production")
	t.Setenv("MAX_PROJECTION_MONTHS", "240")
	s, err = ServerFromEnv()
	require.NoError(t, err)
	assert.Empty(t, s.HTTPAddr)
	assert.True(t, s.Production)
	assert.Equal(t, 240, s.MaxProjectionMonths)

	t.Setenv("MAX_PROJECTION_MONTHS", "lots")
	_, err = ServerFromEnv()
	assert.Error(t, err)
}
