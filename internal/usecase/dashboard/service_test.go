package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/adapter/repository/memory"
	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

func setup(t *testing.T) (*DashboardService, *domain.Session) {
	t.Helper()
	repo := memory.NewSessionRepository()

	p := domain.NewPortfolio(date.MustParse("1990-01-01"))
	flat, err := domain.NewFixedRate(0)
	require.NoError(t, err)
	growing, err := domain.NewFixedRate(0.05)
	require.NoError(t, err)
	require.NoError(t, p.AddAccount("savings", 1000, date.MustParse("2020-01-01"), flat))
	require.NoError(t, p.AddAccount("stocks", 0.125, date.MustParse("2020-01-01"), growing))

	rule, err := domain.NewContributionRule("savings", 100, 30, 40, 0)
	require.NoError(t, err)
	require.NoError(t, p.AddContributionRule(rule))
	require.NoError(t, p.ProjectToAge(32))

	session := domain.NewSession("plan", p)
	require.NoError(t, repo.Create(context.Background(), session))
	return NewDashboardService(repo), session
}

func TestGetSummary(t *testing.T) {
	service, session := setup(t)

	summary, err := service.GetSummary(context.Background(), session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, summary.SessionID)
	assert.Equal(t, "plan", summary.Name)
	assert.Equal(t, date.MustParse("1990-01-01"), summary.Birthdate)
	require.Len(t, summary.Accounts, 2)

	savings := summary.Accounts[0]
	assert.Equal(t, "savings", savings.Name)
	assert.True(t, savings.Balance.Equal(Round(3400)), "got %s", savings.Balance)
	assert.Equal(t, date.MustParse("2022-01-01"), savings.CurrentDate)
	assert.Equal(t, 32, savings.Age)
	assert.Equal(t, 0.0, savings.AnnualRate)

	stocks := summary.Accounts[1]
	assert.Equal(t, "stocks", stocks.Name)
	assert.Equal(t, 0.05, stocks.AnnualRate)
	assert.Equal(t, int32(2), -stocks.Balance.Exponent(), "display amounts carry cents")
}

func TestGetSummary_UnknownSession(t *testing.T) {
	service, _ := setup(t)

	_, err := service.GetSummary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestYearlyBalances(t *testing.T) {
	service, session := setup(t)

	series, err := service.YearlyBalances(context.Background(), session.ID, "savings")
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, 30, series[0].Age)
	assert.Equal(t, date.MustParse("2020-01-01"), series[0].Date)
	assert.True(t, series[0].Balance.Equal(Round(1000)))

	// the birthday point is the opening balance, before that month's contribution
	assert.Equal(t, 31, series[1].Age)
	assert.Equal(t, date.MustParse("2021-01-01"), series[1].Date)
	assert.True(t, series[1].Balance.Equal(Round(2200)), "got %s", series[1].Balance)

	assert.Equal(t, 32, series[2].Age)
	assert.True(t, series[2].Balance.Equal(Round(3400)), "got %s", series[2].Balance)
}

func TestYearlyBalances_UnknownAccount(t *testing.T) {
	service, session := setup(t)

	_, err := service.YearlyBalances(context.Background(), session.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownAccount)
}

func TestRound(t *testing.T) {
	assert.Equal(t, "10.13", Round(10.125000001).String())
	assert.Equal(t, "0", Round(0).String())
}
