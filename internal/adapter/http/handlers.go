package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-planner/internal/usecase/projection"
)

// Handler serves the planner's HTTP API
type Handler struct {
	ProjectionService *projection.Service
	DashboardService  *dashboard.DashboardService
}

// NewHandler creates a new Handler instance
func NewHandler(projectionService *projection.Service, dashboardService *dashboard.DashboardService) *Handler {
	return &Handler{
		ProjectionService: projectionService,
		DashboardService:  dashboardService,
	}
}

// CreateSession handles POST /api/v1/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.ProjectionService.CreateSession(c.Request.Context(), projection.CreateSessionInput{
		Name:      req.Name,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(session))
}

// ListSessions handles GET /api/v1/sessions
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.ProjectionService.ListSessions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessionResponse(session))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// GetSummary handles GET /api/v1/sessions/:id
func (h *Handler) GetSummary(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	summary, err := h.DashboardService.GetSummary(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	session, err := h.ProjectionService.GetSession(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	out := SummaryResponse{
		SessionResponse: sessionResponse(session),
		Birthdate:       summary.Birthdate,
		Total:           summary.Total.StringFixed(2),
		Accounts:        make([]AccountSummaryResponse, 0, len(summary.Accounts)),
	}
	for _, a := range summary.Accounts {
		out.Accounts = append(out.Accounts, AccountSummaryResponse{
			Name:        a.Name,
			Balance:     a.Balance.StringFixed(2),
			CurrentDate: a.CurrentDate,
			Age:         a.Age,
			AnnualRate:  a.AnnualRate,
		})
	}
	c.JSON(http.StatusOK, out)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.ProjectionService.DeleteSession(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddAccount handles POST /api/v1/sessions/:id/accounts
func (h *Handler) AddAccount(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req AddAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	input := projection.AddAccountInput{
		Name:          req.Name,
		InitialAmount: req.InitialAmount,
		StartDate:     req.StartDate,
		AnnualRate:    req.AnnualRate,
	}
	for _, tier := range req.RateSchedule {
		input.RateSchedule = append(input.RateSchedule, domain.RateTier{From: tier.From, AnnualRate: tier.AnnualRate})
	}

	if err := h.ProjectionService.AddAccount(c.Request.Context(), id, input); err != nil {
		writeError(c, err)
		return
	}
	h.respondBalances(c, id, http.StatusCreated)
}

// RemoveAccount handles DELETE /api/v1/sessions/:id/accounts/:name
func (h *Handler) RemoveAccount(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.ProjectionService.RemoveAccount(c.Request.Context(), id, c.Param("name")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAccountHistory handles GET /api/v1/sessions/:id/accounts/:name/history
func (h *Handler) GetAccountHistory(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	history, err := h.ProjectionService.AccountHistory(c.Request.Context(), id, c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]SnapshotResponse, 0, len(history))
	for _, snap := range history {
		out = append(out, SnapshotResponse{Date: snap.Date, Amount: dashboard.Round(snap.Amount).StringFixed(2)})
	}
	c.JSON(http.StatusOK, gin.H{"account_name": c.Param("name"), "snapshots": out})
}

// GetYearlyBalances handles GET /api/v1/sessions/:id/accounts/:name/yearly
func (h *Handler) GetYearlyBalances(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	series, err := h.DashboardService.YearlyBalances(c.Request.Context(), id, c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]YearlyBalanceResponse, 0, len(series))
	for _, p := range series {
		out = append(out, YearlyBalanceResponse{Age: p.Age, Date: p.Date, Balance: p.Balance.StringFixed(2)})
	}
	c.JSON(http.StatusOK, gin.H{"account_name": c.Param("name"), "points": out})
}

// Deposit handles POST /api/v1/sessions/:id/accounts/:name/deposit
func (h *Handler) Deposit(c *gin.Context) {
	h.cashFlow(c, h.ProjectionService.Deposit)
}

// Withdraw handles POST /api/v1/sessions/:id/accounts/:name/withdraw
func (h *Handler) Withdraw(c *gin.Context) {
	h.cashFlow(c, h.ProjectionService.Withdraw)
}

// ListRules handles GET /api/v1/sessions/:id/rules
func (h *Handler) ListRules(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	rules, err := h.ProjectionService.Rules(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	out := RulesResponse{
		Contributions: make([]RuleResponse, 0, len(rules.Contributions)),
		Withdrawals:   make([]RuleResponse, 0, len(rules.Withdrawals)),
	}
	for i, r := range rules.Contributions {
		out.Contributions = append(out.Contributions, RuleResponse{
			Index:              i,
			AccountName:        r.AccountName,
			Amount:             dashboard.Round(r.Amount).StringFixed(2),
			StartAge:           r.StartAge,
			EndAge:             r.EndAge,
			AnnualIncreaseRate: r.AnnualIncreaseRate,
		})
	}
	for i, r := range rules.Withdrawals {
		out.Withdrawals = append(out.Withdrawals, RuleResponse{
			Index:       i,
			AccountName: r.AccountName,
			Amount:      dashboard.Round(r.Amount).StringFixed(2),
			StartAge:    r.StartAge,
			EndAge:      r.EndAge,
		})
	}
	c.JSON(http.StatusOK, out)
}

// AddContributionRule handles POST /api/v1/sessions/:id/rules/contributions
func (h *Handler) AddContributionRule(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	index, err := h.ProjectionService.AddContributionRule(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, IndexResponse{Index: index})
}

// UpdateContributionRule handles PUT /api/v1/sessions/:id/rules/contributions/:index
func (h *Handler) UpdateContributionRule(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, ok := ruleIndex(c)
	if !ok {
		return
	}
	var req ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.ProjectionService.UpdateContributionRule(c.Request.Context(), id, index, req.input()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IndexResponse{Index: index})
}

// RemoveContributionRule handles DELETE /api/v1/sessions/:id/rules/contributions/:index
func (h *Handler) RemoveContributionRule(c *gin.Context) {
	h.removeRule(c, projection.RuleKindContribution)
}

// AddWithdrawalRule handles POST /api/v1/sessions/:id/rules/withdrawals
func (h *Handler) AddWithdrawalRule(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	index, err := h.ProjectionService.AddWithdrawalRule(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, IndexResponse{Index: index})
}

// UpdateWithdrawalRule handles PUT /api/v1/sessions/:id/rules/withdrawals/:index
func (h *Handler) UpdateWithdrawalRule(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, ok := ruleIndex(c)
	if !ok {
		return
	}
	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.ProjectionService.UpdateWithdrawalRule(c.Request.Context(), id, index, req.input()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IndexResponse{Index: index})
}

// RemoveWithdrawalRule handles DELETE /api/v1/sessions/:id/rules/withdrawals/:index
func (h *Handler) RemoveWithdrawalRule(c *gin.Context) {
	h.removeRule(c, projection.RuleKindWithdrawal)
}

// AdvanceOneMonth handles POST /api/v1/sessions/:id/advance
func (h *Handler) AdvanceOneMonth(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.ProjectionService.AdvanceOneMonth(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.respondBalances(c, id, http.StatusOK)
}

// Project handles POST /api/v1/sessions/:id/project
func (h *Handler) Project(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var err error
	switch {
	case req.TargetDate != nil && req.TargetAge != nil:
		badRequest(c, errors.New("set target_date or target_age, not both"))
		return
	case req.TargetDate != nil:
		err = h.ProjectionService.ProjectToDate(c.Request.Context(), id, *req.TargetDate)
	case req.TargetAge != nil:
		err = h.ProjectionService.ProjectToAge(c.Request.Context(), id, *req.TargetAge)
	default:
		badRequest(c, errors.New("target_date or target_age is required"))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondBalances(c, id, http.StatusOK)
}

// GetBalances handles GET /api/v1/sessions/:id/balances
func (h *Handler) GetBalances(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	h.respondBalances(c, id, http.StatusOK)
}

func (h *Handler) cashFlow(c *gin.Context, apply func(context.Context, uuid.UUID, string, decimal.Decimal) error) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := apply(c.Request.Context(), id, c.Param("name"), req.Amount); err != nil {
		writeError(c, err)
		return
	}
	h.respondBalances(c, id, http.StatusOK)
}

func (h *Handler) removeRule(c *gin.Context, kind projection.RuleKind) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, ok := ruleIndex(c)
	if !ok {
		return
	}
	if err := h.ProjectionService.RemoveRule(c.Request.Context(), id, kind, index); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) respondBalances(c *gin.Context, id uuid.UUID, status int) {
	balances, err := h.ProjectionService.Balances(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	out := BalancesResponse{Balances: make([]BalanceResponse, 0, len(balances))}
	total := 0.0
	for _, b := range balances {
		total += b.Amount
		out.Balances = append(out.Balances, BalanceResponse{
			Name:   b.Name,
			Amount: dashboard.Round(b.Amount).StringFixed(2),
			Date:   b.Date,
		})
	}
	out.Total = dashboard.Round(total).StringFixed(2)
	c.JSON(status, out)
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abort(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid session id: "+err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func ruleIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abort(c, http.StatusBadRequest, "INVALID_INDEX", "rule index must be an integer")
		return 0, false
	}
	return index, true
}

func sessionResponse(session *domain.Session) SessionResponse {
	return SessionResponse{
		ID:        session.ID.String(),
		Name:      session.Name,
		CreatedAt: session.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (r ContributionRequest) input() projection.ContributionInput {
	return projection.ContributionInput{
		AccountName:        r.AccountName,
		Amount:             r.Amount,
		StartAge:           r.StartAge,
		EndAge:             r.EndAge,
		AnnualIncreaseRate: r.AnnualIncreaseRate,
	}
}

func (r WithdrawalRequest) input() projection.WithdrawalInput {
	return projection.WithdrawalInput{
		AccountName: r.AccountName,
		Amount:      r.Amount,
		StartAge:    r.StartAge,
		EndAge:      r.EndAge,
	}
}
