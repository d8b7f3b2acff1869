package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-planner/internal/usecase/projection"
)

// Server implements the PlannerService gRPC server
type Server struct {
	ProjectionService *projection.Service
	DashboardService  *dashboard.DashboardService
}

var _ PlannerServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(projectionService *projection.Service, dashboardService *dashboard.DashboardService) *Server {
	return &Server{
		ProjectionService: projectionService,
		DashboardService:  dashboardService,
	}
}

// CreateSession handles the CreateSession RPC
func (s *Server) CreateSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	name, err := f.optionalStr("name")
	if err != nil {
		return nil, err
	}
	birthdate, err := f.date("birthdate")
	if err != nil {
		return nil, err
	}

	session, err := s.ProjectionService.CreateSession(ctx, projection.CreateSessionInput{Name: name, Birthdate: birthdate})
	if err != nil {
		return nil, mapError(err)
	}

	out := sessionToMap(session)
	out["birthdate"] = birthdate.String()
	return respond(out)
}

// ListSessions handles the ListSessions RPC
func (s *Server) ListSessions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessions, err := s.ProjectionService.ListSessions(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	list := make([]interface{}, 0, len(sessions))
	for _, session := range sessions {
		list = append(list, sessionToMap(session))
	}
	return respond(map[string]interface{}{"sessions": list})
}

// DeleteSession handles the DeleteSession RPC
func (s *Server) DeleteSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := fieldsOf(req).uuid("session_id")
	if err != nil {
		return nil, err
	}
	if err := s.ProjectionService.DeleteSession(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return respond(nil)
}

// GetSummary handles the GetSummary RPC
func (s *Server) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := fieldsOf(req).uuid("session_id")
	if err != nil {
		return nil, err
	}

	summary, err := s.DashboardService.GetSummary(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	accounts := make([]interface{}, 0, len(summary.Accounts))
	for _, a := range summary.Accounts {
		accounts = append(accounts, map[string]interface{}{
			"name":         a.Name,
			"balance":      a.Balance.StringFixed(2),
			"current_date": a.CurrentDate.String(),
			"age":          a.Age,
			"annual_rate":  a.AnnualRate,
		})
	}
	return respond(map[string]interface{}{
		"session_id": summary.SessionID.String(),
		"name":       summary.Name,
		"birthdate":  summary.Birthdate.String(),
		"total":      summary.Total.StringFixed(2),
		"accounts":   accounts,
	})
}

// AddAccount handles the AddAccount RPC
func (s *Server) AddAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}

	var input projection.AddAccountInput
	if input.Name, err = f.str("name"); err != nil {
		return nil, err
	}
	if input.InitialAmount, err = f.amount("initial_amount"); err != nil {
		return nil, err
	}
	if input.StartDate, err = f.date("start_date"); err != nil {
		return nil, err
	}
	if f.has("annual_rate") {
		rate, err := f.number("annual_rate")
		if err != nil {
			return nil, err
		}
		input.AnnualRate = &rate
	}
	if input.RateSchedule, err = f.rateSchedule("rate_schedule"); err != nil {
		return nil, err
	}

	if err := s.ProjectionService.AddAccount(ctx, id, input); err != nil {
		return nil, mapError(err)
	}
	return respond(nil)
}

// RemoveAccount handles the RemoveAccount RPC
func (s *Server) RemoveAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	name, err := f.str("name")
	if err != nil {
		return nil, err
	}
	if err := s.ProjectionService.RemoveAccount(ctx, id, name); err != nil {
		return nil, mapError(err)
	}
	return respond(nil)
}

// AddContributionRule handles the AddContributionRule RPC
func (s *Server) AddContributionRule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	input, err := contributionInput(f)
	if err != nil {
		return nil, err
	}

	index, err := s.ProjectionService.AddContributionRule(ctx, id, input)
	if err != nil {
		return nil, mapError(err)
	}
	return respond(map[string]interface{}{"index": index})
}

// AddWithdrawalRule handles the AddWithdrawalRule RPC
func (s *Server) AddWithdrawalRule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	input, err := withdrawalInput(f)
	if err != nil {
		return nil, err
	}

	index, err := s.ProjectionService.AddWithdrawalRule(ctx, id, input)
	if err != nil {
		return nil, mapError(err)
	}
	return respond(map[string]interface{}{"index": index})
}

// UpdateContributionRule handles the UpdateContributionRule RPC
func (s *Server) UpdateContributionRule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	index, err := f.integer("index")
	if err != nil {
		return nil, err
	}
	input, err := contributionInput(f)
	if err != nil {
		return nil, err
	}

	if err := s.ProjectionService.UpdateContributionRule(ctx, id, index, input); err != nil {
		return nil, mapError(err)
	}
	return respond(nil)
}

// UpdateWithdrawalRule handles the UpdateWithdrawalRule RPC
func (s *Server) UpdateWithdrawalRule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	index, err := f.integer("index")
	if err != nil {
		return nil, err
	}
	input, err := withdrawalInput(f)
	if err != nil {
		return nil, err
	}

	if err := s.ProjectionService.UpdateWithdrawalRule(ctx, id, index, input); err != nil {
		return nil, mapError(err)
	}
	return respond(nil)
}

// RemoveRule handles the RemoveRule RPC
func (s *Server) RemoveRule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	kind, err := f.str("kind")
	if err != nil {
		return nil, err
	}
	index, err := f.integer("index")
	if err != nil {
		return nil, err
	}

	if err := s.ProjectionService.RemoveRule(ctx, id, projection.RuleKind(kind), index); err != nil {
		return nil, mapError(err)
	}
	return respond(nil)
}

// ListRules handles the ListRules RPC
func (s *Server) ListRules(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := fieldsOf(req).uuid("session_id")
	if err != nil {
		return nil, err
	}

	rules, err := s.ProjectionService.Rules(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	contributions := make([]interface{}, 0, len(rules.Contributions))
	for i, r := range rules.Contributions {
		contributions = append(contributions, map[string]interface{}{
			"index":                i,
			"account_name":         r.AccountName,
			"amount":               dashboard.Round(r.Amount).StringFixed(2),
			"start_age":            r.StartAge,
			"end_age":              r.EndAge,
			"annual_increase_rate": r.AnnualIncreaseRate,
		})
	}
	withdrawals := make([]interface{}, 0, len(rules.Withdrawals))
	for i, r := range rules.Withdrawals {
		withdrawals = append(withdrawals, map[string]interface{}{
			"index":        i,
			"account_name": r.AccountName,
			"amount":       dashboard.Round(r.Amount).StringFixed(2),
			"start_age":    r.StartAge,
			"end_age":      r.EndAge,
		})
	}
	return respond(map[string]interface{}{
		"contributions": contributions,
		"withdrawals":   withdrawals,
	})
}

// Deposit handles the Deposit RPC
func (s *Server) Deposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.cashFlow(ctx, req, s.ProjectionService.Deposit)
}

// Withdraw handles the Withdraw RPC
func (s *Server) Withdraw(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.cashFlow(ctx, req, s.ProjectionService.Withdraw)
}

// AdvanceOneMonth handles the AdvanceOneMonth RPC
func (s *Server) AdvanceOneMonth(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := fieldsOf(req).uuid("session_id")
	if err != nil {
		return nil, err
	}
	if err := s.ProjectionService.AdvanceOneMonth(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return s.balances(ctx, id)
}

// ProjectToDate handles the ProjectToDate RPC
func (s *Server) ProjectToDate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	target, err := f.date("target_date")
	if err != nil {
		return nil, err
	}
	if err := s.ProjectionService.ProjectToDate(ctx, id, target); err != nil {
		return nil, mapError(err)
	}
	return s.balances(ctx, id)
}

// ProjectToAge handles the ProjectToAge RPC
func (s *Server) ProjectToAge(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	age, err := f.integer("target_age")
	if err != nil {
		return nil, err
	}
	if err := s.ProjectionService.ProjectToAge(ctx, id, age); err != nil {
		return nil, mapError(err)
	}
	return s.balances(ctx, id)
}

// GetBalances handles the GetBalances RPC
func (s *Server) GetBalances(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := fieldsOf(req).uuid("session_id")
	if err != nil {
		return nil, err
	}
	return s.balances(ctx, id)
}

// GetAccountHistory handles the GetAccountHistory RPC
func (s *Server) GetAccountHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	name, err := f.str("account_name")
	if err != nil {
		return nil, err
	}

	history, err := s.ProjectionService.AccountHistory(ctx, id, name)
	if err != nil {
		return nil, mapError(err)
	}

	snapshots := make([]interface{}, 0, len(history))
	for _, snap := range history {
		snapshots = append(snapshots, map[string]interface{}{
			"date":   snap.Date.String(),
			"amount": dashboard.Round(snap.Amount).StringFixed(2),
		})
	}
	return respond(map[string]interface{}{"account_name": name, "snapshots": snapshots})
}

// GetYearlyBalances handles the GetYearlyBalances RPC
func (s *Server) GetYearlyBalances(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	name, err := f.str("account_name")
	if err != nil {
		return nil, err
	}

	series, err := s.DashboardService.YearlyBalances(ctx, id, name)
	if err != nil {
		return nil, mapError(err)
	}

	points := make([]interface{}, 0, len(series))
	for _, p := range series {
		points = append(points, map[string]interface{}{
			"age":     p.Age,
			"date":    p.Date.String(),
			"balance": p.Balance.StringFixed(2),
		})
	}
	return respond(map[string]interface{}{"account_name": name, "points": points})
}

func (s *Server) cashFlow(ctx context.Context, req *structpb.Struct, apply func(context.Context, uuid.UUID, string, decimal.Decimal) error) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.uuid("session_id")
	if err != nil {
		return nil, err
	}
	name, err := f.str("account_name")
	if err != nil {
		return nil, err
	}
	amount, err := f.amount("amount")
	if err != nil {
		return nil, err
	}
	if err := apply(ctx, id, name, amount); err != nil {
		return nil, mapError(err)
	}
	return s.balances(ctx, id)
}

func (s *Server) balances(ctx context.Context, id uuid.UUID) (*structpb.Struct, error) {
	balances, err := s.ProjectionService.Balances(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	list := make([]interface{}, 0, len(balances))
	total := 0.0
	for _, b := range balances {
		total += b.Amount
		list = append(list, map[string]interface{}{
			"name":   b.Name,
			"amount": dashboard.Round(b.Amount).StringFixed(2),
			"date":   b.Date.String(),
		})
	}
	return respond(map[string]interface{}{
		"balances": list,
		"total":    dashboard.Round(total).StringFixed(2),
	})
}

func contributionInput(f fields) (projection.ContributionInput, error) {
	var (
		input projection.ContributionInput
		err   error
	)
	if input.AccountName, err = f.str("account_name"); err != nil {
		return input, err
	}
	if input.Amount, err = f.amount("amount"); err != nil {
		return input, err
	}
	if input.StartAge, err = f.integer("start_age"); err != nil {
		return input, err
	}
	if input.EndAge, err = f.integer("end_age"); err != nil {
		return input, err
	}
	if input.AnnualIncreaseRate, err = f.optionalNumber("annual_increase_rate"); err != nil {
		return input, err
	}
	return input, nil
}

func withdrawalInput(f fields) (projection.WithdrawalInput, error) {
	var (
		input projection.WithdrawalInput
		err   error
	)
	if input.AccountName, err = f.str("account_name"); err != nil {
		return input, err
	}
	if input.Amount, err = f.amount("amount"); err != nil {
		return input, err
	}
	if input.StartAge, err = f.integer("start_age"); err != nil {
		return input, err
	}
	if input.EndAge, err = f.integer("end_age"); err != nil {
		return input, err
	}
	return input, nil
}

func sessionToMap(session *domain.Session) map[string]interface{} {
	return map[string]interface{}{
		"session_id": session.ID.String(),
		"name":       session.Name,
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func respond(m map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidIndex),
		errors.Is(err, domain.ErrInvalidProjection):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrDuplicateAccount):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrUnknownAccount),
		errors.Is(err, domain.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
