package grpc

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthflow-planner/internal/date"
	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// fields reads typed request values out of a Struct. Every failure is an
// InvalidArgument status naming the offending field.
type fields map[string]*structpb.Value

func fieldsOf(req *structpb.Struct) fields {
	if req == nil {
		return fields{}
	}
	return req.GetFields()
}

func (f fields) has(key string) bool {
	v, ok := f[key]
	if !ok {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

func (f fields) str(key string) (string, error) {
	v, ok := f[key]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", key)
	}
	return s.StringValue, nil
}

// optionalStr returns "" when key is absent.
func (f fields) optionalStr(key string) (string, error) {
	if !f.has(key) {
		return "", nil
	}
	return f.str(key)
}

func (f fields) number(key string) (float64, error) {
	v, ok := f[key]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", key)
	}
	return n.NumberValue, nil
}

// optionalNumber returns 0 when key is absent.
func (f fields) optionalNumber(key string) (float64, error) {
	if !f.has(key) {
		return 0, nil
	}
	return f.number(key)
}

func (f fields) integer(key string) (int, error) {
	n, err := f.number(key)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a whole number, got %v", key, n)
	}
	return int(n), nil
}

// amount accepts an amount either as a decimal string ("1234.56") or as a number.
func (f fields) amount(key string) (decimal.Decimal, error) {
	v, ok := f[key]
	if !ok {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		amount, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		return amount, nil
	case *structpb.Value_NumberValue:
		return decimal.NewFromFloat(kind.NumberValue), nil
	default:
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s must be a decimal string or a number", key)
	}
}

func (f fields) date(key string) (date.Date, error) {
	s, err := f.str(key)
	if err != nil {
		return date.Date{}, err
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
	}
	return d, nil
}

func (f fields) uuid(key string) (uuid.UUID, error) {
	s, err := f.str(key)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
	}
	return id, nil
}

// rateSchedule reads a list of {"from": date, "annual_rate": number} objects.
func (f fields) rateSchedule(key string) ([]domain.RateTier, error) {
	if !f.has(key) {
		return nil, nil
	}
	list, ok := f[key].GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a list", key)
	}
	tiers := make([]domain.RateTier, 0, len(list.ListValue.GetValues()))
	for i, item := range list.ListValue.GetValues() {
		obj, ok := item.GetKind().(*structpb.Value_StructValue)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "%s[%d] must be an object", key, i)
		}
		tier := fieldsOf(obj.StructValue)
		from, err := tier.date("from")
		if err != nil {
			return nil, err
		}
		rate, err := tier.number("annual_rate")
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, domain.RateTier{From: from, AnnualRate: rate})
	}
	return tiers, nil
}
