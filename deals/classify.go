package deals

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the role a deal plays in position matching.
type Kind int

const (
	Unrecognized Kind = iota
	Open
	Close
)

func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return "unrecognized"
	}
}

// Side is the direction of a position.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// SkipReason says why a row was classified Unrecognized.
type SkipReason string

const (
	SkipMissingOrder SkipReason = "missing-order"
	SkipBadTime      SkipReason = "bad-time"
	SkipBadNumber    SkipReason = "bad-number"
	SkipBadVolume    SkipReason = "bad-volume"
	SkipUnknownType  SkipReason = "unrecognized-type"
)

// Deal is a classified record. Skip is set only when Kind is Unrecognized.
type Deal struct {
	Line   int
	Kind   Kind
	Skip   SkipReason
	Side   Side
	Order  string
	Symbol string
	Time   time.Time

	Volume     decimal.Decimal
	Price      decimal.Decimal
	Profit     decimal.Decimal
	Commission decimal.Decimal
	Swap       decimal.Decimal
}

// Classify decides whether rec opens a position, closes one, or is ignored.
//
//	type close                 -> Close
//	direction in  + buy|sell   -> Open
//	direction out + buy|sell   -> Close
//	type buy|sell              -> Open
//	anything else              -> Unrecognized
//
// Rows without an order identifier or a parseable time are Unrecognized
// whatever their type.
func Classify(rec Record) Deal {
	d := Deal{Line: rec.Line, Order: rec.Value(RoleOrder)}
	if d.Order == "" {
		return d.skip(SkipMissingOrder)
	}
	t, err := ParseTime(rec.Timestamp())
	if err != nil {
		return d.skip(SkipBadTime)
	}
	d.Time = t

	d.Kind = KindOf(rec)
	if d.Kind == Unrecognized {
		return d.skip(SkipUnknownType)
	}
	d.Side = SideOf(rec)
	d.Symbol = symbolOf(rec.Value(RoleSymbol))

	amounts := []struct {
		role Role
		dst  *decimal.Decimal
	}{
		{RoleVolume, &d.Volume},
		{RolePrice, &d.Price},
		{RoleProfit, &d.Profit},
		{RoleCommission, &d.Commission},
		{RoleSwap, &d.Swap},
	}
	for _, a := range amounts {
		v, err := ParseAmount(rec.Value(a.role))
		if err != nil {
			return d.skip(SkipBadNumber)
		}
		*a.dst = v
	}

	if d.Kind == Open && !d.Volume.IsPositive() {
		return d.skip(SkipBadVolume)
	}
	return d
}

// KindOf looks only at the type and direction cells.
func KindOf(rec Record) Kind {
	typ := strings.ToLower(strings.TrimSpace(rec.Value(RoleType)))
	dir := strings.ToLower(strings.TrimSpace(rec.Value(RoleDirection)))

	sided := typ == string(Buy) || typ == string(Sell)
	switch {
	case typ == "close":
		return Close
	case sided && dir == "in":
		return Open
	case sided && dir == "out":
		return Close
	case sided && !isEntry(dir):
		return Open
	default:
		return Unrecognized
	}
}

// SideOf returns the position direction. long/short in the direction
// column win over the type cell. A bare close row has no side.
func SideOf(rec Record) Side {
	switch strings.ToLower(strings.TrimSpace(rec.Value(RoleDirection))) {
	case "long":
		return Buy
	case "short":
		return Sell
	}
	switch strings.ToLower(strings.TrimSpace(rec.Value(RoleType))) {
	case "buy":
		return Buy
	case "sell":
		return Sell
	}
	return ""
}

// isEntry matches the MT5 entry markers other than in/out ("in/out",
// "out by") which describe reversals and netting this journal does not
// model.
func isEntry(dir string) bool {
	return dir == "in/out" || dir == "inout" || dir == "out by" || dir == "outby"
}

func (d Deal) skip(reason SkipReason) Deal {
	d.Kind = Unrecognized
	d.Skip = reason
	return d
}
