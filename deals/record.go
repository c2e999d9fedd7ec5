// Package deals decodes broker deal reports (MetaTrader 5 "deals" exports
// saved as delimited text) into records and classifies each record as an
// opening deal, a closing deal or something the journal ignores.
package deals

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the semantic meaning of a column, independent of how the broker
// spelled its header.
type Role string

const (
	RoleType       Role = "type"
	RoleDirection  Role = "direction"
	RoleSymbol     Role = "symbol"
	RoleTime       Role = "time"
	RoleVolume     Role = "volume"
	RolePrice      Role = "price"
	RoleOrder      Role = "order"
	RoleProfit     Role = "profit"
	RoleCommission Role = "commission"
	RoleSwap       Role = "swap"

	// RoleDate is a calendar date column. It completes a clock-only time
	// column and stands in for a missing one.
	RoleDate Role = "date"
)

// synonym binds a normalized header name to a role. When several columns
// carry the same role the lowest rank wins: MT5 writes
// "Time,Deal,Symbol,..." where Deal is the deal ticket, so "symbol" must
// beat "deal".
type synonym struct {
	role Role
	rank int
}

var synonyms = map[string]synonym{
	"type":        {RoleType, 0},
	"direction":   {RoleDirection, 0},
	"entry":       {RoleDirection, 1},
	"symbol":      {RoleSymbol, 0},
	"deal":        {RoleSymbol, 1},
	"time":        {RoleTime, 0},
	"opentime":    {RoleTime, 1},
	"date":        {RoleDate, 0},
	"volume":      {RoleVolume, 0},
	"lots":        {RoleVolume, 1},
	"size":        {RoleVolume, 2},
	"price":       {RolePrice, 0},
	"order":       {RoleOrder, 0},
	"ticket":      {RoleOrder, 1},
	"position":    {RoleOrder, 2},
	"profit":      {RoleProfit, 0},
	"commission":  {RoleCommission, 0},
	"commissions": {RoleCommission, 1},
	"swap":        {RoleSwap, 0},
	"swaps":       {RoleSwap, 1},
}

// RequiredRoles must all resolve to a header column for a file to be
// accepted as a deals report.
var RequiredRoles = []Role{RoleType, RoleOrder, RoleTime, RolePrice}

// ErrFormat is matched by every *FormatError through errors.Is.
var ErrFormat = errors.New("unrecognized deals report")

// FormatError is fatal to a decode: the input is empty, has no data rows,
// lacks required columns, or produced nothing usable.
type FormatError struct {
	Reason string
	Err    error
}

func NewFormatError(reason string, err error) *FormatError {
	return &FormatError{Reason: reason, Err: err}
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("format error: %s: %v", e.Reason, e.Err)
	}
	return "format error: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Record is one data row keyed by normalized column name.
type Record struct {
	// Line is the 1-based line number of the row in the source text.
	Line   int
	Fields map[string]string

	roles map[Role]string
}

// Value returns the cell for role, or "" when the role has no column or
// the row was short.
func (r Record) Value(role Role) string {
	name, ok := r.roles[role]
	if !ok {
		return ""
	}
	return r.Fields[name]
}

// Timestamp returns the time cell, prefixed with the date cell when the
// file splits them into "Date" and a clock-only "Time".
func (r Record) Timestamp() string {
	t := r.Value(RoleTime)
	dateCol, ok := r.roles[RoleDate]
	if !ok || dateCol == r.roles[RoleTime] {
		return t
	}
	d := r.Fields[dateCol]
	if d == "" || !isClock(t) {
		return t
	}
	return d + " " + t
}

// Has reports whether the table the record came from carries a column for
// role.
func (r Record) Has(role Role) bool {
	_, ok := r.roles[role]
	return ok
}

// NormalizeHeader lowercases name and drops every character outside
// [a-z0-9], so "Commission ($)" becomes "commission".
func NormalizeHeader(name string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// resolveRoles binds each role to its best ranked column, the left-most
// one among equal ranks. A date column doubles as the time column when the
// file has none.
func resolveRoles(columns []string) map[Role]string {
	roles := make(map[Role]string)
	ranks := make(map[Role]int)
	for _, c := range columns {
		syn, ok := synonyms[c]
		if !ok {
			continue
		}
		if r, taken := ranks[syn.role]; taken && r <= syn.rank {
			continue
		}
		roles[syn.role] = c
		ranks[syn.role] = syn.rank
	}
	if _, ok := roles[RoleTime]; !ok {
		if d, ok := roles[RoleDate]; ok {
			roles[RoleTime] = d
		}
	}
	return roles
}

func missingRoles(roles map[Role]string) []string {
	var missing []string
	for _, r := range RequiredRoles {
		if _, ok := roles[r]; !ok {
			missing = append(missing, string(r))
		}
	}
	return missing
}
