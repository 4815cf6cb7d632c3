// Package tablequery maps table state to and from request parameters.
//
// Sorting uses AIP-132 order_by syntax ("budget desc, name") and column
// filters use AIP-160 filter syntax restricted to conjunctions of equality
// terms (`status = "Active" AND platform = "Instagram"`). The same encoding
// backs dashboard URLs, MCP tool arguments and CLI flags.
package tablequery

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.einride.tech/aip/filtering"
	"go.einride.tech/aip/ordering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/louisbranch/adpulse/internal/table"
)

// Query parameter names.
const (
	ParamQuery    = "q"
	ParamFilter   = "filter"
	ParamOrderBy  = "order_by"
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

// MaxPageSize bounds requested page sizes.
const MaxPageSize = 100

// Request is the externally supplied view of a table.
type Request struct {
	// Query is the global search text.
	Query string
	// Filter is an AIP-160 expression over column keys.
	Filter string
	// OrderBy is an AIP-132 ordering over sortable column keys.
	OrderBy string
	// Page is 1-based; zero keeps the first page.
	Page int
	// PageSize of zero keeps the engine's page size.
	PageSize int
}

// FromValues reads a Request from query parameters. Unparseable numbers are
// treated as absent.
func FromValues(values url.Values) Request {
	req := Request{
		Query:   strings.TrimSpace(values.Get(ParamQuery)),
		Filter:  strings.TrimSpace(values.Get(ParamFilter)),
		OrderBy: strings.TrimSpace(values.Get(ParamOrderBy)),
	}
	if n, err := strconv.Atoi(values.Get(ParamPage)); err == nil {
		req.Page = n
	}
	if n, err := strconv.Atoi(values.Get(ParamPageSize)); err == nil {
		req.PageSize = n
	}
	return req
}

// Values encodes r, omitting empty fields.
func (r Request) Values() url.Values {
	values := url.Values{}
	if r.Query != "" {
		values.Set(ParamQuery, r.Query)
	}
	if r.Filter != "" {
		values.Set(ParamFilter, r.Filter)
	}
	if r.OrderBy != "" {
		values.Set(ParamOrderBy, r.OrderBy)
	}
	if r.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(r.Page))
	}
	if r.PageSize > 0 {
		values.Set(ParamPageSize, strconv.Itoa(r.PageSize))
	}
	return values
}

// FromState captures the shareable parts of a state. Selection and column
// visibility are not encoded.
func FromState(s table.State) Request {
	return Request{
		Query:    s.GlobalFilter,
		Filter:   FormatFilter(s.ColumnFilters),
		OrderBy:  FormatOrderBy(s.Sort),
		Page:     s.Pagination.PageIndex + 1,
		PageSize: s.Pagination.PageSize,
	}
}

// Apply seeds e from req, keeping its selection and column visibility.
// A malformed filter or order_by is skipped; the returned error describes
// what was skipped while the rest of req still applies.
func Apply[T any](e *table.Engine[T], req Request) error {
	state := e.State()
	var errs []error

	state.GlobalFilter = req.Query

	state.ColumnFilters = map[string]string{}
	if filters, err := ParseFilter(req.Filter, filterKeys(e)); err != nil {
		errs = append(errs, err)
	} else {
		state.ColumnFilters = filters
	}

	state.Sort = nil
	if sort, err := ParseOrderBy(req.OrderBy, sortKeys(e)); err != nil {
		errs = append(errs, err)
	} else {
		state.Sort = sort
	}

	if req.PageSize > 0 {
		state.Pagination.PageSize = min(req.PageSize, MaxPageSize)
	}
	state.Pagination.PageIndex = max(req.Page-1, 0)

	e.SetState(state)
	return errors.Join(errs...)
}

func sortKeys[T any](e *table.Engine[T]) []string {
	var keys []string
	for _, col := range e.Columns() {
		if col.Sortable() {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

func filterKeys[T any](e *table.Engine[T]) []string {
	var keys []string
	for _, col := range e.Columns() {
		if !col.Synthetic() {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// ParseOrderBy parses an AIP-132 ordering restricted to keys.
func ParseOrderBy(orderBy string, keys []string) ([]table.SortEntry, error) {
	if strings.TrimSpace(orderBy) == "" {
		return nil, nil
	}
	var parsed ordering.OrderBy
	if err := parsed.UnmarshalString(orderBy); err != nil {
		return nil, fmt.Errorf("parse order_by: %w", err)
	}
	if err := parsed.ValidateForPaths(keys...); err != nil {
		return nil, fmt.Errorf("validate order_by: %w", err)
	}
	entries := make([]table.SortEntry, 0, len(parsed.Fields))
	for _, field := range parsed.Fields {
		dir := table.Asc
		if field.Desc {
			dir = table.Desc
		}
		entries = append(entries, table.SortEntry{Key: field.Path, Direction: dir})
	}
	return entries, nil
}

// FormatOrderBy renders a sort list as an AIP-132 ordering.
func FormatOrderBy(entries []table.SortEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Direction == table.Desc {
			parts = append(parts, entry.Key+" desc")
			continue
		}
		parts = append(parts, entry.Key)
	}
	return strings.Join(parts, ", ")
}

// Declarations declares each key as a string identifier.
func Declarations(keys []string) (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, key := range keys {
		opts = append(opts, filtering.DeclareIdent(key, filtering.TypeString))
	}
	return filtering.NewDeclarations(opts...)
}

// ParseFilter parses an AIP-160 conjunction of `key = "value"` terms into
// column filters.
func ParseFilter(filter string, keys []string) (map[string]string, error) {
	out := map[string]string{}
	if strings.TrimSpace(filter) == "" {
		return out, nil
	}
	decls, err := Declarations(keys)
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(filter, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}
	if err := collectTerms(parsed.CheckedExpr.GetExpr(), out); err != nil {
		return nil, fmt.Errorf("translate filter: %w", err)
	}
	return out, nil
}

func collectTerms(e *expr.Expr, out map[string]string) error {
	if e == nil {
		return nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}
	args := call.CallExpr.Args
	switch call.CallExpr.Function {
	case "_&&_", filtering.FunctionAnd:
		for _, arg := range args {
			if err := collectTerms(arg, out); err != nil {
				return err
			}
		}
		return nil
	case "_==_", filtering.FunctionEquals, filtering.FunctionHas:
		if len(args) != 2 {
			return fmt.Errorf("comparison requires 2 arguments")
		}
		field, err := identName(args[0])
		if err != nil {
			return err
		}
		value, err := constString(args[1])
		if err != nil {
			return err
		}
		if prev, dup := out[field]; dup && prev != value {
			return fmt.Errorf("conflicting terms for %s", field)
		}
		out[field] = value
		return nil
	default:
		return fmt.Errorf("unsupported function: %s", call.CallExpr.Function)
	}
}

func identName(e *expr.Expr) (string, error) {
	ident, ok := e.GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return "", fmt.Errorf("expected identifier, got %T", e.GetExprKind())
	}
	return ident.IdentExpr.GetName(), nil
}

func constString(e *expr.Expr) (string, error) {
	c, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return "", fmt.Errorf("expected constant, got %T", e.GetExprKind())
	}
	switch kind := c.ConstExpr.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return strconv.FormatInt(kind.Int64Value, 10), nil
	case *expr.Constant_Uint64Value:
		return strconv.FormatUint(kind.Uint64Value, 10), nil
	case *expr.Constant_DoubleValue:
		return strconv.FormatFloat(kind.DoubleValue, 'f', -1, 64), nil
	case *expr.Constant_BoolValue:
		return strconv.FormatBool(kind.BoolValue), nil
	default:
		return "", fmt.Errorf("unsupported constant type: %T", kind)
	}
}

// FormatFilter renders column filters as an AIP-160 conjunction with keys
// in sorted order.
func FormatFilter(filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	terms := make([]string, 0, len(keys))
	for _, key := range keys {
		terms = append(terms, key+" = "+strconv.Quote(filters[key]))
	}
	return strings.Join(terms, " AND ")
}
