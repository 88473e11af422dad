package gogrim

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/njchilds90/gogrim/brain"
	"github.com/njchilds90/gogrim/term"
)

// ============================================================
// MCP / Tool-calling API
// ============================================================
//
// Every term parameter accepts either the canonical text form, such as
// "Add(x, 1)", or the JSON object form of term.FromJSON.

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs req on the default engine.
func HandleToolCall(req ToolRequest) ToolResponse {
	return Default().HandleToolCall(context.Background(), req)
}

// HandleToolCall dispatches one tool call. Failures are reported in the
// Error field; it never panics on malformed input.
func (e *Engine) HandleToolCall(ctx context.Context, req ToolRequest) ToolResponse {
	getTerm := func(key string) (*term.Term, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		t, err := term.FromValue(v)
		if err != nil {
			return nil, fmt.Errorf("param %s: %v", key, err)
		}
		return t, nil
	}
	optTerm := func(key string) (*term.Term, error) {
		if _, ok := req.Params[key]; !ok {
			return nil, nil
		}
		return getTerm(key)
	}
	getTerms := func(key string) ([]*term.Term, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, nil
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		out := make([]*term.Term, len(raw))
		for i, r := range raw {
			t, err := term.FromValue(r)
			if err != nil {
				return nil, fmt.Errorf("param %s[%d]: %v", key, i, err)
			}
			out[i] = t
		}
		return out, nil
	}
	getInt := func(key string, def int) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return def, nil
		}
		f, ok := v.(float64)
		if !ok || f != float64(int(f)) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		if f < 0 {
			return 0, fmt.Errorf("param %s must be >= 0", key)
		}
		return int(f), nil
	}
	// question reads the variables and assumptions shared by most tools.
	question := func() ([]*term.Term, *term.Term, error) {
		vars, err := getTerms("variables")
		if err != nil {
			return nil, nil, err
		}
		assumptions, err := optTerm("assumptions")
		return vars, assumptions, err
	}
	respond := func(t *term.Term) ToolResponse {
		return ToolResponse{Result: t.JSONValue(), String: t.String()}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	e.log.Debug("tool call", zap.String("tool", req.Tool), zap.Int("params", len(req.Params)))

	switch req.Tool {
	case "simplify":
		expr, err := getTerm("expr")
		if err != nil {
			return fail(err)
		}
		vars, assumptions, err := question()
		if err != nil {
			return fail(err)
		}
		return respond(e.Simplify(expr, vars, assumptions))

	case "predicate":
		expr, err := getTerm("expr")
		if err != nil {
			return fail(err)
		}
		vars, assumptions, err := question()
		if err != nil {
			return fail(err)
		}
		name, _ := req.Params["predicate"].(string)
		pred, ok := predicates[name]
		if !ok {
			return ToolResponse{Error: fmt.Sprintf("unknown predicate: %q", name)}
		}
		v := pred(e.Session(vars, assumptions), expr)
		return ToolResponse{Result: v.String(), String: v.String()}

	case "check":
		formula, err := getTerm("formula")
		if err != nil {
			return fail(err)
		}
		vars, assumptions, err := question()
		if err != nil {
			return fail(err)
		}
		n, err := getInt("samples", 0)
		if err != nil {
			return fail(err)
		}
		r, err := e.Check(ctx, formula, vars, assumptions, n)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: r, String: r.Verdict().String()}

	case "some_values":
		vars, assumptions, err := question()
		if err != nil {
			return fail(err)
		}
		if assumptions == nil {
			assumptions = term.True
		}
		n, err := getInt("n", e.cfg.Sampler.Samples)
		if err != nil {
			return fail(err)
		}
		found := e.Session(vars, assumptions).SomeValues(vars, assumptions, n, e.cfg.Sampler.MaxCandidates)
		out := make([]map[string]string, len(found))
		for i, at := range found {
			out[i] = assignment(at)
		}
		return ToolResponse{Result: out, String: fmt.Sprintf("%d assignments", len(out))}

	case "complexity":
		expr, err := getTerm("expr")
		if err != nil {
			return fail(err)
		}
		c := brain.Complexity(expr)
		return ToolResponse{Result: c, String: fmt.Sprint(c)}

	case "free_variables":
		expr, err := getTerm("expr")
		if err != nil {
			return fail(err)
		}
		free := expr.FreeVariables()
		names := make([]string, len(free))
		for i, v := range free {
			names[i] = v.String()
		}
		return ToolResponse{Result: names, String: fmt.Sprint(names)}

	case "entry":
		id, _ := req.Params["id"].(string)
		entry, ok := e.base.Entry(id)
		if !ok {
			return ToolResponse{Error: fmt.Sprintf("no entry %q", id)}
		}
		return respond(entry.Term())

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %q", req.Tool)}
}

var predicates = map[string]func(*brain.Session, *term.Term) brain.Truth{
	"is_zero":          (*brain.Session).IsZero,
	"is_not_zero":      (*brain.Session).IsNotZero,
	"is_infinity":      (*brain.Session).IsInfinity,
	"is_positive":      (*brain.Session).IsPositive,
	"is_negative":      (*brain.Session).IsNegative,
	"is_nonnegative":   (*brain.Session).IsNonNegative,
	"is_nonpositive":   (*brain.Session).IsNonPositive,
	"is_integer":       (*brain.Session).IsInteger,
	"is_rational":      (*brain.Session).IsRational,
	"is_algebraic":     (*brain.Session).IsAlgebraic,
	"is_real":          (*brain.Session).IsReal,
	"is_extended_real": (*brain.Session).IsExtendedReal,
	"is_complex":       (*brain.Session).IsComplex,
}

// MCPToolSpec returns the JSON schema of every tool HandleToolCall serves.
func MCPToolSpec() string {
	question := map[string]string{"variables": "array", "assumptions": "object"}
	with := func(extra map[string]string) map[string]string {
		out := map[string]string{}
		for k, v := range question {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}
	predicateNames := make([]string, 0, len(predicates))
	for name := range predicates {
		predicateNames = append(predicateNames, name)
	}
	sort.Strings(predicateNames)
	tools := []map[string]interface{}{
		ts("simplify", "Simplify an expression under assumptions on its variables", []string{"expr"}, with(map[string]string{"expr": "object"})),
		ts("predicate", fmt.Sprintf("Decide a property of an expression: True, False or Unknown. predicate is one of %v", predicateNames),
			[]string{"expr", "predicate"}, with(map[string]string{"expr": "object", "predicate": "string"})),
		ts("check", "Test a formula on sampled values satisfying the assumptions", []string{"formula"}, with(map[string]string{"formula": "object", "samples": "integer"})),
		ts("some_values", "Sample values of the variables satisfying the assumptions", []string{"variables"}, with(map[string]string{"n": "integer"})),
		ts("complexity", "Complexity score of an expression; lower is simpler", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("free_variables", "Return the free variable names of an expression", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("entry", "Return a knowledge-base entry by id", []string{"id"}, map[string]string{"id": "string"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
