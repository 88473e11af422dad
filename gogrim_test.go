package gogrim_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/njchilds90/gogrim"
	"github.com/njchilds90/gogrim/brain"
	"github.com/njchilds90/gogrim/config"
	"github.com/njchilds90/gogrim/kb"
	. "github.com/njchilds90/gogrim/term"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================
// Engine
// ============================================================

func TestSimplify(t *testing.T) {
	got := gogrim.Simplify(MustParse("Div(Add(1, Sqrt(5)), 2)"), nil, nil)
	assert.True(t, got.Equal(GoldenRatio))

	z := Sym("z")
	got = gogrim.Simplify(MustParse("Add(Erf(z), Erfc(z))"), []*Term{z}, MustParse("Element(z, CC)"))
	assert.Equal(t, "1", got.String())
}

func TestSimplifyOrderIndependent(t *testing.T) {
	z := Sym("z")
	for _, assumptions := range []string{"Element(z, CC)", "Element(z, SetMinus(CC, ZZ))"} {
		for _, src := range []string{
			"Add(Pow(Sin(z), 2), Pow(Cos(z), 2))",
			"Add(Pow(Cos(z), 2), Pow(Sin(z), 2))",
			"Add(Erf(z), Erfc(z))",
			"Add(Erfc(z), Erf(z))",
		} {
			got := gogrim.Simplify(MustParse(src), []*Term{z}, MustParse(assumptions))
			assert.Equal(t, "1", got.String(), "%s under %s", src, assumptions)
		}
	}
}

func TestNewWithCorpusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	doc := "entries:\n  - id: extra1\n    formula: Equal(Pow(Pi, Div(1, 2)), Sqrt(Pi))\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := config.Default()
	cfg.Corpus = path
	e, err := gogrim.New(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, len(kb.Builtin())+1, e.Base().Len())
	_, ok := e.Base().Entry("extra1")
	assert.True(t, ok)

	cfg.Corpus = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = gogrim.New(cfg, nil)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Precision = 1
	_, err = gogrim.New(cfg, nil)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

// ============================================================
// Check
// ============================================================

func TestCheckIdentity(t *testing.T) {
	x := Sym("x")
	formula := MustParse("Equal(Add(Pow(Sin(x), 2), Pow(Cos(x), 2)), 1)")
	r, err := gogrim.Check(context.Background(), formula, []*Term{x}, MustParse("Element(x, RR)"), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, r.Samples)
	assert.Zero(t, r.False)
	assert.Positive(t, r.True)
	assert.Equal(t, r.Samples, r.True+r.Unknown)
	assert.NotEqual(t, brain.False, r.Verdict())
}

func TestCheckCounterexample(t *testing.T) {
	x := Sym("x")
	r, err := gogrim.Check(context.Background(), MustParse("Equal(Add(x, 1), x)"), []*Term{x}, MustParse("Element(x, ZZ)"), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Samples)
	assert.Equal(t, 5, r.False)
	assert.Equal(t, brain.False, r.Verdict())
	require.Len(t, r.Counterexamples, 5)
	assert.Equal(t, map[string]string{"x": "0"}, r.Counterexamples[0])
}

func TestCheckCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	x := Sym("x")
	_, err := gogrim.Check(ctx, MustParse("Equal(x, x)"), []*Term{x}, MustParse("Element(x, ZZ)"), 3)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, brain.True, gogrim.Report{Samples: 2, True: 2}.Verdict())
	assert.Equal(t, brain.False, gogrim.Report{Samples: 2, True: 1, False: 1}.Verdict())
	assert.Equal(t, brain.Unknown, gogrim.Report{Samples: 2, True: 1, Unknown: 1}.Verdict())
	assert.Equal(t, brain.Unknown, gogrim.Report{}.Verdict())
}

// ============================================================
// Tool calls
// ============================================================

func call(tool string, params map[string]interface{}) gogrim.ToolResponse {
	return gogrim.HandleToolCall(gogrim.ToolRequest{Tool: tool, Params: params})
}

func TestToolSimplify(t *testing.T) {
	resp := call("simplify", map[string]interface{}{"expr": "Sqrt(16)"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "4", resp.String)

	resp = call("simplify", map[string]interface{}{
		"expr":        map[string]interface{}{"type": "apply", "head": "Abs", "args": []interface{}{"x"}},
		"variables":   []interface{}{"x"},
		"assumptions": "Element(x, RR)",
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, "Abs(x)", resp.String)

	resp = call("simplify", map[string]interface{}{
		"expr":        "Element(x, RR)",
		"variables":   []interface{}{"x"},
		"assumptions": "Element(x, ZZ)",
	})
	assert.Equal(t, "True", resp.String)
}

func TestToolErrors(t *testing.T) {
	for name, resp := range map[string]gogrim.ToolResponse{
		"missing":      call("simplify", map[string]interface{}{}),
		"bad text":     call("simplify", map[string]interface{}{"expr": "Add(1,"}),
		"bad vars":     call("simplify", map[string]interface{}{"expr": "x", "variables": "x"}),
		"unknown tool": call("differentiate", nil),
		"predicate":    call("predicate", map[string]interface{}{"expr": "1", "predicate": "is_shiny"}),
		"entry":        call("entry", map[string]interface{}{"id": "nope"}),
		"samples":      call("check", map[string]interface{}{"formula": "True", "samples": 1.5}),
	} {
		assert.NotEmpty(t, resp.Error, name)
	}
}

func TestToolPredicate(t *testing.T) {
	resp := call("predicate", map[string]interface{}{"expr": "Pi", "predicate": "is_positive"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "True", resp.String)

	resp = call("predicate", map[string]interface{}{
		"expr": "x", "predicate": "is_integer",
		"variables": []interface{}{"x"}, "assumptions": "Element(x, RR)",
	})
	assert.Equal(t, "Unknown", resp.String)
}

func TestToolCheckAndSample(t *testing.T) {
	resp := call("check", map[string]interface{}{
		"formula": "Equal(Add(x, 1), x)", "variables": []interface{}{"x"},
		"assumptions": "Element(x, ZZ)", "samples": float64(3),
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, "False", resp.String)
	r, ok := resp.Result.(gogrim.Report)
	require.True(t, ok)
	assert.Equal(t, 3, r.False)

	resp = call("some_values", map[string]interface{}{
		"variables": []interface{}{"p"}, "assumptions": "Element(p, PP)", "n": float64(3),
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, []map[string]string{{"p": "2"}, {"p": "3"}, {"p": "5"}}, resp.Result)
}

func TestToolMisc(t *testing.T) {
	resp := call("complexity", map[string]interface{}{"expr": "RiemannZeta(2)"})
	assert.Equal(t, 1007, resp.Result)

	resp = call("free_variables", map[string]interface{}{"expr": "Sum(Add(n, x), For(n, 1, y))"})
	assert.ElementsMatch(t, []string{"x", "y"}, resp.Result)

	resp = call("entry", map[string]interface{}{"id": "ee2d4e"})
	require.Empty(t, resp.Error)
	assert.Contains(t, resp.String, "GoldenRatio")
}

func TestMCPToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name        string                 `json:"name"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(gogrim.MCPToolSpec()), &spec))
	var names []string
	for _, tool := range spec.Tools {
		names = append(names, tool.Name)
		assert.Equal(t, "object", tool.InputSchema["type"])
	}
	assert.Contains(t, names, "simplify")
	assert.Contains(t, names, "check")

	resp := call("mcp_spec", nil)
	assert.Equal(t, gogrim.MCPToolSpec(), resp.Result)
}
