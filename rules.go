package gridnorm

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/javajack/gridnorm/column"
)

// ColumnRule is a user-supplied metadata rule. Its expression is evaluated
// against every column's metadata after analysis; a true result emits a
// diagnostic at the rule's severity.
//
// The expression environment exposes: header, detectedType (string),
// nonEmpty, distinct (int), mixedTypes, duplicateHeader, empty (bool),
// numericMin, numericMax (float, absent without numeric cells), currency
// (string).
type ColumnRule struct {
	Name     string
	Expr     string
	Severity Severity
	// Message overrides the default diagnostic text when set.
	Message string
}

// compiledRule pairs a rule with its compiled program. Rules compile once
// at Enricher construction; a broken expression is a construction error,
// never a runtime surprise.
type compiledRule struct {
	rule    ColumnRule
	program *vm.Program
}

// compileRules compiles every rule eagerly.
func compileRules(rules []ColumnRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.Expr == "" {
			return nil, fmt.Errorf("column rule %q has no expression", r.Name)
		}
		program, err := expr.Compile(r.Expr, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("compile column rule %q: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{rule: r, program: program})
	}
	return compiled, nil
}

// evaluate runs every compiled rule against one column's metadata and
// returns the diagnostics of the rules that fired. An evaluation error is
// itself surfaced as an Error diagnostic rather than failing the sheet.
func evaluateRules(rules []compiledRule, md column.Metadata) Diagnostics {
	if len(rules) == 0 {
		return nil
	}

	env := ruleEnv(md)
	var out Diagnostics
	for _, cr := range rules {
		result, err := expr.Run(cr.program, env)
		if err != nil {
			out = append(out, Diagnostic{
				Severity: SeverityError,
				Message:  fmt.Sprintf("column rule %q failed: %v", cr.rule.Name, err),
				Ref:      "column " + md.Header,
			})
			continue
		}
		fired, ok := result.(bool)
		if !ok || !fired {
			continue
		}
		msg := cr.rule.Message
		if msg == "" {
			msg = fmt.Sprintf("column rule %q matched", cr.rule.Name)
		}
		out = append(out, Diagnostic{
			Severity: cr.rule.Severity,
			Message:  msg,
			Ref:      "column " + md.Header,
		})
	}
	return out
}

// ruleEnv flattens column metadata into the rule expression environment.
func ruleEnv(md column.Metadata) map[string]any {
	env := map[string]any{
		"header":          md.Header,
		"detectedType":    md.Type.String(),
		"nonEmpty":        md.NonEmpty,
		"distinct":        md.Distinct,
		"mixedTypes":      md.Anomalies.Has(column.AnomalyMixedTypes),
		"duplicateHeader": md.Anomalies.Has(column.AnomalyDuplicateHeader),
		"empty":           md.Anomalies.Has(column.AnomalyEmptyColumn),
		"currency":        md.Currency,
	}
	if md.NumericMin != nil {
		env["numericMin"] = *md.NumericMin
	}
	if md.NumericMax != nil {
		env["numericMax"] = *md.NumericMax
	}
	return env
}
