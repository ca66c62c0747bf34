package pipeline

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/datasource"
	"github.com/sells-group/memo-cli/internal/model"
	"github.com/sells-group/memo-cli/internal/templating"
)

// applyBindings resolves a section's data bindings against the connector
// registry and substitutes fetched values into the content in place.
// Fetch failures are recorded per source and never propagated; the
// section keeps whatever content it had. Returns the number of bindings
// whose data was fetched and applied.
func applyBindings(ctx context.Context, sec *model.DocumentSection, registry *datasource.Registry, pctx model.ProjectContext) (int, []model.IntegrationResult) {
	applied := 0
	results := make([]model.IntegrationResult, 0, len(sec.Bindings))

	for _, binding := range sec.Bindings {
		res := model.IntegrationResult{
			SourceType: binding.SourceType,
			SourceID:   binding.SourceID,
		}

		data, err := fetchBinding(ctx, registry, binding, pctx)
		if err != nil {
			res.Error = err.Error()
			zap.L().Warn("bind: source fetch failed",
				zap.String("section", sec.DescriptorID),
				zap.String("source_type", string(binding.SourceType)),
				zap.Error(err),
			)
			results = append(results, res)
			continue
		}
		res.DataFetched = true

		applyTransforms(data, binding.Transforms)

		for sourceField, target := range binding.FieldMap {
			v, ok := data[sourceField]
			if !ok {
				continue
			}
			replaced := templating.Substitute(sec.Content, target, model.Stringify(v))
			if replaced != sec.Content {
				sec.Content = replaced
				res.RecordsApplied++
			}
		}

		if res.RecordsApplied > 0 {
			applied++
		}
		results = append(results, res)
	}

	return applied, results
}

func fetchBinding(ctx context.Context, registry *datasource.Registry, binding model.DataBinding, pctx model.ProjectContext) (map[string]any, error) {
	conn, err := registry.Get(binding.SourceType)
	if err != nil {
		return nil, err
	}
	if err := conn.Connect(ctx); err != nil {
		return nil, err
	}
	defer conn.Disconnect() //nolint:errcheck

	return conn.FetchData(ctx, binding, pctx)
}

// applyTransforms rewrites source values in place before substitution.
// Values a rule cannot interpret are left untouched.
func applyTransforms(data map[string]any, rules []model.TransformationRule) {
	for _, rule := range rules {
		v, ok := data[rule.Field]
		if !ok {
			continue
		}

		// sum collapses a list value into a single number.
		if rule.Operation == "sum" {
			if total, ok := sumValues(v); ok {
				data[rule.Field] = total
			}
			continue
		}

		f, ok := toFloat(v)
		if !ok {
			continue
		}

		switch rule.Operation {
		case "currency":
			data[rule.Field] = formatCurrency(f)
		case "percent":
			data[rule.Field] = strconv.FormatFloat(f*100, 'f', 1, 64) + "%"
		case "millions":
			data[rule.Field] = model.FormatMillions(f)
		}
	}
}

func sumValues(v any) (float64, bool) {
	items, ok := v.([]any)
	if !ok {
		return 0, false
	}
	total := 0.0
	for _, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return 0, false
		}
		total += f
	}
	return total, true
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

// formatCurrency renders a dollar amount with thousands separators,
// dropping cents: 1234567.8 -> "$1,234,568".
func formatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 0, 64)

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}
