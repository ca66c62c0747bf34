package catalog

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/memo-cli/internal/model"
)

//go:embed templates.yaml
var builtinTemplatesYAML []byte

type builtinFile struct {
	Templates []model.Template `yaml:"templates"`
}

// BuiltinTemplates parses the embedded default template set.
func BuiltinTemplates() ([]model.Template, error) {
	var f builtinFile
	if err := yaml.Unmarshal(builtinTemplatesYAML, &f); err != nil {
		return nil, eris.Wrap(err, "catalog: unmarshal builtin templates")
	}
	return f.Templates, nil
}
