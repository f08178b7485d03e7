package generation

import (
	"regexp"
	"sort"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// Compose renders a task's prompt template with the supplied variables.
//
// Substitution is a single pass over the template: placeholder-like text
// inside substituted values is left untouched, never re-expanded. The
// format_instructions variable is always derived from the task's schema;
// callers cannot override it. Variables not declared by the template are
// ignored, and defaults fill in anything the caller omitted. Both the
// task's declared RequiredVariables and the template's placeholders must
// resolve, or Compose fails with MissingVariableError.
func (r *Registry) Compose(task TaskConfig, vars map[string]string) (string, error) {
	tpl, err := r.Template(task.PromptTemplateName)
	if err != nil {
		return "", err
	}

	resolved := make(map[string]string, len(vars)+len(task.DefaultParams)+1)
	for k, v := range task.DefaultParams {
		resolved[k] = v
	}
	for k, v := range vars {
		if k == "format_instructions" {
			continue
		}
		resolved[k] = v
	}
	resolved["format_instructions"] = FormatInstructions(r.Schema(task.SchemaName))

	var missing []string
	seen := make(map[string]bool)
	for _, name := range task.RequiredVariables {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := resolved[name]; !ok {
			missing = append(missing, name)
		}
	}
	for _, m := range placeholderRe.FindAllStringSubmatch(tpl, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := resolved[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", &MissingVariableError{Template: task.PromptTemplateName, Missing: missing}
	}

	prompt := placeholderRe.ReplaceAllStringFunc(tpl, func(m string) string {
		name := strings.Trim(m, "{}")
		return resolved[name]
	})
	return prompt, nil
}
