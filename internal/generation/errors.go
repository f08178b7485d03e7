package generation

import (
	"fmt"
	"sort"
	"strings"
)

// UnknownTaskError indicates a task name with no registry entry.
// Programmer error: task names are selected by code, not by users.
type UnknownTaskError struct {
	Task string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown generation task: %q", e.Task)
}

// UnknownTemplateError indicates a task references a prompt template
// that is not registered.
type UnknownTemplateError struct {
	Template string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown prompt template: %q", e.Template)
}

// UnknownModelConfigError indicates a task references a model config
// that is not registered.
type UnknownModelConfigError struct {
	Name string
}

func (e *UnknownModelConfigError) Error() string {
	return fmt.Sprintf("unknown model config: %q", e.Name)
}

// MissingVariableError lists template variables absent from both the
// caller-supplied values and the task defaults.
type MissingVariableError struct {
	Template string
	Missing  []string
}

func (e *MissingVariableError) Error() string {
	names := append([]string(nil), e.Missing...)
	sort.Strings(names)
	return fmt.Sprintf("template %q is missing variables: %s", e.Template, strings.Join(names, ", "))
}

// MalformedOutputError indicates model output that failed parsing or
// schema validation. Recoverable by the caller; never retried here.
type MalformedOutputError struct {
	Err error
	Raw string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// IDAssignmentError indicates a question whose correct-choice reference
// could not be resolved after the ID graph was rewritten. Should be
// unreachable when assignment is implemented correctly.
type IDAssignmentError struct {
	QuestionIndex   int
	CorrectChoiceID string
}

func (e *IDAssignmentError) Error() string {
	return fmt.Sprintf("question %d: correct_choice_id %q does not resolve to any choice after ID assignment",
		e.QuestionIndex, e.CorrectChoiceID)
}
