package ui

import "fmt"

type stepKind string

const (
	stepString stepKind = "string"
	stepForm   stepKind = "form"
	stepChoose stepKind = "choose"
	stepPick   stepKind = "pick"
	stepCancel stepKind = "cancel"
)

type step struct {
	kind stepKind
	str  string
	form map[string]string
	pick []string
}

// Script is a pre-programmed Prompter for tests. Queue answers with the
// Will* builders in the order the command will prompt; a mismatch between
// the queued step and the prompt actually issued fails the call loudly.
type Script struct {
	steps []step
	// Alerts records every Alert call as "title: message".
	Alerts []string
}

// NewScript returns an empty script.
func NewScript() *Script {
	return &Script{}
}

// WillAnswer queues a response for the next AskString.
func (s *Script) WillAnswer(value string) *Script {
	s.steps = append(s.steps, step{kind: stepString, str: value})
	return s
}

// WillSubmit queues form values for the next AskForm.
func (s *Script) WillSubmit(values map[string]string) *Script {
	s.steps = append(s.steps, step{kind: stepForm, form: values})
	return s
}

// WillChoose queues a choice for the next SelectFromList.
func (s *Script) WillChoose(value string) *Script {
	s.steps = append(s.steps, step{kind: stepChoose, str: value})
	return s
}

// WillPick queues choices for the next PickMany.
func (s *Script) WillPick(values ...string) *Script {
	s.steps = append(s.steps, step{kind: stepPick, pick: values})
	return s
}

// WillCancel makes the next prompt of any kind return ErrCancelled.
func (s *Script) WillCancel() *Script {
	s.steps = append(s.steps, step{kind: stepCancel})
	return s
}

func (s *Script) next(kind stepKind, label string) (step, error) {
	if len(s.steps) == 0 {
		return step{}, fmt.Errorf("ui: script exhausted at %s prompt %q", kind, label)
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	if st.kind == stepCancel {
		return step{}, ErrCancelled
	}
	if st.kind != kind {
		return step{}, fmt.Errorf("ui: script expected %s step, got %s prompt %q", st.kind, kind, label)
	}
	return st, nil
}

// Alert implements Prompter.
func (s *Script) Alert(title, message string) error {
	s.Alerts = append(s.Alerts, title+": "+message)
	return nil
}

// AskString implements Prompter.
func (s *Script) AskString(title, prompt, defaultValue string) (string, error) {
	st, err := s.next(stepString, title)
	if err != nil {
		return "", err
	}
	if st.str == "" {
		return defaultValue, nil
	}
	return st.str, nil
}

// AskForm implements Prompter.
func (s *Script) AskForm(title string, fields []Field) (map[string]string, error) {
	st, err := s.next(stepForm, title)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		if v, ok := st.form[f.Key]; ok {
			values[f.Key] = v
		} else {
			values[f.Key] = f.Default
		}
	}
	return values, nil
}

// SelectFromList implements Prompter.
func (s *Script) SelectFromList(title string, options []string) (string, error) {
	st, err := s.next(stepChoose, title)
	if err != nil {
		return "", err
	}
	for _, opt := range options {
		if opt == st.str {
			return opt, nil
		}
	}
	return "", fmt.Errorf("ui: scripted choice %q not among options for %q", st.str, title)
}

// PickMany implements Prompter.
func (s *Script) PickMany(title string, options []string) ([]string, error) {
	st, err := s.next(stepPick, title)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]struct{}, len(options))
	for _, opt := range options {
		allowed[opt] = struct{}{}
	}
	for _, p := range st.pick {
		if _, ok := allowed[p]; !ok {
			return nil, fmt.Errorf("ui: scripted pick %q not among options for %q", p, title)
		}
	}
	return append([]string{}, st.pick...), nil
}
