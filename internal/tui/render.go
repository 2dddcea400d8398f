package tui

import (
	"fmt"
	"strings"
)

func renderStructEdit(
	s *strings.Builder,
	m EditorModel,
) *strings.Builder {
	if len(m.Path) > 0 {
		fmt.Fprintf(s, "Path: %s\n\n", strings.Join(m.Path, " → "))
	}

	for i, item := range m.Options {
		display := item.Name
		if item.IsStruct {
			display += " →"
		} else {
			display += fmt.Sprintf(": %s", FormatValue(item.Value))
		}

		if i == m.cursor {
			fmt.Fprintf(s,
				"→ %s\n", Styles.Selected.Render(display))
		} else {
			fmt.Fprintf(s, "  %s\n", Styles.Normal.Render(display))
		}
	}

	return s
}

func renderPreview(m PreviewModel, options []string) string {
	var s strings.Builder

	s.WriteString(Styles.Normal.Render("Request:") + "\n\n")
	for _, item := range BuildNavigationForStruct(m.Session.Task) {
		name := Styles.ConfigVar.Render(item.Name)
		value := Styles.ConfigValue.Render(FormatValue(item.Value))
		fmt.Fprintf(&s, "%s=%s\n", name, value)
	}

	s.WriteString("\n" + Styles.Normal.Render("Configuration (env format):") + "\n\n")
	envOutput := ConfigToEnv(m.Session.Config)
	lines := strings.SplitSeq(strings.TrimSpace(envOutput), "\n")
	for line := range lines {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			varName := Styles.ConfigVar.Render(parts[0])
			value := Styles.ConfigValue.Render(parts[1])
			fmt.Fprintf(&s, "%s=%s\n", varName, value)
		} else {
			s.WriteString(line + "\n")
		}
	}

	s.WriteString("\n")

	for i, option := range options {
		if i == m.cursor {
			fmt.Fprintf(&s, "→ %s\n", Styles.Selected.Render(option))
		} else {
			fmt.Fprintf(&s, "  %s\n", Styles.Normal.Render(option))
		}
	}

	return s.String()
}

func renderMenu(
	s *strings.Builder,
	cursor int,
	options []string,
) *strings.Builder {
	for i, option := range options {
		if i == cursor {
			fmt.Fprintf(s, "→ %s\n", Styles.Selected.Render(option))
		} else {
			fmt.Fprintf(s, "  %s\n", Styles.Normal.Render(option))
		}
	}

	return s
}
