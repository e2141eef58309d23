package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jwalitptl/clinicdesk/internal/formschema"
	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(22)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Theme is the huh theme every form uses.
func Theme() *huh.Theme {
	return huh.ThemeCharm()
}

// StatusBadge renders a status label in its own color.
func StatusBadge(s model.PatientStatusOption) string {
	label := s.Label
	if s.IsDefault {
		label += " (default)"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("● " + label)
}

// TemplateTable renders the template list page.
func TemplateTable(list []model.Template) string {
	if len(list) == 0 {
		return SubtitleStyle.Render("No templates found")
	}
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		flags := []string{}
		if t.IsDefault {
			flags = append(flags, "default")
		}
		if !t.IsVisible {
			flags = append(flags, "hidden")
		}
		fields := 0
		for _, s := range t.Sections {
			fields += len(s.Fields)
		}
		rows = append(rows, []string{
			t.ID, t.Name, t.Description,
			fmt.Sprintf("%d/%d", len(t.Sections), fields),
			strings.Join(flags, ","),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "DESCRIPTION", "SECTIONS/FIELDS", "FLAGS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

// TemplateSummary renders one template with its sections in display order.
func TemplateSummary(t model.Template) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(t.Name))
	b.WriteString("\n")
	if t.Description != "" {
		b.WriteString(SubtitleStyle.Render(t.Description) + "\n")
	}
	for _, s := range formschema.Sorted(t) {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(s.Label) + "\n")
		for _, f := range s.Fields {
			line := fmt.Sprintf("  %d. %s [%s]", f.Order+1, f.Label, f.Type)
			if f.Required {
				line += " *"
			}
			if len(f.Options) > 0 {
				line += " " + strings.Join(f.Options, " | ")
			}
			b.WriteString(line + "\n")
		}
	}
	if len(t.StatusOptions) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Statuses") + "\n")
		for _, s := range t.StatusOptions {
			b.WriteString("  " + StatusBadge(s) + "\n")
		}
	}
	return b.String()
}

// RecordSummary renders the headline of a saved patient record.
func RecordSummary(rec model.PatientRecord) string {
	var b strings.Builder
	name := "Unnamed patient"
	if rec.PersonalInfo != nil && rec.PersonalInfo.Name != "" {
		name = rec.PersonalInfo.Name
	}
	b.WriteString(TitleStyle.Render(name) + "\n")
	row := func(label, value string) {
		if value != "" {
			b.WriteString(LabelStyle.Render(label) + value + "\n")
		}
	}
	row("Record", rec.ID)
	row("Status", rec.Status)
	row("Template", rec.TemplateID)
	if rec.VitalSigns != nil {
		row("Fluid balance", rec.VitalSigns.Balance)
	}
	if rec.DiagnosisAndTreatment != nil {
		row("Diagnosis", rec.DiagnosisAndTreatment.Diagnosis)
	}
	keys := make([]string, 0, len(rec.CustomFields))
	for k := range rec.CustomFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		row(k, fmt.Sprint(rec.CustomFields[k]))
	}
	return b.String()
}

// ErrorText renders err for the terminal, one line per field error.
func ErrorText(err error) string {
	var fe validator.FieldErrors
	if errors.As(err, &fe) {
		keys := make([]string, 0, len(fe))
		for k := range fe {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", k, fe[k]))
		}
		return ErrorStyle.Render(strings.Join(lines, "\n"))
	}
	var se formschema.SchemaErrors
	if errors.As(err, &se) {
		return ErrorStyle.Render(strings.Join(se, "\n"))
	}
	return ErrorStyle.Render(err.Error())
}
