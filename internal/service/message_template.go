package service

import (
	"regexp"
	"strings"
)

// DefaultMessageTemplate is the built-in fallback used when neither the
// patient nor the clinic defines a template.
const DefaultMessageTemplate = `Olá, {{nome_mae}}!

Segue o resumo do acompanhamento de {{nome_paciente}} referente a {{mes}}/{{ano}}.

Total de sessões: {{total_sessoes}}
Valor: {{valor_total}}
Vencimento: {{vencimento}}

{{detalhamento}}

Qualquer dúvida estou à disposição.
{{nome_profissional}}`

// Template variable names accepted by the renderer
const (
	VarPatientName      = "nome_paciente"
	VarMotherName       = "nome_mae"
	VarFatherName       = "nome_pai"
	VarTotalAmount      = "valor_total"
	VarMonthName        = "mes"
	VarYear             = "ano"
	VarDueDate          = "vencimento"
	VarSessionCount     = "total_sessoes"
	VarProfessionalName = "nome_profissional"
	VarItemDetail       = "detalhamento"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*)\}\}`)

// ResolveMessageTemplate picks the template body: patient-level override,
// else clinic-level default, else the built-in default.
func ResolveMessageTemplate(patientTemplate, clinicTemplate *string) string {
	if patientTemplate != nil && strings.TrimSpace(*patientTemplate) != "" {
		return *patientTemplate
	}
	if clinicTemplate != nil && strings.TrimSpace(*clinicTemplate) != "" {
		return *clinicTemplate
	}
	return DefaultMessageTemplate
}

// RenderMessageTemplate substitutes {{key}} placeholders from vars.
// Placeholders not present in vars pass through literally; keys present with
// an empty value render as empty string. Substitution is literal, never an
// error.
func RenderMessageTemplate(template string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[2 : len(match)-2]
		if value, ok := vars[key]; ok {
			return value
		}
		return match
	})
}

// MonthNamePT returns the Portuguese month name for 1-12, empty otherwise
func MonthNamePT(month int) string {
	names := []string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	if month < 1 || month > len(names) {
		return ""
	}
	return names[month-1]
}
