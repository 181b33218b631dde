package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMessageTemplate(t *testing.T) {
	patient := "template do paciente"
	clinic := "template da clínica"
	blank := "   "

	tests := []struct {
		name            string
		patientTemplate *string
		clinicTemplate  *string
		want            string
	}{
		{"patient override wins", &patient, &clinic, patient},
		{"clinic fallback", nil, &clinic, clinic},
		{"blank patient falls through", &blank, &clinic, clinic},
		{"built-in default", nil, nil, DefaultMessageTemplate},
		{"blank everywhere", &blank, &blank, DefaultMessageTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMessageTemplate(tt.patientTemplate, tt.clinicTemplate))
		})
	}
}

func TestRenderMessageTemplate(t *testing.T) {
	vars := map[string]string{
		VarPatientName: "João",
		VarMotherName:  "Maria",
		VarTotalAmount: "R$ 450,00",
	}

	got := RenderMessageTemplate("Olá {{nome_mae}}, resumo de {{nome_paciente}}: {{valor_total}}", vars)
	assert.Equal(t, "Olá Maria, resumo de João: R$ 450,00", got)
}

func TestRenderMessageTemplate_UnknownPlaceholderPassesThrough(t *testing.T) {
	got := RenderMessageTemplate("Olá {{nome_mae}}, {{campo_inexistente}}", map[string]string{
		VarMotherName: "Maria",
	})
	assert.Equal(t, "Olá Maria, {{campo_inexistente}}", got)
}

func TestRenderMessageTemplate_EmptyValueRendersEmpty(t *testing.T) {
	got := RenderMessageTemplate("Assinado: {{nome_profissional}}.", map[string]string{
		VarProfessionalName: "",
	})
	assert.Equal(t, "Assinado: .", got)
}

func TestRenderMessageTemplate_DefaultTemplateFullyResolves(t *testing.T) {
	vars := map[string]string{
		VarPatientName:      "João",
		VarMotherName:       "Maria",
		VarFatherName:       "José",
		VarTotalAmount:      "R$ 450,00",
		VarMonthName:        "Março",
		VarYear:             "2026",
		VarDueDate:          "10/03/2026",
		VarSessionCount:     "4",
		VarProfessionalName: "Dra. Ana",
		VarItemDetail:       "4x Sessão: R$ 600,00",
	}

	got := RenderMessageTemplate(DefaultMessageTemplate, vars)
	assert.NotContains(t, got, "{{")
	assert.Contains(t, got, "Maria")
	assert.Contains(t, got, "Março/2026")
}

func TestMonthNamePT(t *testing.T) {
	assert.Equal(t, "Janeiro", MonthNamePT(1))
	assert.Equal(t, "Março", MonthNamePT(3))
	assert.Equal(t, "Dezembro", MonthNamePT(12))
	assert.Equal(t, "", MonthNamePT(0))
	assert.Equal(t, "", MonthNamePT(13))
}
