package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatus_IsLocked(t *testing.T) {
	assert.False(t, InvoicePendente.IsLocked())
	assert.False(t, InvoiceCancelado.IsLocked())
	assert.True(t, InvoiceEnviado.IsLocked())
	assert.True(t, InvoicePago.IsLocked())
}

func TestInvoiceItem_IsAutoGenerated(t *testing.T) {
	creditDescription := "Crédito de sessão"
	monthlyDescription := "Mensalidade"
	appointmentID := uuid.New()

	tests := []struct {
		name string
		item InvoiceItem
		want bool
	}{
		{"appointment-linked line", InvoiceItem{AppointmentID: &appointmentID}, true},
		{"builder credit line", InvoiceItem{Type: ItemCredito, Description: creditDescription}, true},
		{"builder monthly line", InvoiceItem{Type: ItemSessaoRegular, Description: monthlyDescription}, true},
		{"manual credit line", InvoiceItem{Type: ItemCredito, Description: "Desconto combinado"}, false},
		{"manual regular line", InvoiceItem{Type: ItemSessaoRegular, Description: "Sessão avulsa"}, false},
		{"manual line", InvoiceItem{Type: ItemSessaoExtra, Description: "Material"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.IsAutoGenerated(creditDescription, monthlyDescription))
		})
	}
}
