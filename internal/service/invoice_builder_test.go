package service

import (
	"testing"
	"time"

	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billableAppointment() entity.Appointment {
	return entity.Appointment{
		ID:          uuid.New(),
		Status:      entity.StatusFinalizado,
		ScheduledAt: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	}
}

func TestBuildInvoiceItems_PerSession(t *testing.T) {
	sessionFee := decimal.NewFromInt(150)
	in := InvoiceInput{
		Classified: ClassifiedAppointments{
			Regular: []entity.Appointment{billableAppointment(), billableAppointment()},
			Extra:   []entity.Appointment{billableAppointment()},
		},
		BillingMode: entity.BillingModePerSession,
		SessionFee:  sessionFee,
	}

	items := BuildInvoiceItems(in)
	require.Len(t, items, 3)

	assert.Equal(t, entity.ItemSessaoRegular, items[0].Type)
	assert.Equal(t, RegularItemDescription, items[0].Description)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, items[0].Total.Equal(sessionFee))
	require.NotNil(t, items[0].AppointmentID)

	assert.Equal(t, entity.ItemSessaoExtra, items[2].Type)
	assert.Equal(t, ExtraItemDescription, items[2].Description)

	for i, item := range items {
		assert.Equal(t, i, item.SortOrder)
	}
}

func TestBuildInvoiceItems_CreditsProduceNegativeLines(t *testing.T) {
	sessionFee := decimal.NewFromInt(150)
	in := InvoiceInput{
		Classified: ClassifiedAppointments{
			Regular: []entity.Appointment{
				billableAppointment(), billableAppointment(),
				billableAppointment(), billableAppointment(),
			},
		},
		BillingMode: entity.BillingModePerSession,
		SessionFee:  sessionFee,
		Credits:     []entity.SessionCredit{{ID: uuid.New()}},
	}

	items := BuildInvoiceItems(in)
	require.Len(t, items, 5)

	credit := items[4]
	assert.Equal(t, entity.ItemCredito, credit.Type)
	assert.Equal(t, CreditItemDescription, credit.Description)
	assert.Equal(t, -1, credit.Quantity)
	assert.True(t, credit.Total.Equal(sessionFee.Neg()))
	assert.Nil(t, credit.AppointmentID)

	// 4 sessions at 150 minus one credit: 450.
	totals := CalculateInvoiceTotals(items)
	assert.Equal(t, 4, totals.TotalSessions)
	assert.Equal(t, 1, totals.CreditsApplied)
	assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(450)))
}

func TestBuildInvoiceItems_PriceOverride(t *testing.T) {
	override := decimal.NewFromInt(200)
	a := billableAppointment()
	a.PriceOverride = &override

	items := BuildInvoiceItems(InvoiceInput{
		Classified:  ClassifiedAppointments{Regular: []entity.Appointment{a}},
		BillingMode: entity.BillingModePerSession,
		SessionFee:  decimal.NewFromInt(150),
	})
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(override))
	assert.True(t, items[0].Total.Equal(override))
}

func TestBuildInvoiceItems_ShowAppointmentDays(t *testing.T) {
	items := BuildInvoiceItems(InvoiceInput{
		Classified:          ClassifiedAppointments{Regular: []entity.Appointment{billableAppointment()}},
		BillingMode:         entity.BillingModePerSession,
		SessionFee:          decimal.NewFromInt(150),
		ShowAppointmentDays: true,
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Sessão - 10/03", items[0].Description)
}

func TestBuildInvoiceItems_MonthlyFixed(t *testing.T) {
	monthlyFee := decimal.NewFromInt(900)
	in := InvoiceInput{
		Classified: ClassifiedAppointments{
			Regular: []entity.Appointment{billableAppointment(), billableAppointment()},
			Extra:   []entity.Appointment{billableAppointment()},
		},
		BillingMode: entity.BillingModeMonthlyFixed,
		SessionFee:  decimal.NewFromInt(150),
		MonthlyFee:  monthlyFee,
	}

	items := BuildInvoiceItems(in)
	require.Len(t, items, 1)
	assert.Equal(t, MonthlyFeeItemDescription, items[0].Description)
	assert.True(t, items[0].Total.Equal(monthlyFee))
	assert.Nil(t, items[0].AppointmentID)
}

func TestBuildInvoiceItems_MonthlyFixedNoSessionsNoLine(t *testing.T) {
	items := BuildInvoiceItems(InvoiceInput{
		BillingMode: entity.BillingModeMonthlyFixed,
		MonthlyFee:  decimal.NewFromInt(900),
	})
	assert.Empty(t, items)
}

func TestCalculateInvoiceTotals_ExtrasAndMeetings(t *testing.T) {
	fee := decimal.NewFromInt(100)
	items := []entity.InvoiceItem{
		{Type: entity.ItemSessaoRegular, Quantity: 2, Total: fee.Mul(decimal.NewFromInt(2))},
		{Type: entity.ItemSessaoExtra, Quantity: 1, Total: fee},
		{Type: entity.ItemReuniaoEscola, Quantity: 1, Total: fee},
		{Type: entity.ItemCredito, Quantity: -1, Total: fee.Neg()},
	}

	totals := CalculateInvoiceTotals(items)
	assert.Equal(t, 4, totals.TotalSessions)
	assert.Equal(t, 2, totals.ExtrasAdded)
	assert.Equal(t, 1, totals.CreditsApplied)
	assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(300)))
}

// rebuildItems mirrors one regeneration pass over an invoice's item list:
// auto-generated lines are dropped, manual lines survive, and freshly built
// lines are appended after them.
func rebuildItems(existing []entity.InvoiceItem, in InvoiceInput) []entity.InvoiceItem {
	var preserved []entity.InvoiceItem
	for _, item := range existing {
		item := item
		if !item.IsAutoGenerated(CreditItemDescription, MonthlyFeeItemDescription) {
			preserved = append(preserved, item)
		}
	}
	rebuilt := OffsetSortOrders(BuildInvoiceItems(in), preserved)
	return append(preserved, rebuilt...)
}

func TestRebuild_MonthlyFixedIdempotent(t *testing.T) {
	monthlyFee := decimal.NewFromInt(800)
	in := InvoiceInput{
		Classified: ClassifiedAppointments{
			Regular: []entity.Appointment{billableAppointment(), billableAppointment()},
		},
		BillingMode: entity.BillingModeMonthlyFixed,
		SessionFee:  decimal.NewFromInt(150),
		MonthlyFee:  monthlyFee,
	}

	items := BuildInvoiceItems(in)
	require.Len(t, items, 1)

	// Rebuilding from unchanged data must replace the consolidated line,
	// not stack a second one.
	for i := 0; i < 3; i++ {
		items = rebuildItems(items, in)
	}
	require.Len(t, items, 1)

	totals := CalculateInvoiceTotals(items)
	assert.Equal(t, 1, totals.TotalSessions)
	assert.True(t, totals.TotalAmount.Equal(monthlyFee))
}

func TestRebuild_PerSessionIdempotentWithCredits(t *testing.T) {
	sessionFee := decimal.NewFromInt(150)
	in := InvoiceInput{
		Classified: ClassifiedAppointments{
			Regular: []entity.Appointment{billableAppointment(), billableAppointment()},
		},
		BillingMode: entity.BillingModePerSession,
		SessionFee:  sessionFee,
		Credits:     []entity.SessionCredit{{ID: uuid.New()}},
	}

	items := rebuildItems(BuildInvoiceItems(in), in)
	require.Len(t, items, 3)

	totals := CalculateInvoiceTotals(items)
	assert.Equal(t, 2, totals.TotalSessions)
	assert.Equal(t, 1, totals.CreditsApplied)
	assert.True(t, totals.TotalAmount.Equal(sessionFee))
}

func TestRebuild_ManualLinesSurviveAndKeepOrder(t *testing.T) {
	in := InvoiceInput{
		Classified:  ClassifiedAppointments{Regular: []entity.Appointment{billableAppointment()}},
		BillingMode: entity.BillingModePerSession,
		SessionFee:  decimal.NewFromInt(150),
	}

	items := BuildInvoiceItems(in)
	manual := entity.InvoiceItem{
		Type:        entity.ItemSessaoExtra,
		Description: "Material didático",
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(40),
		Total:       decimal.NewFromInt(40),
		SortOrder:   len(items),
	}
	items = append(items, manual)

	rebuilt := rebuildItems(items, in)
	require.Len(t, rebuilt, 2)

	// The manual line keeps its slot; the regenerated line sorts after it.
	assert.Equal(t, "Material didático", rebuilt[0].Description)
	assert.Equal(t, 1, rebuilt[0].SortOrder)
	assert.Equal(t, RegularItemDescription, rebuilt[1].Description)
	assert.Equal(t, 2, rebuilt[1].SortOrder)
	assert.True(t, CalculateInvoiceTotals(rebuilt).TotalAmount.Equal(decimal.NewFromInt(190)))
}

func TestOffsetSortOrders_NoPreservedStartsAtZero(t *testing.T) {
	items := OffsetSortOrders([]entity.InvoiceItem{{}, {}}, nil)
	assert.Equal(t, 0, items[0].SortOrder)
	assert.Equal(t, 1, items[1].SortOrder)
}

func TestCalculateInvoiceTotals_Empty(t *testing.T) {
	totals := CalculateInvoiceTotals(nil)
	assert.Equal(t, 0, totals.TotalSessions)
	assert.True(t, totals.TotalAmount.IsZero())
}
