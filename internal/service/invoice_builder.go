package service

import (
	"fmt"

	"clinic-saas-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Item descriptions stamped by the builder. CreditItemDescription doubles as
// the marker regeneration uses to recognize auto-generated CREDITO lines.
const (
	RegularItemDescription       = "Sessão"
	ExtraItemDescription         = "Sessão extra"
	GroupItemDescription         = "Sessão em grupo"
	SchoolMeetingItemDescription = "Reunião escolar"
	MonthlyFeeItemDescription    = "Mensalidade"
	CreditItemDescription        = "Crédito de sessão"
)

// InvoiceInput carries everything the builder needs for one patient's month
type InvoiceInput struct {
	Classified          ClassifiedAppointments
	BillingMode         entity.BillingMode
	SessionFee          decimal.Decimal
	MonthlyFee          decimal.Decimal
	Credits             []entity.SessionCredit
	ShowAppointmentDays bool
}

// InvoiceTotals is the derived rollup of an item list
type InvoiceTotals struct {
	TotalSessions  int
	CreditsApplied int
	ExtrasAdded    int
	TotalAmount    decimal.Decimal
}

// BuildInvoiceItems produces the ordered invoice lines for one patient:
// per-session lines (regular, extra, group, school meeting), or one
// consolidated monthly line under MONTHLY_FIXED, followed by one negative
// CREDITO line per applied credit (quantity -1, total -sessionFee).
func BuildInvoiceItems(in InvoiceInput) []entity.InvoiceItem {
	var items []entity.InvoiceItem

	if in.BillingMode == entity.BillingModeMonthlyFixed {
		if in.Classified.Total() > 0 {
			items = append(items, entity.InvoiceItem{
				Type:        entity.ItemSessaoRegular,
				Description: MonthlyFeeItemDescription,
				Quantity:    1,
				UnitPrice:   in.MonthlyFee,
				Total:       in.MonthlyFee,
			})
		}
	} else {
		items = append(items, appointmentItems(in.Classified.Regular, entity.ItemSessaoRegular, RegularItemDescription, in)...)
		items = append(items, appointmentItems(in.Classified.Extra, entity.ItemSessaoExtra, ExtraItemDescription, in)...)
		items = append(items, appointmentItems(in.Classified.Group, entity.ItemSessaoGrupo, GroupItemDescription, in)...)
		items = append(items, appointmentItems(in.Classified.SchoolMeetings, entity.ItemReuniaoEscola, SchoolMeetingItemDescription, in)...)
	}

	for range in.Credits {
		items = append(items, entity.InvoiceItem{
			Type:        entity.ItemCredito,
			Description: CreditItemDescription,
			Quantity:    -1,
			UnitPrice:   in.SessionFee,
			Total:       in.SessionFee.Neg(),
		})
	}

	for i := range items {
		items[i].SortOrder = i
	}

	return items
}

func appointmentItems(appointments []entity.Appointment, itemType entity.InvoiceItemType, description string, in InvoiceInput) []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, 0, len(appointments))
	for _, a := range appointments {
		a := a
		unitPrice := a.UnitPrice(in.SessionFee)

		desc := description
		if in.ShowAppointmentDays {
			desc = fmt.Sprintf("%s - %s", description, a.ScheduledAt.Format("02/01"))
		}

		items = append(items, entity.InvoiceItem{
			Type:          itemType,
			Description:   desc,
			Quantity:      1,
			UnitPrice:     unitPrice,
			Total:         unitPrice,
			AppointmentID: &a.ID,
		})
	}
	return items
}

// OffsetSortOrders re-stamps freshly built items so they list after every
// preserved line: manual lines keep their positions, regenerated lines
// follow in builder order.
func OffsetSortOrders(items, preserved []entity.InvoiceItem) []entity.InvoiceItem {
	next := 0
	for _, p := range preserved {
		if p.SortOrder >= next {
			next = p.SortOrder + 1
		}
	}
	for i := range items {
		items[i].SortOrder = next + i
	}
	return items
}

// CalculateInvoiceTotals derives the invoice rollup from its items. The sum
// is additive and order-independent: totalAmount is the signed sum of all
// item totals, totalSessions excludes credit lines, extrasAdded counts
// SESSAO_EXTRA and REUNIAO_ESCOLA quantities.
func CalculateInvoiceTotals(items []entity.InvoiceItem) InvoiceTotals {
	totals := InvoiceTotals{TotalAmount: decimal.Zero}

	for _, item := range items {
		totals.TotalAmount = totals.TotalAmount.Add(item.Total)

		if item.Type == entity.ItemCredito {
			if item.Quantity < 0 {
				totals.CreditsApplied += -item.Quantity
			} else {
				totals.CreditsApplied += item.Quantity
			}
			continue
		}

		totals.TotalSessions += item.Quantity
		if item.Type == entity.ItemSessaoExtra || item.Type == entity.ItemReuniaoEscola {
			totals.ExtrasAdded += item.Quantity
		}
	}

	return totals
}
