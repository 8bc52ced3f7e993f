package pricing

import (
	"testing"
	"time"

	"rentaldesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	p, err := Compute(scenarioInput())
	require.NoError(t, err)

	s := Summarize(p, "")
	assert.Equal(t, "CAD", s.Currency)

	labels := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		labels = append(labels, l.Label)
	}
	assert.Equal(t, []string{
		LabelEquipment, LabelLabour, LabelInsurance, LabelConsumables, LabelAdminFees, LabelDelivery,
	}, labels)

	assert.Equal(t, "$600.00", s.Lines[0].Display)
	assert.Equal(t, "$973.30", s.Subtotal.Display)
	require.Len(t, s.Taxes, 1)
	assert.Equal(t, "GST 5%", s.Taxes[0].Label)
	assert.Equal(t, "$48.67", s.Taxes[0].Display)
	assert.Equal(t, "Total (CAD)", s.Total.Label)
	assert.Equal(t, "$1,021.97", s.Total.Display)
	assertMoney(t, "1021.97", s.Total.Amount, "total")
}

func TestSummarize_ExtraLabourAndZeroTax(t *testing.T) {
	in := scenarioInput()
	in.Selection.MountingRequired = true
	in.Tax = domain.TaxConfig{"none": dec("0")}

	p, err := Compute(in)
	require.NoError(t, err)

	s := Summarize(p, "USD")
	assert.Equal(t, LabelExtraLabour, s.Lines[2].Label)
	assert.Equal(t, "$160.00", s.Lines[2].Display)
	assert.Empty(t, s.Taxes)
	assert.Equal(t, "Total (USD)", s.Total.Label)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney(dec("0")))
	assert.Equal(t, "$0.29", FormatMoney(dec("0.285")))
	assert.Equal(t, "$12.30", FormatMoney(dec("12.3")))
	assert.Equal(t, "$1,234,567.89", FormatMoney(dec("1234567.891")))
	assert.Equal(t, "-$5.00", FormatMoney(dec("-5")))
	assert.Equal(t, "$123,456,789,012,345,678.91", FormatMoney(dec("123456789012345678.905")))
	assert.Equal(t, "$90,071,992,547,409.93", FormatMoney(dec("90071992547409.93")))
	assert.Equal(t, "$99999999999999999999.99", FormatMoney(dec("99999999999999999999.99")))
}

func TestLineItems(t *testing.T) {
	in := Input{
		RentalDays: 2,
		Selection: domain.EquipmentSelection{
			Quantities:       map[int32]int{1: 1, 2: 2, 3: 4},
			MountingRequired: true,
		},
		Catalog: domain.Catalog{
			Products: []domain.Product{
				product(1, screens.ID, "100", "100"),
				product(2, mounts.ID, "25", "25"),
				product(3, cables.ID, "2.5", "3"),
			},
			Categories: testCats,
		},
		IsPrepaid: true,
	}

	items, err := LineItems(in)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, GroupMain, items[0].Group)
	assert.Equal(t, GroupMounting, items[1].Group)
	assert.Equal(t, GroupAccessories, items[2].Group)
	assertMoney(t, "20", items[2].Total, "accessories")

	in.Selection.MountingRequired = false
	items, err = LineItems(in)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFormatInvoiceNumber(t *testing.T) {
	issued := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	n, err := FormatInvoiceNumber(DefaultInvoiceNumberTemplate, issued, 42)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260315-000042", n)

	n, err = FormatInvoiceNumber("{YY}/{SEQ}", issued, 7)
	require.NoError(t, err)
	assert.Equal(t, "26/7", n)

	_, err = FormatInvoiceNumber(DefaultInvoiceNumberTemplate, issued, 0)
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{XX}", issued, 1)
	assert.Error(t, err)
}
