package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type LineGroup string

const (
	GroupMain        LineGroup = "main"
	GroupMounting    LineGroup = "mounting"
	GroupAccessories LineGroup = "accessories"
)

// LineItem is one priced product line of an order.
type LineItem struct {
	ProductID  int32           `json:"product_id"`
	Title      string          `json:"title"`
	Group      LineGroup       `json:"group"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	RentalDays int             `json:"rental_days"`
	Total      decimal.Decimal `json:"total"`
}

// LineItems lists the products that count toward the order, with the same
// selection rules Compute uses. Mounting takes precedence over accessories
// when a category carries both flags.
func LineItems(in Input) ([]LineItem, error) {
	days, err := resolveRentalDays(in)
	if err != nil {
		return nil, err
	}
	nDays := decimal.NewFromInt(int64(days))

	lines := selectedLines(in)
	items := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		group := GroupMain
		switch {
		case l.product.Category.IncludeMounting:
			group = GroupMounting
		case l.product.Category.IncludeAccessories:
			group = GroupAccessories
		}
		rate := l.product.DayRate(in.IsPrepaid)
		items = append(items, LineItem{
			ProductID:  l.product.ID,
			Title:      l.product.Title,
			Group:      group,
			Quantity:   int(l.qty.IntPart()),
			UnitPrice:  rate,
			RentalDays: days,
			Total:      l.qty.Mul(rate).Mul(nDays),
		})
	}
	return items, nil
}

const DefaultInvoiceNumberTemplate = "INV-{YYYY}{MM}{DD}-{SEQ6}"

var seqWidthRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// FormatInvoiceNumber expands date tokens ({YYYY} {YY} {MM} {DD}) and
// sequence tokens ({SEQ}, {SEQn} zero-padded to n digits) in template.
func FormatInvoiceNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := strings.NewReplacer(
		"{YYYY}", issuedAt.Format("2006"),
		"{YY}", issuedAt.Format("06"),
		"{MM}", issuedAt.Format("01"),
		"{DD}", issuedAt.Format("02"),
		"{SEQ}", strconv.FormatInt(seq, 10),
	).Replace(template)

	out = seqWidthRe.ReplaceAllStringFunc(out, func(tok string) string {
		width, err := strconv.Atoi(seqWidthRe.FindStringSubmatch(tok)[1])
		if err != nil || width <= 0 {
			return tok
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in invoice number: %s", out)
	}
	return out, nil
}
