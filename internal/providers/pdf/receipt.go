package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReceiptData is everything the renderer needs, pre-formatted. Money
// fields arrive as display strings so formatting stays in one place.
type ReceiptData struct {
	HotelName   string
	BillNumber  string
	Ticket      string
	TableNumber string
	WaiterName  string
	PaidAt      string
	PaymentMode string

	Items []ReceiptLine

	Subtotal      string
	Tax           string
	ServiceCharge string
	Discount      string
	Total         string

	FooterText string
}

type ReceiptLine struct {
	Name      string
	Qty       int
	UnitPrice string
	Amount    string
}

type ReceiptRenderer struct{}

func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{}
}

// Render produces the printable receipt PDF for a paid bill.
func (p *ReceiptRenderer) Render(ctx context.Context, data ReceiptData) (io.Reader, error) {
	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(12, data.HotelName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Bill: "+data.BillNumber, props.Text{Size: 9}),
			text.New("Ticket: "+data.Ticket, props.Text{Size: 9, Top: 4}),
			text.New("Table: "+data.TableNumber, props.Text{Size: 9, Top: 8}),
		),
		col.New(6).Add(
			text.New("Paid: "+data.PaidAt, props.Text{Size: 9, Align: align.Right}),
			text.New("Mode: "+data.PaymentMode, props.Text{Size: 9, Top: 4, Align: align.Right}),
			text.New("Served by: "+data.WaiterName, props.Text{Size: 9, Top: 8, Align: align.Right}),
		),
	)

	m.AddRow(8,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(6, item.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Tax", props.Text{Size: 9}),
		text.NewCol(2, data.Tax, props.Text{Size: 9, Align: align.Right}),
	)
	if data.ServiceCharge != "" {
		m.AddRow(7,
			col.New(8),
			text.NewCol(2, "Service", props.Text{Size: 9}),
			text.NewCol(2, data.ServiceCharge, props.Text{Size: 9, Align: align.Right}),
		)
	}
	if data.Discount != "" {
		m.AddRow(7,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, "-"+data.Discount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(9,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	if data.FooterText != "" {
		m.AddRow(14,
			text.NewCol(12, data.FooterText, props.Text{
				Size:  9,
				Align: align.Center,
				Top:   6,
			}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
