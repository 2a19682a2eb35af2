// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// labels holds the receipt strings for one language
type labels struct {
	Title        string
	Receipt      string
	OrderNumber  string
	OrderDate    string
	DeliverTo    string
	Item         string
	Qty          string
	Price        string
	Total        string
	Subtotal     string
	GST          string
	PST          string
	PlatformFee  string
	DeliveryFee  string
	DeliveryDisc string
	GrandTotal   string
	Footer       string
}

var labelsByLanguage = map[string]labels{
	"en": {
		Title:        "Receipt",
		Receipt:      "RECEIPT",
		OrderNumber:  "Order #",
		OrderDate:    "Order Date",
		DeliverTo:    "Deliver To",
		Item:         "Item",
		Qty:          "Qty",
		Price:        "Price",
		Total:        "Total",
		Subtotal:     "Subtotal",
		GST:          "GST (5%)",
		PST:          "PST (7%)",
		PlatformFee:  "Platform Fee",
		DeliveryFee:  "Delivery Fee",
		DeliveryDisc: "Delivery Discount",
		GrandTotal:   "Total",
		Footer:       "Thank you for ordering with Lulo Market!",
	},
	"es": {
		Title:        "Recibo",
		Receipt:      "RECIBO",
		OrderNumber:  "Pedido #",
		OrderDate:    "Fecha del pedido",
		DeliverTo:    "Entregar a",
		Item:         "Producto",
		Qty:          "Cant.",
		Price:        "Precio",
		Total:        "Total",
		Subtotal:     "Subtotal",
		GST:          "GST (5%)",
		PST:          "PST (7%)",
		PlatformFee:  "Tarifa de plataforma",
		DeliveryFee:  "Costo de envío",
		DeliveryDisc: "Descuento de envío",
		GrandTotal:   "Total",
		Footer:       "¡Gracias por pedir en Lulo Market!",
	},
}

// receiptData represents the data passed to the receipt template
type receiptData struct {
	Order  *order.Order
	Labels labels
	Date   string
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": func(cents int64) string {
		return fmt.Sprintf("$%.2f", float64(cents)/100)
	},
}).Parse(receiptTemplate))

// GenerateReceipt renders a bilingual PDF receipt for a delivered order
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	lang := o.Language
	l, ok := labelsByLanguage[lang]
	if !ok {
		l = labelsByLanguage["en"]
	}

	dateFormat := "January 2, 2006"
	if lang == "es" {
		dateFormat = "02/01/2006"
	}

	data := receiptData{
		Order:  o,
		Labels: l,
		Date:   o.CreatedAt.Format(dateFormat),
	}

	var html bytes.Buffer
	if err := receiptTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render receipt template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html.Bytes()))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html lang="{{.Order.Language}}">
<head>
    <meta charset="UTF-8">
    <title>{{.Labels.Title}} {{.Order.OrderNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #16a34a;
            margin-bottom: 10px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #374151;
        }
        .delivery-info {
            margin-bottom: 30px;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 80px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 100px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>Lulo Market</h1>
            <p>{{.Order.StoreName}}</p>
        </div>
        <div style="text-align: right;">
            <div class="receipt-title">{{.Labels.Receipt}}</div>
            <p><strong>{{.Labels.OrderNumber}}:</strong> {{.Order.OrderNumber}}</p>
            <p><strong>{{.Labels.OrderDate}}:</strong> {{.Date}}</p>
        </div>
    </div>

    <div class="delivery-info">
        <div class="section-title">{{.Labels.DeliverTo}}:</div>
        <p><strong>{{.Order.CustomerName}}</strong></p>
        <p>{{.Order.DeliveryAddress.AddressLine1}}</p>
        {{if .Order.DeliveryAddress.AddressLine2}}<p>{{.Order.DeliveryAddress.AddressLine2}}</p>{{end}}
        <p>{{.Order.DeliveryAddress.City}}, {{.Order.DeliveryAddress.Province}} {{.Order.DeliveryAddress.PostalCode}}</p>
        <p>{{.Order.CustomerPhone}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>{{.Labels.Item}}</th>
                <th class="qty-col">{{.Labels.Qty}}</th>
                <th class="price-col">{{.Labels.Price}}</th>
                <th class="total-col">{{.Labels.Total}}</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td><strong>{{.Name}}</strong></td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{money .UnitPriceCents}}</td>
                <td class="total-col">{{money .TotalPriceCents}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">{{.Labels.Subtotal}}:</td>
                <td class="amount">{{money .Order.SubtotalCents}}</td>
            </tr>
            <tr>
                <td class="label">{{.Labels.GST}}:</td>
                <td class="amount">{{money .Order.GSTCents}}</td>
            </tr>
            <tr>
                <td class="label">{{.Labels.PST}}:</td>
                <td class="amount">{{money .Order.PSTCents}}</td>
            </tr>
            <tr>
                <td class="label">{{.Labels.PlatformFee}}:</td>
                <td class="amount">{{money .Order.PlatformFeeCents}}</td>
            </tr>
            <tr>
                <td class="label">{{.Labels.DeliveryFee}}:</td>
                <td class="amount">{{money .Order.DeliveryFeeCents}}</td>
            </tr>
            {{if gt .Order.DeliveryDiscountCents 0}}
            <tr>
                <td class="label">{{.Labels.DeliveryDisc}}:</td>
                <td class="amount">-{{money .Order.DeliveryDiscountCents}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td class="label">{{.Labels.GrandTotal}}:</td>
                <td class="amount">{{money .Order.TotalCents}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>{{.Labels.Footer}}</p>
    </div>
</body>
</html>
`
