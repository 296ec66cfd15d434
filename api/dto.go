/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  domain model (decimal amounts, typed enums) from the wire contract
  (plain numbers and strings the register UI consumes).

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - pos/report.go: The domain report these mirror
*/
package api

import (
	"time"

	"github.com/ampos/pos-engine/pos"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// UserDTO is the authenticated employee exposed to clients. The
// password hash never appears here.
type UserDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	EmployeeNumber string `json:"employee_number"`
	Role           string `json:"role"`
}

// LoginRequest is the sign-in body.
type LoginRequest struct {
	EmployeeNumber string `json:"employee_number"`
	Password       string `json:"password"`
}

// LoginResponse carries the issued token and the role-based landing page.
type LoginResponse struct {
	Success  bool    `json:"success"`
	User     UserDTO `json:"user"`
	Token    string  `json:"token"`
	Redirect string  `json:"redirect"`
}

// CheckEmployeeRequest asks whether an employee number exists.
type CheckEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number"`
}

// ProductDTO represents a catalog product.
type ProductDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url"`
	SortOrder int     `json:"sort_order"`
}

// ProductRequest is the create/update body for products.
type ProductRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url"`
	SortOrder int     `json:"sort_order"`
}

// EmployeeDTO represents an employee in admin listings.
type EmployeeDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	EmployeeNumber string `json:"employee_number"`
	Role           string `json:"role"`
}

// EmployeeRequest is the create/update body for employees. Password is
// required on create; on update an empty password keeps the stored one.
type EmployeeRequest struct {
	Name           string `json:"name"`
	EmployeeNumber string `json:"employee_number"`
	Password       string `json:"password"`
	Role           string `json:"role"`
}

// ItemInput is one proposed sale line.
type ItemInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

// TenderInput is one proposed payment entry.
type TenderInput struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// ProcessPaymentRequest is the tendered-sale body.
type ProcessPaymentRequest struct {
	Items    []ItemInput   `json:"items"`
	Payments []TenderInput `json:"payments"`
}

// TenderDTO is one recorded payment entry.
type TenderDTO struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// ProcessPaymentResponse is returned after a successful sale.
type ProcessPaymentResponse struct {
	Success     bool        `json:"success"`
	InvoiceID   int64       `json:"invoice_id"`
	DailyNumber int64       `json:"daily_number"`
	TotalAmount float64     `json:"total_amount"`
	CashAmount  float64     `json:"cash_amount"`
	CardAmount  float64     `json:"card_amount"`
	Payments    []TenderDTO `json:"payments"`
}

// InvoiceItemDTO is one invoice line with its product name joined.
type InvoiceItemDTO struct {
	ProductID   int64   `json:"product_id"`
	ProductName *string `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceDTO is a recorded sale in listings and restores.
type InvoiceDTO struct {
	ID            int64            `json:"id"`
	Date          string           `json:"date"`
	CreatedAt     string           `json:"created_at"`
	EmployeeID    int64            `json:"employee_id"`
	EmployeeName  *string          `json:"employee_name"`
	TotalAmount   float64          `json:"total_amount"`
	PaymentMethod string           `json:"payment_method"`
	CashAmount    float64          `json:"cash_amount"`
	CardAmount    float64          `json:"card_amount"`
	Payments      []TenderDTO      `json:"payments"`
	DailyNumber   int64            `json:"daily_number"`
	Items         []InvoiceItemDTO `json:"items,omitempty"`
}

// EmployeeSalesDTO is one employee's aggregate for a date.
type EmployeeSalesDTO struct {
	EmployeeName  *string `json:"employee_name"`
	TotalSales    float64 `json:"total_sales"`
	TotalInvoices int64   `json:"total_invoices"`
}

// ProductSalesDTO is one product's aggregate for a date.
type ProductSalesDTO struct {
	ProductName   *string `json:"product_name"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// DailyReportDTO is the sales report for one date.
type DailyReportDTO struct {
	Date            string             `json:"date"`
	TotalSales      float64            `json:"total_sales"`
	TaxAmount       float64            `json:"tax_amount"`
	NetSales        float64            `json:"net_sales"`
	TotalInvoices   int64              `json:"total_invoices"`
	CashSales       float64            `json:"cash_sales"`
	CardSales       float64            `json:"card_sales"`
	ResetAtMidnight bool               `json:"reset_at_midnight"`
	EmployeeSales   []EmployeeSalesDTO `json:"employee_sales"`
	ProductSales    []ProductSalesDTO  `json:"product_sales"`
	Invoices        []InvoiceDTO       `json:"invoices,omitempty"`
}

// ClosureDTO is an end-of-day snapshot.
type ClosureDTO struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	TotalSales    float64 `json:"total_sales"`
	TotalTax      float64 `json:"total_tax"`
	NetSales      float64 `json:"net_sales"`
	TotalInvoices int64   `json:"total_invoices"`
	ClosedBy      int64   `json:"closed_by"`
	ClosedAt      string  `json:"closed_at"`
}

// CloseDayResponse is returned after closing the current day.
type CloseDayResponse struct {
	Success bool       `json:"success"`
	Data    ClosureDTO `json:"data"`
}

// RestoreDayRequest asks for a closed date's snapshot.
type RestoreDayRequest struct {
	Date string `json:"date"`
}

// RestoreDayResponse carries the snapshot plus the date's invoices.
type RestoreDayResponse struct {
	Success  bool         `json:"success"`
	Closure  ClosureDTO   `json:"closure"`
	Invoices []InvoiceDTO `json:"invoices"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toUserDTO(e pos.Employee) UserDTO {
	return UserDTO{
		ID:             e.ID,
		Name:           e.Name,
		EmployeeNumber: e.EmployeeNumber,
		Role:           string(e.Role),
	}
}

func toProductDTO(p pos.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		SortOrder: p.SortOrder,
	}
}

func toTenderDTOs(tenders []pos.Tender) []TenderDTO {
	dtos := make([]TenderDTO, len(tenders))
	for i, t := range tenders {
		dtos[i] = TenderDTO{Method: string(t.Method), Amount: t.Amount.InexactFloat64()}
	}
	return dtos
}

func toInvoiceDTO(inv pos.Invoice, withItems bool) InvoiceDTO {
	dto := InvoiceDTO{
		ID:            inv.ID,
		Date:          inv.Date.String(),
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
		EmployeeID:    inv.EmployeeID,
		TotalAmount:   inv.TotalAmount.InexactFloat64(),
		PaymentMethod: string(inv.PaymentMethod),
		CashAmount:    inv.CashAmount.InexactFloat64(),
		CardAmount:    inv.CardAmount.InexactFloat64(),
		Payments:      toTenderDTOs(inv.Tenders),
		DailyNumber:   inv.DailyNumber,
	}
	if inv.EmployeeName != "" {
		name := inv.EmployeeName
		dto.EmployeeName = &name
	}
	if withItems {
		dto.Items = toItemDTOs(inv.Items)
	}
	return dto
}

func toItemDTOs(items []pos.InvoiceItem) []InvoiceItemDTO {
	dtos := make([]InvoiceItemDTO, len(items))
	for i, item := range items {
		dtos[i] = InvoiceItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.InexactFloat64(),
		}
		if item.ProductName != "" {
			name := item.ProductName
			dtos[i].ProductName = &name
		}
	}
	return dtos
}

func toReportDTO(report *pos.DailyReport, withInvoices bool) DailyReportDTO {
	dto := DailyReportDTO{
		Date:            report.Date.String(),
		TotalSales:      report.TotalSales.InexactFloat64(),
		TaxAmount:       report.TaxAmount.InexactFloat64(),
		NetSales:        report.NetSales.InexactFloat64(),
		TotalInvoices:   report.TotalInvoices,
		CashSales:       report.CashSales.InexactFloat64(),
		CardSales:       report.CardSales.InexactFloat64(),
		ResetAtMidnight: report.ResetAtMidnight,
		EmployeeSales:   make([]EmployeeSalesDTO, len(report.EmployeeSales)),
		ProductSales:    make([]ProductSalesDTO, len(report.ProductSales)),
	}
	for i, es := range report.EmployeeSales {
		dto.EmployeeSales[i] = EmployeeSalesDTO{
			EmployeeName:  es.EmployeeName,
			TotalSales:    es.TotalSales.InexactFloat64(),
			TotalInvoices: es.TotalInvoices,
		}
	}
	for i, ps := range report.ProductSales {
		dto.ProductSales[i] = ProductSalesDTO{
			ProductName:   ps.ProductName,
			TotalQuantity: ps.TotalQuantity,
			TotalRevenue:  ps.TotalRevenue.InexactFloat64(),
		}
	}
	if withInvoices {
		dto.Invoices = make([]InvoiceDTO, len(report.Invoices))
		for i, inv := range report.Invoices {
			dto.Invoices[i] = toInvoiceDTO(inv, false)
		}
	}
	return dto
}

func toClosureDTO(c *pos.DailyClosure) ClosureDTO {
	return ClosureDTO{
		ID:            c.ID,
		Date:          c.Date.String(),
		TotalSales:    c.TotalSales.InexactFloat64(),
		TotalTax:      c.TotalTax.InexactFloat64(),
		NetSales:      c.NetSales.InexactFloat64(),
		TotalInvoices: c.TotalInvoices,
		ClosedBy:      c.ClosedBy,
		ClosedAt:      c.ClosedAt.Format(time.RFC3339),
	}
}
