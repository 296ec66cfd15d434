/*
handlers.go - HTTP request handlers

PURPOSE:
  Implements the register's HTTP surface on top of the accounting
  engine: auth, catalog and staff CRUD, tendered sales, daily reports,
  and the day-closure lifecycle. Handlers decode DTOs, call the engine,
  and map domain errors to status codes.

ERROR MAPPING:
  ErrInvalidInput        -> 400 invalid_input
  TenderMismatchError    -> 400 tender_mismatch (with amounts in details)
  ErrDuplicateEmployee.. -> 400 duplicate_employee_number
  missing/bad token      -> 401 (middleware)
  non-admin on admin op  -> 403 (middleware)
  ErrNotFound            -> 404 not_found
  ErrAlreadyClosed       -> 409 already_closed
  anything else          -> 500 storage_error

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Route wiring and middleware
  - pos/: The engine these handlers front
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ampos/pos-engine/auth"
	"github.com/ampos/pos-engine/pos"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	store      pos.Store
	tokens     *auth.TokenManager
	ledger     *pos.SaleLedger
	aggregator *pos.Aggregator
	closer     *pos.Closer
}

// NewHandler wires the engine components over one store. A nil clock
// defaults to the system clock.
func NewHandler(store pos.Store, tokens *auth.TokenManager, clock pos.Clock) *Handler {
	return &Handler{
		store:      store,
		tokens:     tokens,
		ledger:     pos.NewSaleLedger(store, clock),
		aggregator: pos.NewAggregator(store, clock),
		closer:     pos.NewCloser(store, store, clock),
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeDomainError maps engine errors to HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	var mismatch *pos.TenderMismatchError
	if errors.As(err, &mismatch) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "tendered amount does not match total",
			Code:  "tender_mismatch",
			Details: map[string]float64{
				"total_amount": mismatch.Total.InexactFloat64(),
				"total_paid":   mismatch.Tendered.InexactFloat64(),
				"difference":   mismatch.Difference.InexactFloat64(),
			},
		})
		return
	}
	switch {
	case errors.Is(err, pos.ErrDuplicateEmployeeNumber):
		writeError(w, http.StatusBadRequest, "employee number already in use", "duplicate_employee_number")
	case errors.Is(err, pos.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input", "invalid_input")
	case errors.Is(err, pos.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", "not_found")
	case errors.Is(err, pos.ErrAlreadyClosed):
		writeError(w, http.StatusConflict, "day already closed", "already_closed")
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "storage_error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", "invalid_input")
		return false
	}
	return true
}

func identityOrDeny(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", "unauthorized")
		return nil, false
	}
	return id, true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// CheckEmployee reports whether an employee number exists, so the login
// screen can prompt for a password only after a valid number.
func (h *Handler) CheckEmployee(w http.ResponseWriter, r *http.Request) {
	var req CheckEmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.EmployeeNumber) == "" {
		writeError(w, http.StatusBadRequest, "employee number is required", "invalid_input")
		return
	}

	employee, err := h.store.GetEmployeeByNumber(r.Context(), req.EmployeeNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if employee == nil {
		writeError(w, http.StatusNotFound, "employee not found", "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "name": employee.Name})
}

// Login verifies credentials and issues a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.EmployeeNumber == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "employee number and password are required", "invalid_input")
		return
	}

	employee, err := h.store.GetEmployeeByNumber(r.Context(), req.EmployeeNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if employee == nil || !auth.CheckPassword(employee.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "unauthorized")
		return
	}

	token, err := h.tokens.Issue(*employee)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	redirect := "/cashier.html"
	if employee.Role == pos.RoleAdmin {
		redirect = "/admin.html"
	}
	writeJSON(w, http.StatusOK, LoginResponse{
		Success:  true,
		User:     toUserDTO(*employee),
		Token:    token,
		Redirect: redirect,
	})
}

// CheckAuth echoes the verified identity back to the client.
func (h *Handler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	id, ok := identityOrDeny(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": UserDTO{
			ID:             id.EmployeeID,
			Name:           id.Name,
			EmployeeNumber: id.EmployeeNumber,
			Role:           string(id.Role),
		},
	})
}

// Logout exists for client symmetry; tokens are stateless so there is
// nothing to invalidate server-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Category == "" || req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "name, category, and a positive price are required", "invalid_input")
		return
	}

	product := &pos.Product{
		Name:      req.Name,
		Price:     decimal.NewFromFloat(req.Price),
		Category:  req.Category,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
	}
	if err := h.store.CreateProduct(r.Context(), product); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(*product))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id", "invalid_input")
		return
	}
	var req ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Category == "" || req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "name, category, and a positive price are required", "invalid_input")
		return
	}

	product := &pos.Product{
		ID:        id,
		Name:      req.Name,
		Price:     decimal.NewFromFloat(req.Price),
		Category:  req.Category,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
	}
	if err := h.store.UpdateProduct(r.Context(), product); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(*product))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id", "invalid_input")
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.store.ListEmployees(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = EmployeeDTO{
			ID:             e.ID,
			Name:           e.Name,
			EmployeeNumber: e.EmployeeNumber,
			Role:           string(e.Role),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.EmployeeNumber == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, employee number, and password are required", "invalid_input")
		return
	}
	role := pos.Role(req.Role)
	if !pos.ValidRole(role) {
		writeError(w, http.StatusBadRequest, "role must be admin or cashier", "invalid_input")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	employee := &pos.Employee{
		Name:           req.Name,
		EmployeeNumber: req.EmployeeNumber,
		PasswordHash:   hash,
		Role:           role,
	}
	if err := h.store.CreateEmployee(r.Context(), employee); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, EmployeeDTO{
		ID:             employee.ID,
		Name:           employee.Name,
		EmployeeNumber: employee.EmployeeNumber,
		Role:           string(employee.Role),
	})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id", "invalid_input")
		return
	}
	var req EmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.EmployeeNumber == "" {
		writeError(w, http.StatusBadRequest, "name and employee number are required", "invalid_input")
		return
	}
	role := pos.Role(req.Role)
	if !pos.ValidRole(role) {
		writeError(w, http.StatusBadRequest, "role must be admin or cashier", "invalid_input")
		return
	}

	// Empty password keeps the stored hash.
	hash := ""
	if req.Password != "" {
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}
	employee := &pos.Employee{
		ID:             id,
		Name:           req.Name,
		EmployeeNumber: req.EmployeeNumber,
		PasswordHash:   hash,
		Role:           role,
	}
	if err := h.store.UpdateEmployee(r.Context(), employee); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EmployeeDTO{
		ID:             employee.ID,
		Name:           employee.Name,
		EmployeeNumber: employee.EmployeeNumber,
		Role:           string(employee.Role),
	})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id", "invalid_input")
		return
	}
	if err := h.store.DeleteEmployee(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// =============================================================================
// SALES HANDLERS
// =============================================================================

// ProcessPayment records a tendered sale attributed to the signed-in
// employee. Validation and the 0.01 tolerance live in the engine.
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := identityOrDeny(w, r)
	if !ok {
		return
	}
	var req ProcessPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items := make([]pos.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = pos.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     decimal.NewFromFloat(item.Price),
		}
	}
	tenders := make([]pos.Tender, len(req.Payments))
	for i, t := range req.Payments {
		tenders[i] = pos.Tender{
			Method: pos.TenderMethod(t.Method),
			Amount: decimal.NewFromFloat(t.Amount),
		}
	}

	invoice, err := h.ledger.RecordSale(r.Context(), id.EmployeeID, items, tenders)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ProcessPaymentResponse{
		Success:     true,
		InvoiceID:   invoice.ID,
		DailyNumber: invoice.DailyNumber,
		TotalAmount: invoice.TotalAmount.InexactFloat64(),
		CashAmount:  invoice.CashAmount.InexactFloat64(),
		CardAmount:  invoice.CardAmount.InexactFloat64(),
		Payments:    toTenderDTOs(invoice.Tenders),
	})
}

// DailySales serves today's report with the midnight guard applied.
func (h *Handler) DailySales(w http.ResponseWriter, r *http.Request) {
	report, err := h.aggregator.TodayReport(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(report, false))
}

// SalesByDate serves an explicit date's report, guard-free, with the
// invoice list included for drill-down.
func (h *Handler) SalesByDate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required", "invalid_input")
		return
	}
	date, err := pos.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", "invalid_input")
		return
	}

	report, err := h.aggregator.ReportFor(r.Context(), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(report, true))
}

// InvoiceItems lists one invoice's lines with product names.
func (h *Handler) InvoiceItems(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := strconv.ParseInt(chi.URLParam(r, "invoiceID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid invoice id", "invalid_input")
		return
	}
	items, err := h.store.ItemsByInvoice(r.Context(), invoiceID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": toItemDTOs(items)})
}

// =============================================================================
// CLOSURE HANDLERS
// =============================================================================

// CloseDay snapshots today's aggregates into an immutable closure.
func (h *Handler) CloseDay(w http.ResponseWriter, r *http.Request) {
	id, ok := identityOrDeny(w, r)
	if !ok {
		return
	}
	closure, err := h.closer.Close(r.Context(), id.EmployeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CloseDayResponse{Success: true, Data: toClosureDTO(closure)})
}

// RestoreDay returns a closed date's snapshot plus its invoices with
// items. Read-only: nothing is reopened or mutated.
func (h *Handler) RestoreDay(w http.ResponseWriter, r *http.Request) {
	var req RestoreDayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := pos.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", "invalid_input")
		return
	}

	closure, invoices, err := h.closer.Restore(r.Context(), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		dtos[i] = toInvoiceDTO(inv, true)
	}
	writeJSON(w, http.StatusOK, RestoreDayResponse{
		Success:  true,
		Closure:  toClosureDTO(closure),
		Invoices: dtos,
	})
}
