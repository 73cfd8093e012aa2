package handler

import (
	"context"
	"net/http"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/usecase"
)

// PostingHandler handles typed posting requests.
type PostingHandler struct {
	postingUC *usecase.PostingUseCase
}

// NewPostingHandler creates a new PostingHandler.
func NewPostingHandler(postingUC *usecase.PostingUseCase) *PostingHandler {
	return &PostingHandler{postingUC: postingUC}
}

// SalesInvoice posts a sales invoice.
func (h *PostingHandler) SalesInvoice(w http.ResponseWriter, r *http.Request) {
	h.invoice(w, r, h.postingUC.PostSalesInvoice)
}

// PurchaseInvoice posts a purchase invoice.
func (h *PostingHandler) PurchaseInvoice(w http.ResponseWriter, r *http.Request) {
	h.invoice(w, r, h.postingUC.PostPurchaseInvoice)
}

// SalesReturn posts a sales return.
func (h *PostingHandler) SalesReturn(w http.ResponseWriter, r *http.Request) {
	h.invoice(w, r, h.postingUC.PostSalesReturn)
}

// PurchaseReturn posts a purchase return.
func (h *PostingHandler) PurchaseReturn(w http.ResponseWriter, r *http.Request) {
	h.invoice(w, r, h.postingUC.PostPurchaseReturn)
}

func (h *PostingHandler) invoice(w http.ResponseWriter, r *http.Request, post func(ctx context.Context, input usecase.InvoiceInput) (*usecase.PostResult, error)) {
	var req dto.InvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := post(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writePostResult(w, result)
}

// Receipt posts a customer receipt.
func (h *PostingHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	h.cashMovement(w, r, h.postingUC.PostReceipt)
}

// Payment posts a supplier payment.
func (h *PostingHandler) Payment(w http.ResponseWriter, r *http.Request) {
	h.cashMovement(w, r, h.postingUC.PostPayment)
}

func (h *PostingHandler) cashMovement(w http.ResponseWriter, r *http.Request, post func(ctx context.Context, input usecase.CashMovementInput) (*usecase.PostResult, error)) {
	var req dto.CashMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := post(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writePostResult(w, result)
}

// StockAdjustment posts a stock revaluation.
func (h *PostingHandler) StockAdjustment(w http.ResponseWriter, r *http.Request) {
	var req dto.StockAdjustmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.postingUC.PostStockAdjustment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writePostResult(w, result)
}

// StockTransfer posts an inventory movement between locations.
func (h *PostingHandler) StockTransfer(w http.ResponseWriter, r *http.Request) {
	var req dto.StockTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.postingUC.PostStockTransfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writePostResult(w, result)
}

// writePostResult writes a posting result. Replays answer 200 with a
// marker header; first-time postings answer 201.
func writePostResult(w http.ResponseWriter, result *usecase.PostResult) {
	status := http.StatusCreated
	if result.IsReplay {
		status = http.StatusOK
		w.Header().Set("X-Idempotency-Replay", "true")
	}

	writeJSON(w, status, dto.PostResponseFromResult(result))
}
