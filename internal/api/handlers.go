package api

import (
	"credit-account/internal/account"
	"credit-account/internal/observability"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AmountRequest struct {
	Amount *int64 `json:"amount"`
}

type OperationResponse struct {
	AccountID uuid.UUID     `json:"account_id"`
	Operation account.Op    `json:"operation"`
	Applied   bool          `json:"applied"`
	Account   account.State `json:"account"`
	Error     string        `json:"error,omitempty"`
}

type AccountResponse struct {
	AccountID uuid.UUID     `json:"account_id"`
	Account   account.State `json:"account"`
	Bound     int64         `json:"bound"`
}

// Handlers serves a single account. The account itself has no locking, so
// every operation and the state read that follows it run under mu.
type Handlers struct {
	logger  *zap.Logger
	metrics *observability.Metrics
	meter   *observability.AccountMeter

	id      uuid.UUID
	mu      sync.Mutex
	account *account.Account
}

func NewHandlers(logger *zap.Logger, metrics *observability.Metrics, meter *observability.AccountMeter, acc *account.Account) *Handlers {
	h := &Handlers{
		logger:  logger,
		metrics: metrics,
		meter:   meter,
		id:      uuid.New(),
		account: acc,
	}
	if metrics != nil {
		metrics.SetState(acc.State())
	}
	return h
}

func (h *Handlers) AccountID() uuid.UUID {
	return h.id
}

// Health handles GET /healthz
//
//	@Summary		Health check
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Router			/healthz [get]
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// GetAccount handles GET /v1/account
//
//	@Summary		Get account
//	@Description	Current balance, credit limit and blocked flag
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	AccountResponse
//	@Router			/v1/account [get]
func (h *Handlers) GetAccount(c *fiber.Ctx) error {
	h.mu.Lock()
	state := h.account.State()
	h.mu.Unlock()

	return c.JSON(AccountResponse{
		AccountID: h.id,
		Account:   state,
		Bound:     account.Bound,
	})
}

// Deposit handles POST /v1/account/deposit
//
//	@Summary		Deposit
//	@Description	Add amount to the balance; rejected while blocked or at the bound
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AmountRequest		true	"Amount"
//	@Success		200		{object}	OperationResponse	"Applied"
//	@Failure		400		{object}	map[string]string	"Bad request"
//	@Failure		409		{object}	OperationResponse	"Rejected"
//	@Router			/v1/account/deposit [post]
func (h *Handlers) Deposit(c *fiber.Ctx) error {
	amount, err := parseAmount(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.apply(c, account.OpDeposit, func(a *account.Account) bool {
		return a.Deposit(amount)
	}, zap.Int64("amount", amount))
}

// Withdraw handles POST /v1/account/withdraw
//
//	@Summary		Withdraw
//	@Description	Subtract amount from the balance; rejected while blocked
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AmountRequest		true	"Amount"
//	@Success		200		{object}	OperationResponse	"Applied"
//	@Failure		400		{object}	map[string]string	"Bad request"
//	@Failure		409		{object}	OperationResponse	"Rejected"
//	@Router			/v1/account/withdraw [post]
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	amount, err := parseAmount(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.apply(c, account.OpWithdraw, func(a *account.Account) bool {
		return a.Withdraw(amount)
	}, zap.Int64("amount", amount))
}

// SetMaxCredit handles PUT /v1/account/max-credit
//
//	@Summary		Set credit limit
//	@Description	Change the credit limit; only while blocked
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			request	body		AmountRequest		true	"Amount"
//	@Success		200		{object}	OperationResponse	"Applied"
//	@Failure		400		{object}	map[string]string	"Bad request"
//	@Failure		401		{object}	map[string]string	"Missing or invalid API key"
//	@Failure		409		{object}	OperationResponse	"Rejected"
//	@Router			/v1/account/max-credit [put]
func (h *Handlers) SetMaxCredit(c *fiber.Ctx) error {
	amount, err := parseAmount(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.apply(c, account.OpSetMaxCredit, func(a *account.Account) bool {
		return a.SetMaxCredit(amount)
	}, zap.Int64("amount", amount))
}

// Block handles POST /v1/account/block
//
//	@Summary		Block account
//	@Description	Disable deposits and withdrawals
//	@Tags			Account
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200		{object}	OperationResponse	"Applied"
//	@Failure		401		{object}	map[string]string	"Missing or invalid API key"
//	@Failure		409		{object}	OperationResponse	"Rejected"
//	@Router			/v1/account/block [post]
func (h *Handlers) Block(c *fiber.Ctx) error {
	return h.apply(c, account.OpBlock, func(a *account.Account) bool {
		a.Block()
		return true
	})
}

// Unblock handles POST /v1/account/unblock
//
//	@Summary		Unblock account
//	@Description	Re-enable the account once the balance is within the credit limit
//	@Tags			Account
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200		{object}	OperationResponse	"Applied"
//	@Failure		401		{object}	map[string]string	"Missing or invalid API key"
//	@Failure		409		{object}	OperationResponse	"Rejected"
//	@Router			/v1/account/unblock [post]
func (h *Handlers) Unblock(c *fiber.Ctx) error {
	return h.apply(c, account.OpUnblock, func(a *account.Account) bool {
		return a.Unblock()
	})
}

func (h *Handlers) apply(c *fiber.Ctx, op account.Op, fn func(*account.Account) bool, fields ...zap.Field) error {
	h.mu.Lock()
	applied := fn(h.account)
	state := h.account.State()
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.RecordOperation(op, applied, state)
	}
	if h.meter != nil {
		h.meter.Record(c.UserContext(), op, applied)
	}

	fields = append(fields,
		zap.String("operation", string(op)),
		zap.Bool("applied", applied),
		zap.Int64("balance", state.Balance),
		zap.Int64("max_credit", state.MaxCredit),
		zap.Bool("blocked", state.Blocked),
	)
	h.logger.Info("account operation", fields...)

	resp := OperationResponse{
		AccountID: h.id,
		Operation: op,
		Applied:   applied,
		Account:   state,
	}
	if !applied {
		// Rejection is a normal outcome, not a server fault.
		resp.Error = fmt.Sprintf("%s rejected", op)
		return c.Status(fiber.StatusConflict).JSON(resp)
	}
	return c.JSON(resp)
}

func parseAmount(c *fiber.Ctx) (int64, error) {
	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, errors.New("invalid request")
	}
	if req.Amount == nil {
		return 0, errors.New("amount is required")
	}
	return *req.Amount, nil
}
