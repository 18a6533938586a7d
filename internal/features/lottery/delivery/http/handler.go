package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "charity-lottery-backend/internal/common/errors"
	"charity-lottery-backend/internal/common/validation"
	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/mapper"
	"charity-lottery-backend/internal/features/lottery/models"
	lotteryservice "charity-lottery-backend/internal/features/lottery/service"
)

type LotteryHandler struct {
	service lotteryservice.LotteryService
}

func NewLotteryHandler(service lotteryservice.LotteryService) *LotteryHandler {
	return &LotteryHandler{service: service}
}

// RegisterRoutes mounts the lottery API. auth resolves the caller for every
// mutating route; depositGuard additionally restricts deposits.
func (h *LotteryHandler) RegisterRoutes(router *gin.RouterGroup, auth, depositGuard gin.HandlerFunc) {
	lotteries := router.Group("/lotteries")
	{
		lotteries.GET("", h.list)
		lotteries.GET("/:id", h.getByID)
		lotteries.GET("/:id/balances/:account", h.getBalance)
	}

	signed := lotteries.Group("", auth)
	{
		signed.POST("", h.create)
		signed.POST("/:id/start", h.start)
		signed.POST("/:id/seed", h.seed)
		signed.POST("/:id/participate", h.participate)
		signed.POST("/:id/reveal", h.reveal)
		signed.POST("/:id/end", h.end)
		signed.POST("/:id/cancel", h.cancel)
		signed.POST("/:id/deposit", depositGuard, h.deposit)
		signed.POST("/:id/withdraw", h.withdraw)
	}
}

// @Summary Create a lottery
// @Description Creates an unconfigured lottery owned by the caller. Policy fields left empty use the server defaults.
// @Tags lotteries
// @Accept json
// @Produce json
// @Security CallerSignature
// @Param X-Caller header string true "Caller address"
// @Param X-Timestamp header int false "Unix seconds covered by the signature"
// @Param input body models.CreateLotteryRequest false "Policy overrides"
// @Success 201 {object} models.LotteryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /lotteries [post]
func (h *LotteryHandler) create(c *gin.Context) {
	var input models.CreateLotteryRequest
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	var policy *contract.Policy
	if input.EndAuthority != "" || input.NoRevealers != "" {
		policy = &contract.Policy{
			EndAuthority: contract.EndAuthority(input.EndAuthority),
			NoRevealers:  contract.NoRevealersPolicy(input.NoRevealers),
		}
	}

	l, err := h.service.Create(c.Request.Context(), callerOf(c), policy)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.ToLotteryResponse(l))
}

// @Summary List lotteries
// @Tags lotteries
// @Produce json
// @Success 200 {object} models.LotteryListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /lotteries [get]
func (h *LotteryHandler) list(c *gin.Context) {
	lotteries, err := h.service.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToLotteryListResponse(lotteries))
}

// @Summary Get a lottery
// @Tags lotteries
// @Produce json
// @Param id path string true "Lottery ID"
// @Success 200 {object} models.LotteryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /lotteries/{id} [get]
func (h *LotteryHandler) getByID(c *gin.Context) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToLotteryResponse(l))
}

// @Summary Get an account balance
// @Description Returns the account's ledger balance: its deposits while live, its refund once cancelled, its share once ended.
// @Tags lotteries
// @Produce json
// @Param id path string true "Lottery ID"
// @Param account path string true "Account address"
// @Success 200 {object} models.BalanceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/balances/{account} [get]
func (h *LotteryHandler) getBalance(c *gin.Context) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	account, err := validation.ParseAddress(c.Param("account"), "account")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("account", err.Error()))
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), id, account)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToBalanceResponse(id, account, balance))
}

// @Summary Start a lottery
// @Description Owner only. Fixes the charity, the split, the entry price and the three deadlines, and opens the round.
// @Tags lotteries
// @Accept json
// @Produce json
// @Security CallerSignature
// @Param id path string true "Lottery ID"
// @Param X-Caller header string true "Caller address"
// @Param input body models.StartLotteryRequest true "Round configuration"
// @Success 200 {object} models.LotteryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/start [post]
func (h *LotteryHandler) start(c *gin.Context) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	var input models.StartLotteryRequest
	if !bind(c, &input) {
		return
	}

	charity, err := validation.ParseAddress(input.Charity, "charity")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("charity", err.Error()))
		return
	}
	valuePerEntry, err := validation.ParseUint256(input.ValuePerEntry, "value_per_entry")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("value_per_entry", err.Error()))
		return
	}

	cfg := contract.Config{
		Charity:       charity,
		CharitySplit:  input.CharitySplit,
		WinnerSplit:   input.WinnerSplit,
		OwnerSplit:    input.OwnerSplit,
		ValuePerEntry: valuePerEntry,
		StartTime:     input.StartTime,
		RevealTime:    input.RevealTime,
		EndTime:       input.EndTime,
	}
	l, err := h.service.Start(c.Request.Context(), id, callerOf(c), cfg)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToLotteryResponse(l))
}

// @Summary Seed the charity commitment
// @Description Charity only, once, during the commit window.
// @Tags lotteries
// @Accept json
// @Produce json
// @Security CallerSignature
// @Param id path string true "Lottery ID"
// @Param X-Caller header string true "Caller address"
// @Param input body models.CommitmentRequest true "keccak256(random ‖ charity)"
// @Success 200 {object} models.LotteryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/seed [post]
func (h *LotteryHandler) seed(c *gin.Context) {
	h.commit(c, h.service.Seed)
}

// @Summary Participate
// @Description Records the caller's commitment during the commit window. Requires the charity to have seeded.
// @Tags lotteries
// @Accept json
// @Produce json
// @Security CallerSignature
// @Param id path string true "Lottery ID"
// @Param X-Caller header string true "Caller address"
// @Param input body models.CommitmentRequest true "keccak256(random ‖ caller)"
// @Success 200 {object} models.LotteryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/participate [post]
func (h *LotteryHandler) participate(c *gin.Context) {
	h.commit(c, h.service.Participate)
}

// @Summary Reveal
// @Description Discloses the caller's random value during the reveal window.
// @Tags lotteries
// @Accept json
// @Produce json
// @Security CallerSignature
// @Param id path string true "Lottery ID"
// @Param X-Caller header string true "Caller address"
// @Param input body models.RevealRequest true "Random value"
// @Success 200 {object} models.LotteryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/reveal [post]
func (h *LotteryHandler) reveal(c *gin.Context) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	var input models.RevealRequest
	if !bind(c, &input) {
		return
	}
	random, err := validation.ParseUint256(input.Random, "random")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("random", err.Error()))
		return
	}

	l, err := h.service.Reveal(c.Request.Context(), id, callerOf(c), random)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToLotteryResponse(l))
}

// @Summary End a lottery
// @Description Discloses the charity's random value after the end time, selects the winner and splits the pot.
// @Tags lotteries
// @Accept json
// @Produce json
// @Security CallerSignature
// @Param id path string true "Lottery ID"
// @Param X-Caller header string true "Caller address"
// @Param input body models.EndLotteryRequest true "Charity random value"
// @Success 200 {object} models.LotteryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/end [post]
func (h *LotteryHandler) end(c *gin.Context) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	var input models.EndLotteryRequest
	if !bind(c, &input) {
		return
	}
	random, err := validation.ParseUint256(input.CharityRandom, "charity_random")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("charity_random", err.Error()))
		return
	}

	l, err := h.service.End(c.Request.Context(), id, callerOf(c), random)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToLotteryResponse(l))
}

// @Summary Cancel a lottery
// @Description Owner or charity. Makes every deposit refundable.
// @Tags lotteries
// @Produce json
// @Security CallerSignature
// @Param id path string true "Lottery ID"
// @Param X-Caller header string true "Caller address"
// @Success 200 {object} models.LotteryResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/cancel [post]
func (h *LotteryHandler) cancel(c *gin.Context) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	l, err := h.service.Cancel(c.Request.Context(), id, callerOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToLotteryResponse(l))
}

// @Summary Record a deposit
// @Description Payment relay only. Credits the payer named in the body. A payment id is credited once per lottery; repeats get 409.
// @Tags lotteries
// @Accept json
// @Produce json
// @Security CallerSignature
// @Param id path string true "Lottery ID"
// @Param X-Caller header string true "Relay address"
// @Param input body models.DepositRequest true "Payment id, payer and amount"
// @Success 200 {object} models.LotteryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/deposit [post]
func (h *LotteryHandler) deposit(c *gin.Context) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	var input models.DepositRequest
	if !bind(c, &input) {
		return
	}
	if err := validation.ValidatePaymentID(input.PaymentID, "payment_id"); err != nil {
		_ = c.Error(apperrors.NewValidationError("payment_id", err.Error()))
		return
	}
	from, err := validation.ParseNonZeroAddress(input.From, "from")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("from", err.Error()))
		return
	}
	amount, err := validation.ParsePositiveUint256(input.Amount, "amount")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("amount", err.Error()))
		return
	}

	l, err := h.service.Deposit(c.Request.Context(), id, input.PaymentID, from, amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToLotteryResponse(l))
}

// @Summary Withdraw
// @Description Releases the caller's whole balance once the lottery is cancelled or ended.
// @Tags lotteries
// @Produce json
// @Security CallerSignature
// @Param id path string true "Lottery ID"
// @Param X-Caller header string true "Caller address"
// @Success 200 {object} models.WithdrawResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /lotteries/{id}/withdraw [post]
func (h *LotteryHandler) withdraw(c *gin.Context) {
	id, ok := lotteryID(c)
	if !ok {
		return
	}
	caller := callerOf(c)
	amount, err := h.service.Withdraw(c.Request.Context(), id, caller)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ToWithdrawResponse(id, caller, amount))
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
