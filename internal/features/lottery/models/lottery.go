package models

// Amounts and random values travel as strings: decimal or 0x-prefixed hex
// for requests, decimal for responses. 256-bit values do not fit JSON numbers.

// CreateLotteryRequest optionally overrides the server's default policy
type CreateLotteryRequest struct {
	EndAuthority string `json:"end_authority,omitempty" example:"charity"`
	NoRevealers  string `json:"no_revealers,omitempty" example:"reject"`
}

// StartLotteryRequest configures a created lottery
type StartLotteryRequest struct {
	Charity       string `json:"charity" binding:"required" example:"0x00000000000000000000000000000000000000c1"`
	CharitySplit  uint64 `json:"charity_split" example:"49"`
	WinnerSplit   uint64 `json:"winner_split" example:"49"`
	OwnerSplit    uint64 `json:"owner_split" example:"2"`
	ValuePerEntry string `json:"value_per_entry" binding:"required" example:"1000"`
	StartTime     uint64 `json:"start_time" example:"1700000060"`
	RevealTime    uint64 `json:"reveal_time" example:"1700000120"`
	EndTime       uint64 `json:"end_time" example:"1700000180"`
}

// CommitmentRequest carries a commitment for seed or participate
type CommitmentRequest struct {
	HashedRandom string `json:"hashed_random" binding:"required" example:"0x5f16f4c7f149ac4f9510d9cf8cf384038ad348b3bcdc01915f95de12df9d1b02"`
}

// RevealRequest discloses a participant's random value
type RevealRequest struct {
	Random string `json:"random" binding:"required" example:"4294967297"`
}

// EndLotteryRequest discloses the charity's random value
type EndLotteryRequest struct {
	CharityRandom string `json:"charity_random" binding:"required" example:"0x1234567890abcdef1234567890abcdef"`
}

// DepositRequest credits a payer, posted by the payment relay. PaymentID
// identifies the external payment; a lottery credits each id once.
type DepositRequest struct {
	PaymentID string `json:"payment_id" binding:"required" example:"0x9c1e5f0a7d3b2e64c4a1f8b7d2e3c5a6b7c8d9e0f1a2b3c4d5e6f708192a3b4c"`
	From      string `json:"from" binding:"required" example:"0x0000000000000000000000000000000000000101"`
	Amount    string `json:"amount" binding:"required" example:"10000"`
}

// PolicyResponse describes how a lottery resolves its end
type PolicyResponse struct {
	EndAuthority string `json:"end_authority"`
	NoRevealers  string `json:"no_revealers"`
}

// LotteryResponse is the public view of a lottery
type LotteryResponse struct {
	ID        string         `json:"id"`
	Owner     string         `json:"owner"`
	Phase     string         `json:"phase"`
	Cancelled bool           `json:"cancelled"`
	Policy    PolicyResponse `json:"policy"`

	Charity       string `json:"charity,omitempty"`
	CharitySplit  uint64 `json:"charity_split"`
	WinnerSplit   uint64 `json:"winner_split"`
	OwnerSplit    uint64 `json:"owner_split"`
	ValuePerEntry string `json:"value_per_entry,omitempty"`
	StartTime     uint64 `json:"start_time"`
	RevealTime    uint64 `json:"reveal_time"`
	EndTime       uint64 `json:"end_time"`

	CharitySeeded     bool     `json:"charity_seeded"`
	Pot               string   `json:"pot"`
	TotalEntries      uint64   `json:"total_entries"`
	TotalParticipants uint64   `json:"total_participants"`
	TotalRevealers    uint64   `json:"total_revealers"`
	TotalRevealed     string   `json:"total_revealed"`
	Revealers         []string `json:"revealers"`
	Winner            string   `json:"winner,omitempty"`
}

// BalanceResponse is one account's ledger balance
type BalanceResponse struct {
	LotteryID string `json:"lottery_id"`
	Account   string `json:"account"`
	Balance   string `json:"balance"`
}

// WithdrawResponse reports the amount released to the caller
type WithdrawResponse struct {
	LotteryID string `json:"lottery_id"`
	Account   string `json:"account"`
	Amount    string `json:"amount"`
}

// LotteryListResponse wraps the lottery listing
type LotteryListResponse struct {
	Lotteries []*LotteryResponse `json:"lotteries"`
	Total     int                `json:"total"`
}
