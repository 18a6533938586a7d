package mapper

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/features/lottery/models"
)

// ToLotteryResponse maps a lottery snapshot to its public view
func ToLotteryResponse(l *contract.Lottery) *models.LotteryResponse {
	resp := &models.LotteryResponse{
		ID:        l.ID,
		Owner:     l.Owner.Hex(),
		Phase:     string(l.Phase),
		Cancelled: l.Cancelled(),
		Policy: models.PolicyResponse{
			EndAuthority: string(l.Policy.EndAuthority),
			NoRevealers:  string(l.Policy.NoRevealers),
		},
		CharitySplit:      l.Config.CharitySplit,
		WinnerSplit:       l.Config.WinnerSplit,
		OwnerSplit:        l.Config.OwnerSplit,
		StartTime:         l.Config.StartTime,
		RevealTime:        l.Config.RevealTime,
		EndTime:           l.Config.EndTime,
		CharitySeeded:     l.Seeded(),
		Pot:               decimal(l.Pot),
		TotalEntries:      l.TotalEntries,
		TotalParticipants: l.TotalParticipants,
		TotalRevealers:    l.TotalRevealers,
		TotalRevealed:     decimal(l.TotalRevealed),
		Revealers:         make([]string, 0, len(l.Revealers)),
	}

	if l.Phase != contract.PhaseCreated {
		resp.Charity = l.Config.Charity.Hex()
		resp.ValuePerEntry = decimal(l.Config.ValuePerEntry)
	}
	for _, r := range l.Revealers {
		resp.Revealers = append(resp.Revealers, r.Hex())
	}
	if l.Winner != (common.Address{}) {
		resp.Winner = l.Winner.Hex()
	}
	return resp
}

// ToLotteryListResponse maps a listing
func ToLotteryListResponse(lotteries []*contract.Lottery) *models.LotteryListResponse {
	resp := &models.LotteryListResponse{
		Lotteries: make([]*models.LotteryResponse, 0, len(lotteries)),
		Total:     len(lotteries),
	}
	for _, l := range lotteries {
		resp.Lotteries = append(resp.Lotteries, ToLotteryResponse(l))
	}
	return resp
}

// ToBalanceResponse maps one ledger entry
func ToBalanceResponse(lotteryID string, account common.Address, balance *uint256.Int) *models.BalanceResponse {
	return &models.BalanceResponse{
		LotteryID: lotteryID,
		Account:   account.Hex(),
		Balance:   decimal(balance),
	}
}

// ToWithdrawResponse maps a released amount
func ToWithdrawResponse(lotteryID string, account common.Address, amount *uint256.Int) *models.WithdrawResponse {
	return &models.WithdrawResponse{
		LotteryID: lotteryID,
		Account:   account.Hex(),
		Amount:    decimal(amount),
	}
}

func decimal(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
