package token

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// spinTokenABI - ABI развёрнутого контракта SpinToken
const spinTokenABI = `[
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"claimTokens","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"addGamePoints","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"points","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"convertPointsToTokens","stateMutability":"nonpayable","inputs":[{"name":"points","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"distributeReward","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"},{"name":"amount","type":"uint256"},{"name":"multiplier","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"getClaimableAmount","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getTimeUntilNextClaim","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getUserStats","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"},{"name":"","type":"uint256"},{"name":"","type":"uint256"},{"name":"","type":"uint256"},{"name":"","type":"uint256"},{"name":"","type":"uint256"}]},
	{"type":"function","name":"getContractBalance","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"withdrawFees","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"MAX_SUPPLY","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"CLAIM_COOLDOWN","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"MAX_CLAIM_AMOUNT","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"CLAIM_FEE","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"lastClaimTime","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"totalClaimed","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"gamePoints","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"TokensClaimed","anonymous":false,"inputs":[{"name":"user","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false},{"name":"fee","type":"uint256","indexed":false}]},
	{"type":"event","name":"GameReward","anonymous":false,"inputs":[{"name":"user","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false},{"name":"multiplier","type":"uint256","indexed":false}]},
	{"type":"event","name":"PointsConverted","anonymous":false,"inputs":[{"name":"user","type":"address","indexed":true},{"name":"points","type":"uint256","indexed":false},{"name":"tokens","type":"uint256","indexed":false}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

const (
	eventTokensClaimed   = "TokensClaimed"
	eventPointsConverted = "PointsConverted"
)

func parseABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(spinTokenABI))
}
