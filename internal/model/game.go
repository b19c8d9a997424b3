package model

// GameState - состояние игрового автомата
type GameState string

const (
	StateDisconnected GameState = "disconnected"
	StateConnected    GameState = "connected"
	StateSpinning     GameState = "spinning"
	StateWon          GameState = "won"
	StateClaimed      GameState = "claimed"
)

// RewardVariant - вариант таблицы наград
type RewardVariant string

const (
	// VariantCoins - монеты с множителями, при сборе идут в баланс
	VariantCoins RewardVariant = "coins"
	// VariantNFTWhitelist - призы вайтлиста, при сборе отмечаются как полученные
	VariantNFTWhitelist RewardVariant = "nft_whitelist"
)

// Reward - сектор колеса
type Reward struct {
	Label    string `yaml:"label"`
	Category string `yaml:"category"` // Множитель ("10x") или категория приза
	Color    string `yaml:"color"`
	Points   int64  `yaml:"points"`
}

// RewardTable - набор секторов колеса
type RewardTable struct {
	Name    string        `yaml:"name"`
	Variant RewardVariant `yaml:"variant"`
	Rewards []Reward      `yaml:"rewards"`
}

// SpinResult - результат одного вращения
type SpinResult struct {
	Reward
	Index    int     // Индекс сектора в таблице
	Rotation float64 // Целевой угол поворота колеса в градусах
}
