package entity

// Chat roles understood by the completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the advisor conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatToken is the subset of a snapshot token the advisor prompt reads.
type ChatToken struct {
	Name     string     `json:"name"`
	Symbol   string     `json:"symbol"`
	Amount   FlexString `json:"amount"`
	UsdValue FlexString `json:"usdValue"`
}

// ChatTransaction is the subset of a transfer record the advisor prompt reads.
type ChatTransaction struct {
	Type      string     `json:"type"`
	Amount    FlexString `json:"amount"`
	Symbol    string     `json:"symbol"`
	BlockTime FlexInt    `json:"blockTime"`
}

// ChatWalletData is the snapshot echoed back by the dashboard with each chat turn.
type ChatWalletData struct {
	Balance      FlexString        `json:"balance"`
	SolPrice     float64           `json:"solPrice"`
	Tokens       []ChatToken       `json:"tokens"`
	Transactions []ChatTransaction `json:"transactions"`
}

// ChatRequest is one advisor turn: prior history plus optional wallet context.
type ChatRequest struct {
	Messages      []ChatMessage
	WalletData    *ChatWalletData
	WalletAddress string
}
