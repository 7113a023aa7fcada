package domain

// State is the explicit conversation state of a user
type State int

const (
	StateNew State = iota
	StateAwaitingLanguage
	StateAwaitingConnection
	StateActive
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateAwaitingLanguage:
		return "awaiting_language"
	case StateAwaitingConnection:
		return "awaiting_connection"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// DeriveState computes the state from the stored record and whether a language prompt is pending.
// A nil user means no record exists.
func DeriveState(user *User, awaitingLanguage bool) State {
	switch {
	case user == nil:
		return StateNew
	case awaitingLanguage:
		return StateAwaitingLanguage
	case user.Connected:
		return StateActive
	default:
		return StateAwaitingConnection
	}
}

// ActionKind identifies an inbound user intent
type ActionKind string

const (
	ActionStart          ActionKind = "start"
	ActionChooseLanguage ActionKind = "choose_language"
	ActionConnect        ActionKind = "connect"
	ActionReport         ActionKind = "report"
)

// ReportKind identifies a report period
type ReportKind string

const (
	ReportDay   ReportKind = "day"
	ReportWeek  ReportKind = "week"
	ReportMonth ReportKind = "month"
	ReportYear  ReportKind = "year"
)

// ReportKinds lists all report kinds
var ReportKinds = []ReportKind{ReportDay, ReportWeek, ReportMonth, ReportYear}

// Valid reports whether the report kind is known
func (k ReportKind) Valid() bool {
	switch k {
	case ReportDay, ReportWeek, ReportMonth, ReportYear:
		return true
	}
	return false
}

// Action is a transport-independent user intent
type Action struct {
	UserID string
	Kind   ActionKind
	Digit  string     // for ActionChooseLanguage
	Report ReportKind // for ActionReport
}

func StartAction(userID string) Action {
	return Action{UserID: userID, Kind: ActionStart}
}

func ChooseLanguageAction(userID, digit string) Action {
	return Action{UserID: userID, Kind: ActionChooseLanguage, Digit: digit}
}

func ConnectAction(userID string) Action {
	return Action{UserID: userID, Kind: ActionConnect}
}

func ReportAction(userID string, kind ReportKind) Action {
	return Action{UserID: userID, Kind: ActionReport, Report: kind}
}

// Message is a single outbound text with the catalog key it came from
type Message struct {
	Key  string
	Text string
}

// Reply is the ordered sequence of messages answering an action
type Reply struct {
	Messages []Message
}

// Keys returns message keys in order
func (r Reply) Keys() []string {
	keys := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		keys = append(keys, m.Key)
	}
	return keys
}

// Texts returns message texts in order
func (r Reply) Texts() []string {
	texts := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		texts = append(texts, m.Text)
	}
	return texts
}
