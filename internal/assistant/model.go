package assistant

type RecommendationType string

const (
	RecommendationLoan   RecommendationType = "LOAN"
	RecommendationScheme RecommendationType = "SCHEME"
	RecommendationLaw    RecommendationType = "LAW"
)

func (t RecommendationType) Valid() bool {
	switch t {
	case RecommendationLoan, RecommendationScheme, RecommendationLaw:
		return true
	}
	return false
}

type Recommendation struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        RecommendationType `json:"type"`
	Link        string             `json:"link"`
}

// Action is what a spoken command asks the app to do.
type Action string

const (
	ActionNavigateMarket    Action = "NAVIGATE_MARKET"
	ActionNavigateInventory Action = "NAVIGATE_INVENTORY"
	ActionNavigateLoans     Action = "NAVIGATE_LOANS"
	ActionAddCrop           Action = "ADD_CROP"
	ActionUnknown           Action = "UNKNOWN"
)

func (a Action) Valid() bool {
	switch a {
	case ActionNavigateMarket, ActionNavigateInventory, ActionNavigateLoans, ActionAddCrop, ActionUnknown:
		return true
	}
	return false
}

type Command struct {
	Action   Action `json:"action"`
	Feedback string `json:"feedback"`
}
