package core

// Dictionary conventions. Payments reference the first two entries,
// plans the last two.
const (
	PaymentTypePrincipal int64 = 1
	PaymentTypeInterest  int64 = 2
	CategoryIssuanceID   int64 = 3
	CategoryCollectionID int64 = 4
)

// Category names used for matching plan rows and monthly actuals.
const (
	CategoryIssuance   = "видача"
	CategoryCollection = "збір"
)

type (
	User struct {
		ID               int64
		Login            string
		RegistrationDate Date
	}

	// Credit is a loan issued to a user. A nil ActualReturnDate means
	// the credit is still open.
	Credit struct {
		ID               int64
		UserID           int64
		IssuanceDate     Date
		ReturnDate       Date
		ActualReturnDate *Date
		Body             float64
		Percent          float64
	}

	Payment struct {
		ID          int64
		CreditID    int64
		TypeID      int64
		Sum         float64
		PaymentDate Date
	}

	// Category is a dictionary entry classifying payments and plans.
	Category struct {
		ID   int64
		Name string
	}

	// Plan is a monthly target sum for a category. Period is the first
	// day of the month it covers.
	Plan struct {
		ID         int64
		Period     Date
		Sum        float64
		CategoryID int64
	}

	// PlanRow is one decoded row of an uploaded plan spreadsheet,
	// not yet validated.
	PlanRow struct {
		Period   Date
		Category string
		Sum      float64
	}
)

// Closed reports whether the credit has been returned.
func (c Credit) Closed() bool {
	return c.ActualReturnDate != nil
}

// CreditView is the per-credit status entry returned for a user.
// Closed credits carry TotalPaid; open credits carry OverdueDays and
// the principal/interest payment split.
type CreditView struct {
	IssuanceDate  Date     `json:"issuance_date"`
	Closed        bool     `json:"closed"`
	ReturnDate    Date     `json:"return_date"`
	Body          float64  `json:"body"`
	Percent       float64  `json:"percent"`
	TotalPaid     *float64 `json:"total_paid,omitempty"`
	OverdueDays   *int     `json:"overdue_days,omitempty"`
	PrincipalPaid *float64 `json:"principal_paid,omitempty"`
	InterestPaid  *float64 `json:"interest_paid,omitempty"`
}

// CategoryPerformance is one plan-vs-actual entry of the monthly report.
type CategoryPerformance struct {
	Period        Date    `json:"period"`
	Category      string  `json:"category"`
	PlannedSum    float64 `json:"planned_sum"`
	ActualSum     float64 `json:"actual_sum"`
	CompletionPct float64 `json:"completion_pct"`
}

// MonthlyRollup is one month of the yearly report. The yearly report
// always contains twelve of these, January through December.
type MonthlyRollup struct {
	Month              string  `json:"month"` // "MM.YYYY"
	CreditCount        int     `json:"credit_count"`
	PlannedIssuance    float64 `json:"planned_issuance"`
	ActualIssuance     float64 `json:"actual_issuance"`
	IssuancePct        float64 `json:"issuance_completion_pct"`
	PaymentCount       int     `json:"payment_count"`
	PlannedCollection  float64 `json:"planned_collection"`
	ActualCollection   float64 `json:"actual_collection"`
	CollectionPct      float64 `json:"collection_completion_pct"`
	IssuanceSharePct   float64 `json:"issuance_share_of_year_pct"`
	CollectionSharePct float64 `json:"collection_share_of_year_pct"`
}
