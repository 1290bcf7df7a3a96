package rental

// Status is the authoritative lifecycle state of a rental. Transitions are
// guarded by the entity; there is no stored "overdue" status (see
// Rental.Overdue).
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether a rental can never leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OccupiesWindow reports whether a rental in this status blocks its
// reservation window. Completed and cancelled rentals free the window.
func (s Status) OccupiesWindow() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive:
		return true
	default:
		return false
	}
}

// OccupyingStatuses are the statuses the availability checker considers.
func OccupyingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusActive}
}

// DepositStatus tracks the deposit hold independently of the operational
// status.
type DepositStatus string

const (
	DepositHeld      DepositStatus = "held"
	DepositReleased  DepositStatus = "released"
	DepositForfeited DepositStatus = "forfeited"
)

func (d DepositStatus) String() string {
	return string(d)
}

func (d DepositStatus) IsValid() bool {
	switch d {
	case DepositHeld, DepositReleased, DepositForfeited:
		return true
	default:
		return false
	}
}

// PricingPeriod is the rate basis chosen once per rental.
type PricingPeriod string

const (
	PeriodWeekly  PricingPeriod = "weekly"
	PeriodMonthly PricingPeriod = "monthly"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

func (p PricingPeriod) String() string {
	return string(p)
}

func (p PricingPeriod) IsValid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

// Periods converts an inclusive day count into billable periods. Partial
// periods round up and a same-day rental still bills one period.
func (p PricingPeriod) Periods(days int) int {
	unit := daysPerWeek
	if p == PeriodMonthly {
		unit = daysPerMonth
	}
	if days <= 0 {
		return 1
	}
	periods := (days + unit - 1) / unit
	if periods < 1 {
		return 1
	}
	return periods
}
