package models

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusPaid     TransactionStatus = "paid"
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusReceived TransactionStatus = "received"
	TransactionStatusOverdue  TransactionStatus = "overdue"
)

func (t TransactionStatus) IsValid() bool {
	switch t {
	case TransactionStatusPaid, TransactionStatusPending, TransactionStatusReceived, TransactionStatusOverdue:
		return true
	}
	return false
}

type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusOnLeave    EmployeeStatus = "on_leave"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

func (t EmployeeStatus) IsValid() bool {
	switch t {
	case EmployeeStatusActive, EmployeeStatusOnLeave, EmployeeStatusTerminated:
		return true
	}
	return false
}

type PositionStatus string

const (
	PositionStatusOpen   PositionStatus = "open"
	PositionStatusOnHold PositionStatus = "on_hold"
	PositionStatusClosed PositionStatus = "closed"
)

func (t PositionStatus) IsValid() bool {
	switch t {
	case PositionStatusOpen, PositionStatusOnHold, PositionStatusClosed:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

func (t ProjectStatus) IsValid() bool {
	switch t {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

func (t TaskPriority) IsValid() bool {
	switch t {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

type PlanTier string

const (
	PlanTierStarter    PlanTier = "starter"
	PlanTierPro        PlanTier = "pro"
	PlanTierEnterprise PlanTier = "enterprise"
)

// PlanTiers in display order.
var PlanTiers = []PlanTier{PlanTierStarter, PlanTierPro, PlanTierEnterprise}

func (t PlanTier) IsValid() bool {
	switch t {
	case PlanTierStarter, PlanTierPro, PlanTierEnterprise:
		return true
	}
	return false
}

type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusSuspended SubscriptionStatus = "suspended"
)

func (t SubscriptionStatus) IsValid() bool {
	switch t {
	case SubscriptionStatusTrial, SubscriptionStatusActive, SubscriptionStatusCancelled,
		SubscriptionStatusExpired, SubscriptionStatusSuspended:
		return true
	}
	return false
}

// Billable statuses contribute to MRR and the plan breakdown.
func (t SubscriptionStatus) Billable() bool {
	return t == SubscriptionStatusActive || t == SubscriptionStatusTrial
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (t PaymentStatus) IsValid() bool {
	switch t {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeAlert   NotificationType = "alert"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeWarning, NotificationTypeSuccess, NotificationTypeAlert:
		return true
	}
	return false
}

type NotificationTarget string

const (
	NotificationTargetAll    NotificationTarget = "all"
	NotificationTargetPlan   NotificationTarget = "plan"
	NotificationTargetClient NotificationTarget = "client"
)

func (t NotificationTarget) IsValid() bool {
	switch t {
	case NotificationTargetAll, NotificationTargetPlan, NotificationTargetClient:
		return true
	}
	return false
}

// activity actions written by lifecycle operations
const (
	ActivityClientCreated        = "client_created"
	ActivityClientSuspended      = "client_suspended"
	ActivityClientUnsuspended    = "client_unsuspended"
	ActivitySubscriptionCreated  = "subscription_created"
	ActivitySubscriptionCanceled = "subscription_cancelled"
	ActivityPaymentStatusChanged = "payment_status_changed"
)
