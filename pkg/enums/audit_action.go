package enums

// AuditAction labels a mutating operation recorded in the audit log.
type AuditAction string

const (
	AuditActionPartCreate     AuditAction = "part.create"
	AuditActionPartUpdate     AuditAction = "part.update"
	AuditActionPartDelete     AuditAction = "part.delete"
	AuditActionCountIncrement AuditAction = "count.increment"
	AuditActionCountDecrement AuditAction = "count.decrement"
	AuditActionOrderPurchase  AuditAction = "order.purchase"
	AuditActionOrderEdit      AuditAction = "order.edit"
	AuditActionOrderDeliver   AuditAction = "order.deliver"
	AuditActionTurnTaskCreate AuditAction = "turn_task.create"
	AuditActionTurnTaskUpdate AuditAction = "turn_task.update"
	AuditActionUserCreate     AuditAction = "user.create"
)

// String implements fmt.Stringer.
func (a AuditAction) String() string {
	return string(a)
}
