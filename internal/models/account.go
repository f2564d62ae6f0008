package models

// Account is the persisted row shape for accounts.
type Account struct {
	AccountID    string `db:"account_id"`
	CodeBase     int    `db:"code_base"`
	CodeSeq      int    `db:"code_seq"`
	Name         string `db:"name"`
	IsNeedOffset bool   `db:"is_need_offset"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
