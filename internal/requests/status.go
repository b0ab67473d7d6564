package requests

type Status string

const (
	StatusOpen            Status = "open"
	StatusExpired         Status = "expired"
	StatusDeadlineExpired Status = "deadline_expired"
	StatusCancelled       Status = "cancelled"
)

const (
	ReasonNoQuotations   = "deadline_expired_no_quotations"
	ReasonWithQuotations = "deadline_expired_with_quotations"
)
