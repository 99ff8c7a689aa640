package metrics

const (
	LabelService = "service"
	LabelHandler = "handler"
	LabelMethod  = "method"
	LabelCode    = "code"
	LabelStatus  = "status"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
