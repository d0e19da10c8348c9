package network

const (
	operationQuery       = "query"
	operationTransaction = "transaction"
	operationDeploy      = "deploy"
	operationPoll        = "poll"

	resultSuccess = "success"
	resultFailure = "failure"
)

func resultOf(err error) string {
	if err != nil {
		return resultFailure
	}

	return resultSuccess
}
