package result

const (
	msgResultFailed   = "We encountered an error while processing your booking. Please try again."
	msgReceiptInvalid = "Receipt link is invalid or has expired."
	msgReceiptFailed  = "Failed to load booking. Please try again later."
)
